package notify

import (
	"fmt"
	"strings"

	"github.com/Morrowga/discordbot/internal/i18n"
	"github.com/Morrowga/discordbot/internal/model"
)

// Accent colors per notification kind.
const (
	colorCheckIn    = 0x2ECC71
	colorBreakStart = 0xF1C40F
	colorBreakEnd   = 0x3498DB
	colorCheckOut   = 0xE74C3C
	colorStatus     = 0x95A5A6
	colorGitHub     = 0x24292E
	colorGitLab     = 0xFC6D26
)

// Render turns a transition result into its notification. It performs
// no I/O and does not touch the record.
func Render(result *model.TransitionResult) model.Notification {
	record := result.Record

	n := model.Notification{
		Fields: []model.NotificationField{
			{Label: i18n.TD("LabelUser"), Value: record.Username, Inline: true},
			{Label: i18n.TD("LabelTime"), Value: result.At.Format("15:04"), Inline: true},
			{Label: i18n.TD("LabelDate"), Value: record.Date, Inline: true},
		},
	}

	switch result.Kind {
	case model.TransitionCheckIn:
		n.Title = i18n.TD("TitleCheckIn")
		n.Color = colorCheckIn
	case model.TransitionBreakStart:
		n.Title = i18n.TD("TitleBreakStart")
		n.Color = colorBreakStart
	case model.TransitionBreakEnd:
		n.Title = i18n.TD("TitleBreakEnd")
		n.Color = colorBreakEnd
		n.Fields = append(n.Fields, model.NotificationField{
			Label:  i18n.TD("LabelBreakDuration"),
			Value:  minutes(result.BreakMinutes),
			Inline: true,
		})
	case model.TransitionCheckOut:
		n.Title = i18n.TD("TitleCheckOut")
		n.Color = colorCheckOut
		n.Fields = append(n.Fields,
			model.NotificationField{Label: i18n.TD("LabelTotalWork"), Value: hours(record.TotalWorkHours), Inline: true},
			model.NotificationField{Label: i18n.TD("LabelTotalBreak"), Value: minutes(record.TotalBreakMinutes), Inline: true},
		)
	}

	if result.Note != "" {
		n.Fields = append(n.Fields, model.NotificationField{
			Label: i18n.TD("LabelNote"),
			Value: result.Note,
		})
	}
	return n
}

// RenderStatus summarizes a record for the read-only status query.
func RenderStatus(record *model.AttendanceRecord) model.Notification {
	n := model.Notification{
		Title: i18n.TD("TitleStatus"),
		Color: colorStatus,
		Fields: []model.NotificationField{
			{Label: i18n.TD("LabelUser"), Value: record.Username, Inline: true},
			{Label: i18n.TD("LabelDate"), Value: record.Date, Inline: true},
			{Label: i18n.TD("LabelStatus"), Value: statusLabel(record.Status()), Inline: true},
		},
	}

	if record.CheckIn != nil {
		n.Fields = append(n.Fields, model.NotificationField{
			Label: i18n.TD("LabelCheckIn"), Value: record.CheckIn.Format("15:04"), Inline: true,
		})
	}
	if len(record.Breaks) > 0 {
		closedMinutes := 0
		for _, b := range record.Breaks {
			closedMinutes += b.DurationMinutes
		}
		n.Fields = append(n.Fields,
			model.NotificationField{Label: i18n.TD("LabelBreaks"), Value: i18n.TD("UnitTimes", map[string]any{"Count": len(record.Breaks)}), Inline: true},
			model.NotificationField{Label: i18n.TD("LabelTotalBreak"), Value: minutes(closedMinutes), Inline: true},
		)
	}
	if record.CheckOut != nil {
		n.Fields = append(n.Fields,
			model.NotificationField{Label: i18n.TD("LabelCheckOut"), Value: record.CheckOut.Format("15:04"), Inline: true},
			model.NotificationField{Label: i18n.TD("LabelTotalWork"), Value: hours(record.TotalWorkHours), Inline: true},
		)
	}
	return n
}

// RenderPush formats a normalized push event for the git channel.
func RenderPush(event *model.PushEvent) model.Notification {
	color := colorGitHub
	if event.Provider == "gitlab" {
		color = colorGitLab
	}

	lines := make([]string, 0, len(event.Commits))
	for _, c := range event.Commits {
		id := c.ID
		if len(id) > 7 {
			id = id[:7]
		}
		lines = append(lines, fmt.Sprintf("`%s` %s (%s)", id, firstLine(c.Message), c.Author))
	}

	return model.Notification{
		Title: i18n.TD("TitlePush", map[string]any{"Repository": event.Repository}),
		Color: color,
		Fields: []model.NotificationField{
			{Label: i18n.TD("LabelBranch"), Value: event.Branch, Inline: true},
			{Label: i18n.TD("LabelPusher"), Value: event.PusherName, Inline: true},
			{Label: i18n.TD("LabelCommits"), Value: strings.Join(lines, "\n")},
		},
		Footer: event.RepositoryURL,
	}
}

func statusLabel(s model.AttendanceStatus) string {
	switch s {
	case model.AttendanceStatusWorking:
		return i18n.TD("StatusWorking")
	case model.AttendanceStatusBreak:
		return i18n.TD("StatusBreak")
	case model.AttendanceStatusFinished:
		return i18n.TD("StatusFinished")
	default:
		return i18n.TD("StatusNotStarted")
	}
}

func minutes(m int) string {
	return i18n.TD("UnitMinutes", map[string]any{"Minutes": m})
}

func hours(h float64) string {
	return i18n.TD("UnitHours", map[string]any{"Hours": fmt.Sprintf("%.2f", h)})
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
