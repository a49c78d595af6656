package command

import (
	"strings"

	"github.com/Morrowga/discordbot/internal/model"
)

// keywords is the priority-ordered command table. The first keyword
// found anywhere in the message wins; a message containing two keywords
// resolves to the higher-priority one with no feedback about the other.
var keywords = []struct {
	word string
	kind model.TransitionKind
}{
	{"出勤", model.TransitionCheckIn},
	{"退勤", model.TransitionCheckOut},
	{"休憩", model.TransitionBreakStart},
	{"復帰", model.TransitionBreakEnd},
}

// statusWords trigger the read-only status query on exact match.
var statusWords = []string{"勤怠", "status"}

// Intent is the parsed form of an attendance command. Status intents
// carry no transition kind; lifecycle intents carry the remaining
// message text as a free-form note.
type Intent struct {
	Status bool
	Kind   model.TransitionKind
	Note   string
}

// Parse maps message text to at most one intent. It returns nil when no
// keyword is present, in which case the message is a translation
// candidate instead of a command.
func Parse(text string) *Intent {
	trimmed := strings.TrimSpace(text)

	for _, w := range statusWords {
		if strings.EqualFold(trimmed, w) {
			return &Intent{Status: true}
		}
	}

	for _, kw := range keywords {
		idx := strings.Index(trimmed, kw.word)
		if idx < 0 {
			continue
		}
		note := strings.TrimSpace(trimmed[:idx] + trimmed[idx+len(kw.word):])
		return &Intent{Kind: kw.kind, Note: note}
	}

	return nil
}
