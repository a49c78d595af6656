package handler

import (
	"context"
	"errors"
	"unicode"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/Morrowga/discordbot/internal/command"
	"github.com/Morrowga/discordbot/internal/i18n"
	"github.com/Morrowga/discordbot/internal/notify"
	"github.com/Morrowga/discordbot/internal/service"
	"github.com/Morrowga/discordbot/internal/translate"
)

// MessageHandler routes inbound chat messages: attendance commands go
// through the state machine, everything else is offered to the
// translator. A message is one or the other, never both.
type MessageHandler struct {
	svc               *service.AttendanceService
	dc                ChatSender
	translator        *translate.Client
	guildID           string
	attendanceChannel string
	log               *zap.Logger
}

func NewMessageHandler(svc *service.AttendanceService, dc ChatSender, translator *translate.Client, guildID, attendanceChannel string, log *zap.Logger) *MessageHandler {
	return &MessageHandler{
		svc:               svc,
		dc:                dc,
		translator:        translator,
		guildID:           guildID,
		attendanceChannel: attendanceChannel,
		log:               log,
	}
}

// HandleMessage processes one user message.
func (h *MessageHandler) HandleMessage(m *discordgo.MessageCreate) {
	if h.guildID != "" && m.GuildID != h.guildID {
		return
	}

	ctx := i18n.WithLocale(context.Background(), replyLocale(m.Content))
	intent := command.Parse(m.Content)
	if intent == nil {
		if translated, ok := h.translator.Translate(ctx, m.Content); ok {
			if err := h.dc.Reply(m.ChannelID, m.ID, translated); err != nil {
				h.log.Warn("send translation", zap.Error(err))
			}
		}
		return
	}

	username := m.Author.Username

	if intent.Status {
		record, err := h.svc.Status(m.Author.ID, m.Timestamp)
		if err != nil {
			h.reply(m, i18n.T(ctx, "NotStartedToday", map[string]any{"Username": username}))
			return
		}
		if err := h.dc.SendNotification(m.ChannelID, notify.RenderStatus(record)); err != nil {
			h.log.Warn("send status", zap.Error(err))
		}
		return
	}

	result, err := h.svc.Apply(ctx, m.Author.ID, username, intent.Kind, m.Timestamp, intent.Note)
	if err != nil {
		h.reply(m, rejectionMessage(ctx, err, username))
		return
	}

	channel := h.attendanceChannel
	if channel == "" {
		channel = m.ChannelID
	}
	if err := h.dc.SendNotification(channel, notify.Render(result)); err != nil {
		h.log.Warn("send attendance notification",
			zap.String("channel_id", channel),
			zap.Error(err))
	}
}

func (h *MessageHandler) reply(m *discordgo.MessageCreate, text string) {
	if err := h.dc.Reply(m.ChannelID, m.ID, text); err != nil {
		h.log.Warn("send reply", zap.Error(err))
	}
}

// replyLocale picks the reply language from the message's script, so a
// rejection comes back in the language the command was written in.
func replyLocale(text string) string {
	for _, r := range text {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return "ja"
		}
	}
	return "en"
}

// rejectionMessage maps a transition error to its localized user reply.
func rejectionMessage(ctx context.Context, err error, username string) string {
	data := map[string]any{"Username": username}
	switch {
	case errors.Is(err, service.ErrAlreadyCheckedIn):
		return i18n.T(ctx, "AlreadyCheckedIn", data)
	case errors.Is(err, service.ErrNotCheckedIn):
		return i18n.T(ctx, "NotCheckedIn", data)
	case errors.Is(err, service.ErrAlreadyOnBreak):
		return i18n.T(ctx, "AlreadyOnBreak", data)
	case errors.Is(err, service.ErrNotOnBreak):
		return i18n.T(ctx, "NotOnBreak", data)
	case errors.Is(err, service.ErrAlreadyFinished):
		return i18n.T(ctx, "AlreadyFinished", data)
	default:
		return i18n.T(ctx, "CommandFailed")
	}
}
