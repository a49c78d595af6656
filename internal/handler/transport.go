package handler

import "github.com/Morrowga/discordbot/internal/model"

// ChatSender is the transport surface the handlers need from the chat
// client.
type ChatSender interface {
	SendNotification(channelID string, n model.Notification) error
	Reply(channelID, messageID, text string) error
}
