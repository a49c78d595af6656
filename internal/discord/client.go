package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/Morrowga/discordbot/internal/model"
)

// Client wraps the Discord gateway session. It is the only place that
// knows how a Notification becomes a platform message.
type Client struct {
	session *discordgo.Session
	log     *zap.Logger
}

func NewClient(botToken string, log *zap.Logger) (*Client, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent
	return &Client{session: session, log: log}, nil
}

// Open connects the gateway. Handlers must be registered first.
func (c *Client) Open() error {
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	c.log.Info("discord gateway connected")
	return nil
}

func (c *Client) Close() error {
	return c.session.Close()
}

// OnMessage registers a handler for user-authored messages. Messages
// from bots (our own replies included) are dropped here so handlers
// never see them.
func (c *Client) OnMessage(handler func(m *discordgo.MessageCreate)) {
	c.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot {
			return
		}
		handler(m)
	})
}

// SendNotification renders a Notification as an embed in the channel.
func (c *Client) SendNotification(channelID string, n model.Notification) error {
	embed := &discordgo.MessageEmbed{
		Title: n.Title,
		Color: n.Color,
	}
	for _, f := range n.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Label,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	if n.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: n.Footer}
	}

	if _, err := c.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		return fmt.Errorf("send embed: %w", err)
	}
	return nil
}

// Reply posts a reply referencing the given message.
func (c *Client) Reply(channelID, messageID, text string) error {
	_, err := c.session.ChannelMessageSendReply(channelID, text, &discordgo.MessageReference{
		ChannelID: channelID,
		MessageID: messageID,
	})
	if err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}
