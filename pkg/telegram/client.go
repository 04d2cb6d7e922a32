package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier defines the interface for sending Telegram messages.
type Notifier interface {
	SendMessage(chatID int64, text string) error
}

// Client wraps the Telegram Bot API for both notifications and long polling.
type Client struct {
	Bot *tgbotapi.BotAPI
}

// NewClient creates a new Telegram client.
func NewClient(botToken string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Client{Bot: bot}, nil
}

// SendMessage sends a Markdown-formatted message to the given chat.
func (c *Client) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := c.Bot.Send(msg)
	return err
}

// Updates returns a long-polling update channel.
func (c *Client) Updates(timeout int) tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeout
	return c.Bot.GetUpdatesChan(u)
}
