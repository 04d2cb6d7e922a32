package telegram

import (
	"context"
	"time"

	"invest-advisor/internal/advisor/config"
	"invest-advisor/internal/advisor/repository"
	"invest-advisor/internal/advisor/service"
	"invest-advisor/pkg/logger"
	"invest-advisor/pkg/telegram"
	"invest-advisor/pkg/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Bot is the conversational front-end. It owns no pipeline state; all
// analysis work is delegated to the services.
type Bot struct {
	cfg           *config.Config
	log           *logger.Logger
	client        *telegram.Client
	advisorSvc    service.AdvisorService
	forecastSvc   service.ForecastService
	riskSvc       service.RiskService
	historySvc    service.HistoryService
	termSvc       service.TermService
	profileRepo   repository.UserProfileRepository
	conversations *cache.Cache
}

// NewBot creates the Telegram delivery.
func NewBot(
	cfg *config.Config,
	log *logger.Logger,
	client *telegram.Client,
	advisorSvc service.AdvisorService,
	forecastSvc service.ForecastService,
	riskSvc service.RiskService,
	historySvc service.HistoryService,
	termSvc service.TermService,
	profileRepo repository.UserProfileRepository,
) *Bot {
	return &Bot{
		cfg:           cfg,
		log:           log,
		client:        client,
		advisorSvc:    advisorSvc,
		forecastSvc:   forecastSvc,
		riskSvc:       riskSvc,
		historySvc:    historySvc,
		termSvc:       termSvc,
		profileRepo:   profileRepo,
		conversations: cache.New(10*time.Minute, 20*time.Minute),
	}
}

// Run consumes updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	b.log.Info("Telegram bot started", zap.String("bot", b.client.Bot.Self.UserName))
	updates := b.client.Updates(b.cfg.Telegram.UpdateTimeout)

	for {
		select {
		case <-ctx.Done():
			b.client.Bot.StopReceivingUpdates()
			b.log.Info("Telegram bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			msg := update.Message
			utils.GoSafe(func() {
				b.handleMessage(ctx, msg)
			})
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// An active profile conversation consumes plain text first.
	if b.inConversation(chatID) {
		b.handleConversation(ctx, msg)
		return
	}

	// Free text falls through to the glossary.
	b.reply(chatID, b.termSvc.Explain(ctx, msg.Text))
}

func (b *Bot) reply(chatID int64, text string) {
	if err := b.client.SendMessage(chatID, text); err != nil {
		b.log.Error("Failed to send telegram message",
			zap.Int64("chat_id", chatID), logger.ErrorField(err))
	}
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, options []string) {
	buttons := make([]tgbotapi.KeyboardButton, 0, len(options))
	for _, o := range options {
		buttons = append(buttons, tgbotapi.NewKeyboardButton(o))
	}
	msg := tgbotapi.NewMessage(chatID, text)
	keyboard := tgbotapi.NewReplyKeyboard(buttons)
	keyboard.OneTimeKeyboard = true
	msg.ReplyMarkup = keyboard
	if _, err := b.client.Bot.Send(msg); err != nil {
		b.log.Error("Failed to send telegram keyboard",
			zap.Int64("chat_id", chatID), logger.ErrorField(err))
	}
}

func (b *Bot) replyRemoveKeyboard(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if _, err := b.client.Bot.Send(msg); err != nil {
		b.log.Error("Failed to send telegram message",
			zap.Int64("chat_id", chatID), logger.ErrorField(err))
	}
}
