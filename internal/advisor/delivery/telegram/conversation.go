package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"invest-advisor/internal/entity"
	"invest-advisor/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Profile creation walks three steps: experience, goal, risk tolerance.
type conversationState int

const (
	stateExperience conversationState = iota
	stateGoal
	stateRisk
)

type conversation struct {
	State      conversationState
	Experience entity.InvestmentExperience
	Goal       entity.InvestmentGoal
}

func conversationKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func (b *Bot) inConversation(chatID int64) bool {
	_, ok := b.conversations.Get(conversationKey(chatID))
	return ok
}

func (b *Bot) startProfileConversation(chatID int64) {
	b.conversations.Set(conversationKey(chatID), &conversation{State: stateExperience}, cache.DefaultExpiration)

	options := make([]string, 0, 3)
	for _, e := range entity.Experiences() {
		options = append(options, string(e))
	}
	b.replyWithKeyboard(chatID, "Let's create your investment profile. First, choose your experience level:", options)
}

func (b *Bot) cancelConversation(chatID int64) {
	if !b.inConversation(chatID) {
		b.reply(chatID, "There is nothing to cancel.")
		return
	}
	b.conversations.Delete(conversationKey(chatID))
	b.replyRemoveKeyboard(chatID, "Profile creation cancelled.")
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	raw, ok := b.conversations.Get(conversationKey(chatID))
	if !ok {
		return
	}
	conv := raw.(*conversation)
	answer := strings.TrimSpace(strings.ToLower(msg.Text))

	switch conv.State {
	case stateExperience:
		for _, e := range entity.Experiences() {
			if answer == string(e) {
				conv.Experience = e
				conv.State = stateGoal
				b.conversations.Set(conversationKey(chatID), conv, cache.DefaultExpiration)

				options := make([]string, 0, 4)
				for _, g := range entity.Goals() {
					options = append(options, string(g))
				}
				b.replyWithKeyboard(chatID, "Great! Now choose your main investment goal:", options)
				return
			}
		}
		b.reply(chatID, "Please choose one of the offered experience levels.")

	case stateGoal:
		for _, g := range entity.Goals() {
			if answer == string(g) {
				conv.Goal = g
				conv.State = stateRisk
				b.conversations.Set(conversationKey(chatID), conv, cache.DefaultExpiration)
				b.replyRemoveKeyboard(chatID, "Last question: rate your risk tolerance from 1 (very low) to 10 (very high):")
				return
			}
		}
		b.reply(chatID, "Please choose one of the offered goals.")

	case stateRisk:
		tolerance, err := strconv.Atoi(answer)
		if err != nil || tolerance < 1 || tolerance > 10 {
			b.reply(chatID, "Please enter a number between 1 and 10.")
			return
		}

		profile := &entity.UserProfile{
			UserID:        msg.From.ID,
			Experience:    conv.Experience,
			Goal:          conv.Goal,
			RiskTolerance: tolerance,
		}
		if err := b.profileRepo.Upsert(ctx, profile); err != nil {
			b.log.Error("Failed to save user profile",
				zap.Int64("user_id", msg.From.ID), logger.ErrorField(err))
			b.reply(chatID, "Sorry, the profile could not be saved. Please try again later.")
			return
		}

		b.conversations.Delete(conversationKey(chatID))
		b.reply(chatID, fmt.Sprintf("Thank you! Your investment profile has been created (%s, %s, tolerance %d).",
			conv.Experience, conv.Goal, tolerance))
	}
}
