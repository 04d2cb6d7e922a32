package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"invest-advisor/internal/advisor/forecast"
	"invest-advisor/internal/advisor/repository"
	"invest-advisor/pkg/logger"
	"invest-advisor/pkg/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const helpText = `Hello! I am your personal investment assistant. Available commands:

/start - Start working with the bot
/help - Show this help message
/create_profile - Create or update your investment profile
/price <symbol> - Get the current price of a stock or crypto asset
/history <symbol> [days] - Get a price history summary
/predict <symbol> - Forecast the next closing price
/analyze <symbol> - Full forecast, risk and recommendation
/risk <symbol> - Risk assessment for an instrument
/cancel - Cancel profile creation

You can also just type an investment term and I will try to define it.`

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.reply(chatID, "Hello! I am your investment advisor bot. Ask me about investment terms or current stock and crypto prices.")
	case "help":
		b.reply(chatID, helpText)
	case "create_profile":
		b.startProfileConversation(chatID)
	case "cancel":
		b.cancelConversation(chatID)
	case "price":
		b.handlePrice(ctx, msg)
	case "history":
		b.handleHistory(ctx, msg)
	case "predict":
		b.handlePredict(ctx, msg)
	case "analyze":
		b.handleAnalyze(ctx, msg)
	case "risk":
		b.handleRisk(ctx, msg)
	default:
		b.reply(chatID, "Unknown command. Use /help to see what I can do.")
	}
}

func commandSymbol(msg *tgbotapi.Message) (string, []string) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		return "", nil
	}
	return strings.ToUpper(args[0]), args[1:]
}

func (b *Bot) handlePrice(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	symbol, _ := commandSymbol(msg)
	if symbol == "" {
		b.reply(chatID, "Please provide a stock or crypto symbol after /price")
		return
	}

	price, err := b.historySvc.CurrentPrice(ctx, symbol)
	if err != nil {
		b.log.Warn("Price lookup failed", zap.String("symbol", symbol), logger.ErrorField(err))
		b.reply(chatID, fmt.Sprintf("Could not get a price for %s. Please check the symbol.", symbol))
		return
	}
	b.reply(chatID, fmt.Sprintf("Current price of %s: $%.2f", symbol, price))
}

func (b *Bot) handleHistory(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	symbol, rest := commandSymbol(msg)
	if symbol == "" {
		b.reply(chatID, "Please provide a symbol after /history")
		return
	}

	days := 0
	if len(rest) > 0 {
		if d, err := strconv.Atoi(rest[0]); err == nil && d > 0 {
			days = d
		}
	}

	summary, err := b.historySvc.Summary(ctx, symbol, days)
	if err != nil {
		b.log.Warn("History lookup failed", zap.String("symbol", symbol), logger.ErrorField(err))
		b.reply(chatID, fmt.Sprintf("Could not get history for %s. Please check the symbol.", symbol))
		return
	}
	b.reply(chatID, fmt.Sprintf("Historical data for %s:\n\n%s", symbol, summary))
}

func (b *Bot) handlePredict(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	symbol, _ := commandSymbol(msg)
	if symbol == "" {
		b.reply(chatID, "Please provide a stock symbol after /predict")
		return
	}

	b.reply(chatID, fmt.Sprintf("Starting the forecast for %s. This may take a few minutes...", symbol))

	start, end := utils.DateRange(b.cfg.Advisor.ForecastDays)
	result, err := b.forecastSvc.Forecast(ctx, symbol, start, end, 0)
	if err != nil {
		b.replyPipelineError(chatID, symbol, err)
		return
	}

	percentChange := (result.PredictedPrice - result.LastPrice) / result.LastPrice * 100

	var sb strings.Builder
	fmt.Fprintf(&sb, "Forecast for %s:\n", symbol)
	fmt.Fprintf(&sb, "Last closing price: $%.2f\n", result.LastPrice)
	fmt.Fprintf(&sb, "Predicted next price: $%.2f\n", result.PredictedPrice)
	fmt.Fprintf(&sb, "Expected change: %.2f%%\n", percentChange)
	fmt.Fprintf(&sb, "Current news sentiment: %.2f\n", result.SentimentUsed)

	switch {
	case result.SentimentDefaulted:
		sb.WriteString("News was unavailable, so a neutral sentiment was assumed.")
	case result.SentimentUsed > 0:
		sb.WriteString("Sentiment is positive, which may support price growth.")
	case result.SentimentUsed < 0:
		sb.WriteString("Sentiment is negative, which may weigh on the price.")
	default:
		sb.WriteString("Sentiment is neutral.")
	}

	b.reply(chatID, sb.String())
}

func (b *Bot) handleAnalyze(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	symbol, _ := commandSymbol(msg)
	if symbol == "" {
		b.reply(chatID, "Please provide a stock symbol after /analyze")
		return
	}

	b.reply(chatID, fmt.Sprintf("Starting the analysis for %s. This may take a few minutes...", symbol))

	userID := msg.From.ID
	result, err := b.advisorSvc.Analyze(ctx, symbol, &userID)
	if err != nil {
		b.replyPipelineError(chatID, symbol, err)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Analysis for %s:\n\n", symbol)
	fmt.Fprintf(&sb, "Last closing price: $%.2f\n", result.Forecast.LastPrice)
	fmt.Fprintf(&sb, "Predicted next price: $%.2f\n", result.Forecast.PredictedPrice)
	fmt.Fprintf(&sb, "Expected change: %.2f%%\n", result.Recommendation.ExpectedChange*100)
	fmt.Fprintf(&sb, "Current news sentiment: %.2f\n", result.Sentiment.Score)
	if result.Sentiment.Degraded {
		sb.WriteString("(news was unavailable, neutral sentiment assumed)\n")
	}
	sb.WriteString("\n")
	sb.WriteString(result.Recommendation.Text)

	b.reply(chatID, sb.String())
}

func (b *Bot) handleRisk(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	symbol, _ := commandSymbol(msg)
	if symbol == "" {
		b.reply(chatID, "Please provide a symbol after /risk")
		return
	}

	assessment, err := b.riskSvc.Assess(ctx, symbol)
	if assessment == nil {
		b.log.Warn("Risk assessment failed", zap.String("symbol", symbol), logger.ErrorField(err))
		b.reply(chatID, fmt.Sprintf("Could not compute risk metrics for %s.", symbol))
		return
	}
	b.reply(chatID, fmt.Sprintf("Risk assessment for %s:\n\n%s", symbol, assessment.Interpretation))
}

func (b *Bot) replyPipelineError(chatID int64, symbol string, err error) {
	b.log.Error("Pipeline failed", zap.String("symbol", symbol), logger.ErrorField(err))

	switch {
	case errors.Is(err, forecast.ErrInsufficientData):
		b.reply(chatID, fmt.Sprintf("There is not enough price history for %s to train a forecast. Try a more liquid instrument.", symbol))
	case errors.Is(err, repository.ErrNoData):
		b.reply(chatID, fmt.Sprintf("No price data found for %s in the requested period. Please check the symbol.", symbol))
	case errors.Is(err, repository.ErrProviderUnavailable):
		b.reply(chatID, fmt.Sprintf("The market data provider is unavailable right now. Please try %s again later.", symbol))
	default:
		b.reply(chatID, fmt.Sprintf("Sorry, something went wrong while analyzing %s. Please try again later.", symbol))
	}
}
