package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/Freeeeeet/booking_bot/internal/service"
)

// BotController связывает Telegram-обновления с сервисом заявок
type BotController struct {
	bot             *bot.Bot
	bookingService  *service.BookingService
	adminTelegramID int64
	frontendURL     string
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	bookingService *service.BookingService,
	adminTelegramID int64,
	frontendURL string,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:             botInstance,
		bookingService:  bookingService,
		adminTelegramID: adminTelegramID,
		frontendURL:     frontendURL,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики бота
func (c *BotController) RegisterHandlers() {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.HandleStart)

	// Кнопки решения администратора
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, actionApprove+"_", bot.MatchTypePrefix, c.HandleDecisionCallback)
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, actionDecline+"_", bot.MatchTypePrefix, c.HandleDecisionCallback)

	// Любой другой текст — подсказываем пользователю его Telegram ID
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.HandleTextMessage)
}

// SetWebhook регистрирует вебхук у Telegram.
// Ошибка логируется, но процесс продолжает обслуживать HTTP:
// вебхук можно перерегистрировать перезапуском позже.
func (c *BotController) SetWebhook(ctx context.Context, publicURL, secretToken string) {
	if publicURL == "" {
		c.logger.Warn("PUBLIC_URL is not set, skipping webhook registration")
		return
	}

	url := publicURL + "/api/bot"
	_, err := c.bot.SetWebhook(ctx, &bot.SetWebhookParams{
		URL:         url,
		SecretToken: secretToken,
	})
	if err != nil {
		c.logger.Error("Failed to set Telegram webhook",
			zap.String("url", url),
			zap.Error(err))
		return
	}

	c.logger.Info("Telegram webhook set", zap.String("url", url))
}

// StartWebhook запускает обработку входящих обновлений.
// Блокируется до отмены контекста.
func (c *BotController) StartWebhook(ctx context.Context) {
	c.logger.Info("Starting bot webhook processing")
	c.bot.StartWebhook(ctx)
}
