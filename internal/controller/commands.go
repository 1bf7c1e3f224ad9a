package controller

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start.
// Текст приветствия и кнопка зависят от того, пишет администратор или гость.
func (c *BotController) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	from := update.Message.From
	chatID := update.Message.Chat.ID

	var text, buttonText string
	if from.ID == c.adminTelegramID {
		text = "👋 Привет! Это панель заявок на звонки.\n\n" +
			"Новые заявки будут приходить сюда с кнопками Одобрить/Отклонить."
		buttonText = "📋 Открыть заявки"
	} else {
		text = "👋 Добро пожаловать!\n\nНажмите кнопку ниже, чтобы записаться на звонок."
		buttonText = "📞 Записаться на звонок"
	}

	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}

	// Кнопка открывает web app записи, если фронтенд настроен
	if c.frontendURL != "" {
		params.ReplyMarkup = &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{
					{Text: buttonText, WebApp: &models.WebAppInfo{URL: c.frontendURL}},
				},
			},
		}
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		c.logger.Error("Failed to send welcome message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// HandleTextMessage отвечает на любое текстовое сообщение Telegram ID
// отправителя — им пользователь идентифицируется в форме записи
func (c *BotController) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	c.logger.Debug("Incoming message",
		zap.Int64("user_id", update.Message.From.ID),
		zap.String("text", update.Message.Text))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   fmt.Sprintf("Ваш Telegram ID: %d", update.Message.From.ID),
	})
}
