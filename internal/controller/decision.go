package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/booking_bot/internal/model"
)

// Формат callback data кнопок решения: "<action>_<bookingId>",
// например "approve_42". Формат закреплён развёрнутыми клиентами,
// поэтому парсим его в типизированное Decision только на этой границе.
const (
	actionApprove = "approve"
	actionDecline = "decline"
)

// Decision — типизированное решение администратора из callback data
type Decision struct {
	Status    model.BookingStatus
	BookingID int64
}

// EncodeDecision собирает callback data для кнопки решения
func EncodeDecision(status model.BookingStatus, bookingID int64) string {
	action := actionApprove
	if status == model.BookingStatusDeclined {
		action = actionDecline
	}
	return fmt.Sprintf("%s_%d", action, bookingID)
}

// ParseDecision разбирает callback data, разделитель — первое подчёркивание
func ParseDecision(data string) (Decision, error) {
	action, rawID, ok := strings.Cut(data, "_")
	if !ok {
		return Decision{}, fmt.Errorf("invalid decision payload %q", data)
	}

	var status model.BookingStatus
	switch action {
	case actionApprove:
		status = model.BookingStatusApproved
	case actionDecline:
		status = model.BookingStatusDeclined
	default:
		return Decision{}, fmt.Errorf("unknown decision action %q", action)
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return Decision{}, fmt.Errorf("invalid booking id in payload %q: %w", data, err)
	}

	return Decision{Status: status, BookingID: id}, nil
}

// HandleDecisionCallback обрабатывает нажатие кнопки Одобрить/Отклонить
func (c *BotController) HandleDecisionCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	decision, err := ParseDecision(callback.Data)
	if err != nil {
		c.logger.Warn("Malformed decision callback", zap.String("data", callback.Data), zap.Error(err))
		answerCallback(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	booking, err := c.bookingService.Decide(ctx, decision.BookingID, decision.Status)
	switch {
	case errors.Is(err, model.ErrNotFound):
		// Заявки нет — отвечаем на callback, чтобы убрать "часики",
		// и больше ничего не делаем
		answerCallback(ctx, b, callback.ID, "Заявка не найдена")
		return
	case errors.Is(err, model.ErrAlreadyDecided):
		answerCallback(ctx, b, callback.ID, "Решение уже принято")
		return
	case err != nil:
		c.logger.Error("Failed to decide booking",
			zap.Int64("booking_id", decision.BookingID),
			zap.Error(err))
		answerCallback(ctx, b, callback.ID, "❌ Не удалось применить решение")
		return
	}

	var resultText, answerText string
	slotTime := booking.Slot.DatetimeUTC.Format("02.01.2006 15:04 UTC")
	if booking.Status == model.BookingStatusApproved {
		resultText = fmt.Sprintf("✅ Заявка от %s (%s) одобрена.", booking.User.Name, slotTime)
		answerText = "Заявка одобрена"
	} else {
		resultText = fmt.Sprintf("❌ Заявка от %s (%s) отклонена.", booking.User.Name, slotTime)
		answerText = "Заявка отклонена"
	}

	// Обновляем исходное сообщение, чтобы кнопки исчезли,
	// а в чате остался итог решения
	if msg := messageFromCallback(callback); msg != nil {
		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Text:      resultText,
		})
		if err != nil {
			c.logger.Error("Failed to edit decision message",
				zap.Int64("booking_id", booking.ID),
				zap.Error(err))
		}
	}

	answerCallback(ctx, b, callback.ID, answerText)
}

// answerCallback отвечает на callback query (без alert)
func answerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// messageFromCallback извлекает сообщение из callback query
func messageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}
