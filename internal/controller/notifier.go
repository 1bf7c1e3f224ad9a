package controller

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/booking_bot/internal/metrics"
	"github.com/Freeeeeet/booking_bot/internal/model"
)

// TelegramNotifier отправляет уведомления администратору и пользователям.
// Реализует service.Notifier.
type TelegramNotifier struct {
	bot             *bot.Bot
	adminTelegramID int64
	logger          *zap.Logger
}

func NewTelegramNotifier(b *bot.Bot, adminTelegramID int64, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		bot:             b,
		adminTelegramID: adminTelegramID,
		logger:          logger,
	}
}

// NotifyAdminNewBooking отправляет администратору заявку с кнопками решения
func (n *TelegramNotifier) NotifyAdminNewBooking(ctx context.Context, booking *model.Booking) error {
	motive := booking.Motive
	if motive == "" {
		motive = "без указания темы"
	}

	text := fmt.Sprintf(
		"📩 Новая заявка на звонок\n\n"+
			"От: %s\n"+
			"Тема: %s\n"+
			"Время: %s\n\n"+
			"Одобрить?",
		booking.User.Name,
		motive,
		booking.Slot.DatetimeUTC.Format("02.01.2006 15:04 UTC"),
	)

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✅ Одобрить", CallbackData: EncodeDecision(model.BookingStatusApproved, booking.ID)},
				{Text: "❌ Отклонить", CallbackData: EncodeDecision(model.BookingStatusDeclined, booking.ID)},
			},
		},
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      n.adminTelegramID,
		Text:        text,
		ReplyMarkup: keyboard,
	})

	if err != nil {
		metrics.NotificationsSent.WithLabelValues("admin_new_booking", "error").Inc()
		return fmt.Errorf("send admin notification: %w", err)
	}

	metrics.NotificationsSent.WithLabelValues("admin_new_booking", "ok").Inc()
	return nil
}

// NotifyUserDecision сообщает пользователю результат решения по его заявке
func (n *TelegramNotifier) NotifyUserDecision(ctx context.Context, booking *model.Booking) error {
	if booking.User == nil || booking.Slot == nil {
		return fmt.Errorf("booking %d is not expanded with user and slot", booking.ID)
	}

	slotTime := booking.Slot.DatetimeUTC.Format("02.01.2006 15:04 UTC")

	var text string
	switch booking.Status {
	case model.BookingStatusApproved:
		text = fmt.Sprintf("✅ Ваша запись на %s подтверждена!", slotTime)
	case model.BookingStatusDeclined:
		text = fmt.Sprintf("❌ К сожалению, ваша запись на %s отклонена.\nВыберите другое время.", slotTime)
	default:
		return fmt.Errorf("booking %d has no decision to notify about", booking.ID)
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: booking.User.TelegramID,
		Text:   text,
	})

	if err != nil {
		metrics.NotificationsSent.WithLabelValues("user_decision", "error").Inc()
		return fmt.Errorf("send user notification: %w", err)
	}

	metrics.NotificationsSent.WithLabelValues("user_decision", "ok").Inc()
	return nil
}
