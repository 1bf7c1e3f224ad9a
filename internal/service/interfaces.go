package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/booking_bot/internal/model"
)

// Контракты хранилища. Реализуются pgx-репозиториями,
// в тестах подменяются in-memory фейками.

type UserStore interface {
	// Upsert создаёт пользователя или возвращает существующего по telegram_id,
	// не трогая его контактные данные
	Upsert(ctx context.Context, user *model.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type SlotStore interface {
	Create(ctx context.Context, slot *model.Slot) error
	GetByID(ctx context.Context, id int64) (*model.Slot, error)
	GetAvailableFrom(ctx context.Context, from time.Time) ([]*model.Slot, error)
	// Reserve атомарно помечает свободный слот занятым,
	// возвращает model.ErrSlotUnavailable если слот уже занят
	Reserve(ctx context.Context, slotID int64) error
	Release(ctx context.Context, slotID int64) error
	CountAvailableFrom(ctx context.Context, from time.Time) (int64, error)
}

type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]*model.Booking, error)
	// UpdateStatusFromPending возвращает false, если заявка уже не pending
	UpdateStatusFromPending(ctx context.Context, id int64, status model.BookingStatus) (bool, error)
	CountPending(ctx context.Context) (int64, error)
}

// Notifier — исходящий канал уведомлений. Ошибки доставки не откатывают
// изменения в хранилище: заявка важнее уведомления.
type Notifier interface {
	NotifyAdminNewBooking(ctx context.Context, booking *model.Booking) error
	NotifyUserDecision(ctx context.Context, booking *model.Booking) error
}
