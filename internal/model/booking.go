package model

import "time"

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"  // Ожидает решения администратора
	BookingStatusApproved BookingStatus = "approved" // Одобрено
	BookingStatusDeclined BookingStatus = "declined" // Отклонено
)

// Booking — заявка пользователя на слот.
// Допустимые переходы статуса: pending → approved и pending → declined,
// из терминального статуса заявка не выходит. Ссылка на слот неизменна.
type Booking struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	SlotID    int64         `json:"slot_id"`
	Motive    string        `json:"motive"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Дополнительные поля для удобства (заполняются JOIN-ом, не из таблицы bookings)
	User *User `json:"user,omitempty"`
	Slot *Slot `json:"slot,omitempty"`
}
