package model

import "time"

// User — заявитель, идентифицируется по Telegram ID.
// Создаётся лениво при первой заявке и после этого не изменяется.
type User struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Motive     string    `json:"motive"`
	CreatedAt  time.Time `json:"created_at"`
}
