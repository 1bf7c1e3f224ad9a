package model

import "time"

// Slot — окно времени, доступное для записи.
// available == false, пока на слот есть pending или approved заявка.
type Slot struct {
	ID          int64     `json:"id"`
	DatetimeUTC time.Time `json:"datetimeUtc"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}
