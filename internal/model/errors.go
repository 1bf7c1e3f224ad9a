package model

import "errors"

// Ошибки доменного уровня. HTTP слой переводит их в статус-коды,
// бот-обработчики — в тексты для пользователя.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrSlotUnavailable = errors.New("slot is not available")
	ErrAlreadyDecided  = errors.New("booking already decided")
)
