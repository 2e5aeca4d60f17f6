package get_available_dates

import "errors"

// Ошибки use case поиска доступных дат
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrCentreNotFound = errors.New("centre not found")
	ErrInternal       = errors.New("internal error")
)
