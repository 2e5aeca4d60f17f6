package reservations

import "errors"

// Ошибки сервиса бронирований кандидата
var (
	ErrNoReservation = errors.New("candidat has no reservation")
	ErrInternal      = errors.New("internal error")
)
