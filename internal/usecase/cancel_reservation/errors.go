package cancel_reservation

import "errors"

// Ошибки use case отмены бронирования
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrCandidatNotFound = errors.New("candidat not found")
	ErrNoReservation    = errors.New("candidat has no reservation")
	ErrInternal         = errors.New("internal error")
)
