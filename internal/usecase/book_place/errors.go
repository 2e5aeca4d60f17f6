package book_place

import "errors"

var (
	// ErrCandidatNotFound возвращается, когда кандидат не найден
	ErrCandidatNotFound = errors.New("candidat not found")

	// ErrCentreNotFound возвращается, когда центр не найден
	ErrCentreNotFound = errors.New("centre not found")

	// ErrCandidatNotEligible возвращается, когда запрошенная дата раньше
	// даты допуска кандидата (окно бронирования или штрафной период)
	ErrCandidatNotEligible = errors.New("candidat is not authorized to book at this date")

	// ErrSameReservation возвращается при попытке забронировать уже
	// забронированный кандидатом слот
	ErrSameReservation = errors.New("candidat already holds this exact reservation")

	// ErrPlaceNotAvailable возвращается, когда свободного места на
	// запрошенные центр и дату уже нет
	ErrPlaceNotAvailable = errors.New("place is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
