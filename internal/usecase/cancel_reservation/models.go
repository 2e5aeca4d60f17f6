package cancel_reservation

import "time"

// Request запрос на отмену бронирования
type Request struct {
	CandidatID int64
}

// Response результат отмены бронирования
type Response struct {
	// Statusmail false, если уведомление не удалось опубликовать.
	// Сама отмена при этом остается в силе
	Statusmail bool

	// Message сообщение кандидату
	Message string

	// CanBookAfter окончание штрафного периода, задано при поздней отмене
	CanBookAfter *time.Time
}
