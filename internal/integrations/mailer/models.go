package mailer

import "time"

// Типы сообщений почтовой очереди
const (
	TypeCancelBooking = "candidat.booking.cancelled"
)

// CancelBookingMessage сообщение об отмене бронирования
// Доставку письма выполняет отдельный почтовый сервис-консьюмер
type CancelBookingMessage struct {
	MessageID    string    `json:"messageId"`
	Type         string    `json:"type"`
	CandidatID   int64     `json:"candidatId"`
	Email        string    `json:"email"`
	NomNaissance string    `json:"nomNaissance"`
	OccurredAt   time.Time `json:"occurredAt"`
}
