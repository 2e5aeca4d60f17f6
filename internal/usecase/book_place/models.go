package book_place

import "time"

// Request модель запроса на бронирование места
type Request struct {
	CandidatID int64     // ID кандидата
	CentreID   int64     // ID экзаменационного центра
	Date       time.Time // Дата и время слота, UTC
}

// Response модель ответа с забронированным местом
// Данные экзаменатора в ответ не включаются
type Response struct {
	PlaceID          int64     // ID места
	CentreID         int64     // ID центра
	Date             time.Time // Дата и время экзамена
	LastDateToCancel time.Time // Последний день отмены без штрафа (без времени)
}
