package domain

import "time"

// Place одно бронируемое место экзамена: центр + дата-время
// Поле inspecteur (экзаменатор) существует в схеме БД, но никогда не
// попадает в выборки репозитория и в ответы API
type Place struct {
	ID       int64
	CentreID int64

	// Date дата и время экзамена, UTC
	Date time.Time

	// BookedBy ID кандидата, забронировавшего место. nil - место свободно.
	// Одно место может быть забронировано максимум одним кандидатом
	BookedBy *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBooked проверяет, занято ли место
func (p *Place) IsBooked() bool {
	return p.BookedBy != nil
}

// BookedPlace место вместе с данными центра, для ответа о текущей брони
type BookedPlace struct {
	Place
	Centre Centre
}
