package models

import (
	"time"

	"github.com/candilib/DTE-BookingService/internal/domain"
)

// CentreInfo данные центра в ответе о брони
type CentreInfo struct {
	ID          int64  `json:"id"`
	Nom         string `json:"nom"`
	Departement string `json:"departement"`
	Adresse     string `json:"adresse,omitempty"`
}

// ReservationResponse текущая бронь кандидата.
// Экзаменатор в ответ не попадает
type ReservationResponse struct {
	PlaceID          int64      `json:"placeId"`
	Centre           CentreInfo `json:"centre"`
	Date             string     `json:"date"`
	LastDateToCancel string     `json:"lastDateToCancel"`
}

// FromDomainBookedPlace конвертирует доменную бронь в ответ сервиса
func FromDomainBookedPlace(bp *domain.BookedPlace, lastDateToCancel time.Time) *ReservationResponse {
	return &ReservationResponse{
		PlaceID: bp.ID,
		Centre: CentreInfo{
			ID:          bp.Centre.ID,
			Nom:         bp.Centre.Nom,
			Departement: bp.Centre.Departement,
			Adresse:     bp.Centre.Adresse,
		},
		Date:             bp.Date.UTC().Format(time.RFC3339),
		LastDateToCancel: lastDateToCancel.Format(domain.DateFormat),
	}
}
