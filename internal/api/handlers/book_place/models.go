package book_place

import (
	"time"

	"github.com/candilib/DTE-BookingService/internal/domain"
	booking "github.com/candilib/DTE-BookingService/internal/usecase/book_place"
)

// Request тело запроса на бронирование
type Request struct {
	CentreID int64  `json:"centreId"`
	Date     string `json:"date"` // RFC 3339
}

// Response забронированное место
type Response struct {
	PlaceID          int64  `json:"placeId"`
	CentreID         int64  `json:"centreId"`
	Date             string `json:"date"`
	LastDateToCancel string `json:"lastDateToCancel"`
}

func toResponse(resp *booking.Response) *Response {
	return &Response{
		PlaceID:          resp.PlaceID,
		CentreID:         resp.CentreID,
		Date:             resp.Date.UTC().Format(time.RFC3339),
		LastDateToCancel: resp.LastDateToCancel.Format(domain.DateFormat),
	}
}
