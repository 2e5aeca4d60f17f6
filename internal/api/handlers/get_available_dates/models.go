package get_available_dates

import (
	dates "github.com/candilib/DTE-BookingService/internal/usecase/get_available_dates"
)

// Response список доступных дат центра
type Response struct {
	Dates []string `json:"dates"`
}

func toResponse(resp *dates.Response) *Response {
	return &Response{Dates: resp.Dates}
}
