package cancel_reservation

import (
	"time"

	cancel "github.com/candilib/DTE-BookingService/internal/usecase/cancel_reservation"
)

// Response результат отмены бронирования
type Response struct {
	Statusmail   bool    `json:"statusmail"`
	Message      string  `json:"message"`
	CanBookAfter *string `json:"canBookAfter,omitempty"`
}

func toResponse(resp *cancel.Response) *Response {
	out := &Response{
		Statusmail: resp.Statusmail,
		Message:    resp.Message,
	}
	if resp.CanBookAfter != nil {
		formatted := resp.CanBookAfter.UTC().Format(time.RFC3339)
		out.CanBookAfter = &formatted
	}
	return out
}
