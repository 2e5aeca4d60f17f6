// Package get_booking_config отдает публичные константы бронирования:
// фронту они нужны для отображения окна бронирования и предупреждений
// об отмене
package get_booking_config

import (
	"net/http"

	"github.com/candilib/DTE-BookingService/internal/api/handlers"
	"github.com/candilib/DTE-BookingService/internal/service/eligibility"
)

// Response публичные константы бронирования (в днях)
type Response struct {
	DelayToBook      int `json:"delayToBook"`
	TimeoutToRetry   int `json:"timeoutToRetry"`
	DaysForbidCancel int `json:"daysForbidCancel"`
}

type Handler struct {
	rules eligibility.Rules
}

func NewHandler(rules eligibility.Rules) *Handler {
	return &Handler{rules: rules}
}

// Handle GET /api/v1/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, &Response{
		DelayToBook:      h.rules.DelayToBook,
		TimeoutToRetry:   h.rules.TimeoutToRetry,
		DaysForbidCancel: h.rules.DaysForbidCancel,
	})
}
