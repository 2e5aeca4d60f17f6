package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/candilib/DTE-BookingService/internal/api/handlers"
	dates "github.com/candilib/DTE-BookingService/internal/usecase/get_available_dates"
)

const (
	msgInvalidCentreID = "некорректный ID центра"
	msgCentreNotFound  = "центр не найден"
)

type Handler struct {
	usecase DatesUseCase
	logger  Logger
}

func NewHandler(usecase DatesUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle GET /api/v1/centres/{centreId}/dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем centreId из URL
	vars := mux.Vars(r)
	centreID, err := strconv.ParseInt(vars["centreId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /centres/{id}/dates - Invalid centre ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCentreID)
		return
	}

	// Границы диапазона необязательны; разбор и деградация
	// некорректных значений - забота use case
	query := r.URL.Query()
	req := &dates.Request{
		CentreID: centreID,
		Begin:    query.Get("begin"),
		End:      query.Get("end"),
	}

	resp, err := h.usecase.ByCentreID(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, dates.ErrCentreNotFound):
			h.logger.Warn("GET /centres/{id}/dates - Centre not found: centre_id=%d", centreID)
			handlers.RespondNotFound(w, msgCentreNotFound)

		case errors.Is(err, dates.ErrInvalidInput):
			h.logger.Warn("GET /centres/{id}/dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCentreID)

		default:
			h.logger.Error("GET /centres/{id}/dates - Failed to list dates: centre_id=%d, error=%v", centreID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /centres/{id}/dates - %d dates returned, centre_id=%d", len(resp.Dates), centreID)
	handlers.RespondJSON(w, http.StatusOK, toResponse(resp))
}
