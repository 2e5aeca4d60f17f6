package has_available_places

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/candilib/DTE-BookingService/internal/api/handlers"
	"github.com/candilib/DTE-BookingService/internal/domain"
	dates "github.com/candilib/DTE-BookingService/internal/usecase/get_available_dates"
)

const (
	msgInvalidCentreID = "некорректный ID центра"
	msgInvalidDate     = "некорректная дата"
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

// Handle GET /api/v1/centres/{centreId}/dates/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем параметры из URL
	vars := mux.Vars(r)

	centreID, err := strconv.ParseInt(vars["centreId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /centres/{id}/dates/{date} - Invalid centre ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCentreID)
		return
	}

	day, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /centres/{id}/dates/{date} - Invalid date %q: %v", vars["date"], err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.usecase.ForDate(r.Context(), &dates.DateRequest{CentreID: centreID, Date: day})
	if err != nil {
		switch {
		case errors.Is(err, dates.ErrCentreNotFound):
			h.logger.Warn("GET /centres/{id}/dates/{date} - Centre not found: centre_id=%d", centreID)
			handlers.RespondNotFound(w, msgCentreNotFound)

		case errors.Is(err, dates.ErrInvalidInput):
			h.logger.Warn("GET /centres/{id}/dates/{date} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /centres/{id}/dates/{date} - Failed to list places: centre_id=%d, error=%v",
				centreID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /centres/{id}/dates/{date} - %d slots returned, centre_id=%d, date=%s",
		len(resp.Dates), centreID, vars["date"])
	handlers.RespondJSON(w, http.StatusOK, &Response{Dates: resp.Dates})
}
