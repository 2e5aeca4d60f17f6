package get_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/candilib/DTE-BookingService/internal/api/handlers"
	"github.com/candilib/DTE-BookingService/internal/api/middleware"
	"github.com/candilib/DTE-BookingService/internal/service/reservations"
)

const (
	msgInvalidCandidatID = "некорректный ID кандидата"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
	msgNoReservation     = "у вас нет активного бронирования"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/candidats/{candidatId}/reservation
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем candidatId из URL
	vars := mux.Vars(r)
	candidatID, err := strconv.ParseInt(vars["candidatId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /candidats/{id}/reservation - Invalid candidat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCandidatID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /candidats/{id}/reservation - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Кандидат видит только свою бронь
	if userID != candidatID {
		h.logger.Warn("GET /candidats/{id}/reservation - Access denied: candidat_id=%d, user_id=%d",
			candidatID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	reservation, err := h.service.GetByCandidat(r.Context(), candidatID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrNoReservation):
			h.logger.Warn("GET /candidats/{id}/reservation - No reservation: candidat_id=%d", candidatID)
			handlers.RespondNotFound(w, msgNoReservation)

		default:
			h.logger.Error("GET /candidats/{id}/reservation - Failed to get reservation: candidat_id=%d, error=%v",
				candidatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /candidats/{id}/reservation - Reservation retrieved: candidat_id=%d, place_id=%d",
		candidatID, reservation.PlaceID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
