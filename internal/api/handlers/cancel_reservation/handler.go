package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/candilib/DTE-BookingService/internal/api/handlers"
	"github.com/candilib/DTE-BookingService/internal/api/middleware"
	cancel "github.com/candilib/DTE-BookingService/internal/usecase/cancel_reservation"
)

const (
	msgInvalidCandidatID = "некорректный ID кандидата"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
	msgCandidatNotFound  = "кандидат не найден"
	msgNoReservation     = "у вас нет активного бронирования"
)

type Handler struct {
	usecase CancelUseCase
	logger  Logger
}

func NewHandler(usecase CancelUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/candidats/{candidatId}/reservation
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем candidatId из URL
	vars := mux.Vars(r)
	candidatID, err := strconv.ParseInt(vars["candidatId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /candidats/{id}/reservation - Invalid candidat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCandidatID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /candidats/{id}/reservation - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Кандидат может отменять только свою бронь
	if userID != candidatID {
		h.logger.Warn("DELETE /candidats/{id}/reservation - Access denied: candidat_id=%d, user_id=%d",
			candidatID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	resp, err := h.usecase.Execute(r.Context(), &cancel.Request{CandidatID: candidatID})
	if err != nil {
		switch {
		case errors.Is(err, cancel.ErrInvalidInput):
			h.logger.Warn("DELETE /candidats/{id}/reservation - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCandidatID)

		case errors.Is(err, cancel.ErrCandidatNotFound):
			h.logger.Warn("DELETE /candidats/{id}/reservation - Candidat not found: candidat_id=%d", candidatID)
			handlers.RespondNotFound(w, msgCandidatNotFound)

		case errors.Is(err, cancel.ErrNoReservation):
			h.logger.Warn("DELETE /candidats/{id}/reservation - No reservation: candidat_id=%d", candidatID)
			handlers.RespondNotFound(w, msgNoReservation)

		default:
			h.logger.Error("DELETE /candidats/{id}/reservation - Failed to cancel: candidat_id=%d, error=%v",
				candidatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /candidats/{id}/reservation - Reservation cancelled: candidat_id=%d, statusmail=%t",
		candidatID, resp.Statusmail)
	handlers.RespondJSON(w, http.StatusOK, toResponse(resp))
}
