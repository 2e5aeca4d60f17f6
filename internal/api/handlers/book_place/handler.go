package book_place

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/candilib/DTE-BookingService/internal/api/handlers"
	"github.com/candilib/DTE-BookingService/internal/api/middleware"
	booking "github.com/candilib/DTE-BookingService/internal/usecase/book_place"
)

const (
	msgInvalidCandidatID = "некорректный ID кандидата"
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidDate       = "некорректная дата"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
	msgCandidatNotFound  = "кандидат не найден"
	msgCentreNotFound    = "центр не найден"
	msgNotEligible       = "бронирование на эту дату недоступно"
	msgSameReservation   = "это место уже забронировано вами"
	msgNoPlaceAvailable  = "свободных мест на эту дату больше нет"
)

type Handler struct {
	usecase BookingUseCase
	logger  Logger
}

func NewHandler(usecase BookingUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle POST /api/v1/candidats/{candidatId}/reservation
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем candidatId из URL
	vars := mux.Vars(r)
	candidatID, err := strconv.ParseInt(vars["candidatId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /candidats/{id}/reservation - Invalid candidat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCandidatID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /candidats/{id}/reservation - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Кандидат может бронировать только для себя
	if userID != candidatID {
		h.logger.Warn("POST /candidats/{id}/reservation - Access denied: candidat_id=%d, user_id=%d",
			candidatID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Декодируем тело запроса
	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /candidats/{id}/reservation - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		h.logger.Warn("POST /candidats/{id}/reservation - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.usecase.Execute(r.Context(), &booking.Request{
		CandidatID: candidatID,
		CentreID:   req.CentreID,
		Date:       date.UTC(),
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidInput):
			h.logger.Warn("POST /candidats/{id}/reservation - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBody)

		case errors.Is(err, booking.ErrCandidatNotFound):
			h.logger.Warn("POST /candidats/{id}/reservation - Candidat not found: candidat_id=%d", candidatID)
			handlers.RespondNotFound(w, msgCandidatNotFound)

		case errors.Is(err, booking.ErrCentreNotFound):
			h.logger.Warn("POST /candidats/{id}/reservation - Centre not found: centre_id=%d", req.CentreID)
			handlers.RespondNotFound(w, msgCentreNotFound)

		case errors.Is(err, booking.ErrCandidatNotEligible):
			h.logger.Warn("POST /candidats/{id}/reservation - Not eligible: candidat_id=%d, date=%s",
				candidatID, req.Date)
			handlers.RespondForbidden(w, msgNotEligible)

		case errors.Is(err, booking.ErrSameReservation):
			h.logger.Warn("POST /candidats/{id}/reservation - Same reservation: candidat_id=%d", candidatID)
			handlers.RespondConflict(w, msgSameReservation)

		case errors.Is(err, booking.ErrPlaceNotAvailable):
			h.logger.Warn("POST /candidats/{id}/reservation - No place available: centre_id=%d, date=%s",
				req.CentreID, req.Date)
			handlers.RespondConflict(w, msgNoPlaceAvailable)

		default:
			h.logger.Error("POST /candidats/{id}/reservation - Failed to book: candidat_id=%d, error=%v",
				candidatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /candidats/{id}/reservation - Place booked: place_id=%d, candidat_id=%d",
		resp.PlaceID, candidatID)
	handlers.RespondJSON(w, http.StatusCreated, toResponse(resp))
}
