package find_centre_dates

import (
	"errors"
	"net/http"

	"github.com/candilib/DTE-BookingService/internal/api/handlers"
	dates "github.com/candilib/DTE-BookingService/internal/usecase/get_available_dates"
)

const (
	msgMissingNom     = "не указано название центра"
	msgCentreNotFound = "центр не найден"
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

// Handle GET /api/v1/centres/dates?nom=&departement=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	nom := query.Get("nom")
	if nom == "" {
		h.logger.Warn("GET /centres/dates - Missing centre name")
		handlers.RespondBadRequest(w, msgMissingNom)
		return
	}

	req := &dates.NameRequest{
		Nom:         nom,
		Departement: query.Get("departement"),
		Begin:       query.Get("begin"),
		End:         query.Get("end"),
	}

	resp, err := h.usecase.ByCentreName(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, dates.ErrCentreNotFound):
			h.logger.Warn("GET /centres/dates - Centre not found: nom=%q, departement=%q",
				req.Nom, req.Departement)
			handlers.RespondNotFound(w, msgCentreNotFound)

		case errors.Is(err, dates.ErrInvalidInput):
			h.logger.Warn("GET /centres/dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingNom)

		default:
			h.logger.Error("GET /centres/dates - Failed to list dates: nom=%q, error=%v", req.Nom, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /centres/dates - %d dates returned, nom=%q", len(resp.Dates), req.Nom)
	handlers.RespondJSON(w, http.StatusOK, &Response{Dates: resp.Dates})
}
