package reservations

import (
	"context"
	"errors"
	"fmt"

	placeRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/place"
	"github.com/candilib/DTE-BookingService/internal/service/eligibility"
	"github.com/candilib/DTE-BookingService/internal/service/reservations/models"
)

// Service сервис для чтения текущей брони кандидата
type Service struct {
	placeRepo PlaceRepository
	policy    *eligibility.Policy
	logger    Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(placeRepo PlaceRepository, rules eligibility.Rules, logger Logger) *Service {
	return &Service{
		placeRepo: placeRepo,
		policy:    eligibility.NewPolicy(rules),
		logger:    logger,
	}
}

// GetByCandidat возвращает текущую бронь кандидата вместе с последним
// днем безштрафной отмены
func (s *Service) GetByCandidat(ctx context.Context, candidatID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByCandidat: fetching reservation for candidat=%d", candidatID)

	booked, err := s.placeRepo.FindBookedByCandidat(ctx, candidatID)
	if err != nil {
		if errors.Is(err, placeRepo.ErrPlaceNotFound) {
			s.logger.Warn("GetByCandidat: candidat id=%d has no reservation", candidatID)
			return nil, ErrNoReservation
		}
		s.logger.Error("GetByCandidat: repository error for candidat id=%d: %v", candidatID, err)
		return nil, fmt.Errorf("%w: GetByCandidat - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookedPlace(booked, s.policy.LastDateToCancel(booked.Date)), nil
}
