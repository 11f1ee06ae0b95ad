package service

import (
	"context"
	"strings"

	"creatorlink/internal/models"

	"go.uber.org/zap"
)

func (s *Service) ListTravels(ctx context.Context, userID string) ([]models.Travel, error) {
	if _, err := s.requireRole(ctx, userID, models.UserTypeCreator, msgCreatorsOnlyTrips); err != nil {
		return nil, err
	}

	travels, err := s.repo.ListTravels(ctx, userID)
	if err != nil {
		return nil, err
	}
	if travels == nil {
		travels = []models.Travel{}
	}
	return travels, nil
}

// CreateTravel validates the itinerary, drops the creator's travels that
// have already ended, then inserts the new one.
func (s *Service) CreateTravel(ctx context.Context, userID string, req models.TravelRequest) (*models.Travel, error) {
	if _, err := s.requireRole(ctx, userID, models.UserTypeCreator, msgCreatorsOnlyAdd); err != nil {
		return nil, err
	}

	city := strings.TrimSpace(req.DestinationCity)
	country := strings.TrimSpace(req.DestinationCountry)
	if city == "" || country == "" || isZeroDate(req.StartDate) || isZeroDate(req.EndDate) {
		return nil, invalid(msgMissingFields)
	}

	if req.EndDate.Before(*req.StartDate) {
		return nil, invalid(msgEndBeforeStart)
	}

	if _, err := s.repo.DeleteExpiredTravels(ctx, userID, s.today()); err != nil {
		return nil, err
	}

	travel := &models.Travel{
		CreatorID:          userID,
		DestinationCity:    city,
		DestinationCountry: country,
		StartDate:          *req.StartDate,
		EndDate:            *req.EndDate,
	}
	if err := s.repo.CreateTravel(ctx, travel); err != nil {
		return nil, err
	}

	return travel, nil
}

// UpdateTravel applies the supplied fields. The resulting date range is
// validated against the stored dates when only one side changes.
func (s *Service) UpdateTravel(ctx context.Context, userID, travelID string, req models.TravelRequest) (*models.Travel, error) {
	existing, err := s.repo.GetTravel(ctx, travelID, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound(msgTravelNotOwned)
	}

	patch := models.TravelPatch{
		DestinationCity:    models.NullIfEmpty(strings.TrimSpace(req.DestinationCity)),
		DestinationCountry: models.NullIfEmpty(strings.TrimSpace(req.DestinationCountry)),
	}
	if !isZeroDate(req.StartDate) {
		patch.StartDate = req.StartDate
	}
	if !isZeroDate(req.EndDate) {
		patch.EndDate = req.EndDate
	}

	start, end := existing.StartDate, existing.EndDate
	if patch.StartDate != nil {
		start = *patch.StartDate
	}
	if patch.EndDate != nil {
		end = *patch.EndDate
	}
	if end.Before(start) {
		return nil, invalid(msgEndBeforeStart)
	}

	updated, err := s.repo.UpdateTravel(ctx, travelID, userID, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, notFound(msgTravelNotOwned)
	}

	s.logger.Debug("travel patched",
		zap.String("travel_id", travelID),
		zap.Stringer("start", updated.StartDate),
		zap.Stringer("end", updated.EndDate),
	)
	return updated, nil
}

func (s *Service) DeleteTravel(ctx context.Context, userID, travelID string) error {
	deleted, err := s.repo.DeleteTravel(ctx, travelID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound(msgTravelNotOwned)
	}
	return nil
}

func isZeroDate(d *models.Date) bool {
	return d == nil || d.IsZero()
}
