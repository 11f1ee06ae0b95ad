package postgres

import (
	"context"
	"fmt"

	"creatorlink/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// ListTravels returns every travel of a creator, past ones included,
// earliest start first.
func (s *Store) ListTravels(ctx context.Context, creatorID string) ([]models.Travel, error) {
	var travels []models.Travel

	_, err := s.sess.
		Select("*").
		From("creator_travels").
		Where("creator_id = ?", creatorID).
		OrderAsc("start_date").
		LoadContext(ctx, &travels)

	if err != nil {
		s.logger.Error("failed to list travels",
			zap.String("creator_id", creatorID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list travels: %w", err)
	}

	return travels, nil
}

// ListActiveTravels preselects travels with start_date <= latestStart and
// end_date >= earliestEnd across all creators.
func (s *Store) ListActiveTravels(ctx context.Context, latestStart, earliestEnd models.Date) ([]models.Travel, error) {
	var travels []models.Travel

	_, err := s.sess.
		Select("*").
		From("creator_travels").
		Where("start_date <= ?", latestStart.String()).
		Where("end_date >= ?", earliestEnd.String()).
		OrderAsc("start_date").
		LoadContext(ctx, &travels)

	if err != nil {
		s.logger.Error("failed to list active travels",
			zap.Stringer("latest_start", latestStart),
			zap.Stringer("earliest_end", earliestEnd),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list active travels: %w", err)
	}

	return travels, nil
}

// GetTravel returns the travel only if creatorID owns it.
func (s *Store) GetTravel(ctx context.Context, travelID, creatorID string) (*models.Travel, error) {
	if !validID(travelID) {
		return nil, nil
	}

	var travel models.Travel

	err := s.sess.
		Select("*").
		From("creator_travels").
		Where("id = ?", travelID).
		Where("creator_id = ?", creatorID).
		LoadOneContext(ctx, &travel)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get travel",
			zap.String("travel_id", travelID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get travel: %w", err)
	}

	return &travel, nil
}

func (s *Store) CreateTravel(ctx context.Context, t *models.Travel) error {
	t.ID = newID()
	t.CreatedAt = s.now()

	_, err := s.sess.
		InsertInto("creator_travels").
		Columns("id", "creator_id", "destination_city", "destination_country", "start_date", "end_date", "created_at").
		Values(t.ID, t.CreatorID, t.DestinationCity, t.DestinationCountry, t.StartDate.String(), t.EndDate.String(), t.CreatedAt).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to create travel",
			zap.String("creator_id", t.CreatorID),
			zap.Error(err),
		)
		return fmt.Errorf("create travel: %w", err)
	}

	s.logger.Info("travel created",
		zap.String("travel_id", t.ID),
		zap.String("creator_id", t.CreatorID),
		zap.String("destination", t.DestinationCity+", "+t.DestinationCountry),
	)
	return nil
}

// UpdateTravel applies the non-nil fields of patch and returns the stored
// row, or nil when the travel does not exist or is not creatorID's.
func (s *Store) UpdateTravel(ctx context.Context, travelID, creatorID string, patch models.TravelPatch) (*models.Travel, error) {
	if !validID(travelID) {
		return nil, nil
	}

	stmt := s.sess.
		Update("creator_travels").
		Where("id = ?", travelID).
		Where("creator_id = ?", creatorID)

	changed := false
	if patch.DestinationCity != nil {
		stmt = stmt.Set("destination_city", *patch.DestinationCity)
		changed = true
	}
	if patch.DestinationCountry != nil {
		stmt = stmt.Set("destination_country", *patch.DestinationCountry)
		changed = true
	}
	if patch.StartDate != nil {
		stmt = stmt.Set("start_date", patch.StartDate.String())
		changed = true
	}
	if patch.EndDate != nil {
		stmt = stmt.Set("end_date", patch.EndDate.String())
		changed = true
	}

	if !changed {
		return s.GetTravel(ctx, travelID, creatorID)
	}

	res, err := stmt.ExecContext(ctx)
	if err != nil {
		s.logger.Error("failed to update travel",
			zap.String("travel_id", travelID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update travel: %w", err)
	}

	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, nil
	}

	s.logger.Info("travel updated", zap.String("travel_id", travelID))
	return s.GetTravel(ctx, travelID, creatorID)
}

// DeleteTravel reports whether a row owned by creatorID was removed.
func (s *Store) DeleteTravel(ctx context.Context, travelID, creatorID string) (bool, error) {
	if !validID(travelID) {
		return false, nil
	}

	res, err := s.sess.
		DeleteFrom("creator_travels").
		Where("id = ?", travelID).
		Where("creator_id = ?", creatorID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete travel",
			zap.String("travel_id", travelID),
			zap.Error(err),
		)
		return false, fmt.Errorf("delete travel: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows > 0 {
		s.logger.Info("travel deleted", zap.String("travel_id", travelID))
	}
	return rows > 0, nil
}

// DeleteExpiredTravels removes the creator's travels that ended before today.
func (s *Store) DeleteExpiredTravels(ctx context.Context, creatorID string, today models.Date) (int64, error) {
	res, err := s.sess.
		DeleteFrom("creator_travels").
		Where("creator_id = ?", creatorID).
		Where("end_date < ?", today.String()).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete expired travels",
			zap.String("creator_id", creatorID),
			zap.Error(err),
		)
		return 0, fmt.Errorf("delete expired travels: %w", err)
	}

	deleted, _ := res.RowsAffected()
	if deleted > 0 {
		s.logger.Info("expired travels deleted",
			zap.String("creator_id", creatorID),
			zap.Int64("count", deleted),
		)
	}
	return deleted, nil
}
