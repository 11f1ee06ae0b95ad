package postgres

import (
	"context"
	"fmt"

	"creatorlink/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// SaveJob bookmarks a job for a creator. ErrDuplicate means it was
// already saved.
func (s *Store) SaveJob(ctx context.Context, saved *models.SavedJob) error {
	query := `
		INSERT INTO saved_jobs (id, job_id, creator_id, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (job_id, creator_id) DO NOTHING
		RETURNING id
	`

	now := s.now()

	var inserted string
	err := s.sess.
		SelectBySql(query, newID(), saved.JobID, saved.CreatorID, now).
		LoadOneContext(ctx, &inserted)

	if err == dbr.ErrNotFound {
		return ErrDuplicate
	}

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		s.logger.Error("failed to save job",
			zap.String("job_id", saved.JobID),
			zap.String("creator_id", saved.CreatorID),
			zap.Error(err),
		)
		return fmt.Errorf("save job: %w", err)
	}

	saved.ID = inserted
	saved.SavedAt = now

	s.logger.Info("job saved",
		zap.String("job_id", saved.JobID),
		zap.String("creator_id", saved.CreatorID),
	)
	return nil
}

func (s *Store) IsJobSaved(ctx context.Context, jobID, creatorID string) (bool, error) {
	return s.exists(ctx, "saved_jobs", jobID, creatorID)
}

func (s *Store) SavedJobIDs(ctx context.Context, creatorID string) ([]string, error) {
	return s.jobIDs(ctx, "saved_jobs", creatorID)
}

func (s *Store) UnsaveJob(ctx context.Context, jobID, creatorID string) error {
	if !validID(jobID) {
		return nil
	}

	_, err := s.sess.
		DeleteFrom("saved_jobs").
		Where("job_id = ? AND creator_id = ?", jobID, creatorID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to unsave job",
			zap.String("job_id", jobID),
			zap.String("creator_id", creatorID),
			zap.Error(err),
		)
		return fmt.Errorf("unsave job: %w", err)
	}

	s.logger.Info("job unsaved",
		zap.String("job_id", jobID),
		zap.String("creator_id", creatorID),
	)
	return nil
}

// ListSavedJobs returns the jobs a creator bookmarked, most recently saved
// first.
func (s *Store) ListSavedJobs(ctx context.Context, creatorID string) ([]models.Job, error) {
	var saved []models.SavedJob

	_, err := s.sess.
		Select("*").
		From("saved_jobs").
		Where("creator_id = ?", creatorID).
		OrderDesc("saved_at").
		LoadContext(ctx, &saved)

	if err != nil {
		s.logger.Error("failed to list saved jobs",
			zap.String("creator_id", creatorID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list saved jobs: %w", err)
	}

	ids := make([]string, 0, len(saved))
	for _, sj := range saved {
		ids = append(ids, sj.JobID)
	}

	byID, err := s.GetJobsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	jobs := make([]models.Job, 0, len(saved))
	for _, sj := range saved {
		if job, ok := byID[sj.JobID]; ok {
			jobs = append(jobs, *job)
		}
	}

	return jobs, nil
}
