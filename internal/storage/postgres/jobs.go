package postgres

import (
	"context"
	"fmt"

	"creatorlink/internal/models"

	"github.com/gocraft/dbr/v2"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ListJobs returns every posting, newest first.
func (s *Store) ListJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job

	_, err := s.sess.
		Select("*").
		From("jobs").
		OrderDesc("created_at").
		LoadContext(ctx, &jobs)

	if err != nil {
		s.logger.Error("failed to list jobs", zap.Error(err))
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	return jobs, nil
}

func (s *Store) ListJobsByOwner(ctx context.Context, ownerID string) ([]models.Job, error) {
	var jobs []models.Job

	_, err := s.sess.
		Select("*").
		From("jobs").
		Where("business_owner_id = ?", ownerID).
		OrderDesc("created_at").
		LoadContext(ctx, &jobs)

	if err != nil {
		s.logger.Error("failed to list owner jobs",
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list owner jobs: %w", err)
	}

	return jobs, nil
}

func (s *Store) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	if !validID(jobID) {
		return nil, nil
	}

	var job models.Job

	err := s.sess.
		Select("*").
		From("jobs").
		Where("id = ?", jobID).
		LoadOneContext(ctx, &job)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get job",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get job: %w", err)
	}

	return &job, nil
}

// GetJobsByIDs returns the jobs keyed by id. Unknown ids are skipped.
func (s *Store) GetJobsByIDs(ctx context.Context, ids []string) (map[string]*models.Job, error) {
	result := make(map[string]*models.Job, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var jobs []models.Job

	_, err := s.sess.
		Select("*").
		From("jobs").
		Where("id = ANY(?)", pq.Array(ids)).
		LoadContext(ctx, &jobs)

	if err != nil {
		s.logger.Error("failed to get jobs by ids",
			zap.Int("count", len(ids)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get jobs by ids: %w", err)
	}

	for i := range jobs {
		result[jobs[i].ID] = &jobs[i]
	}

	return result, nil
}

func (s *Store) CreateJob(ctx context.Context, job *models.Job) error {
	now := s.now()
	job.ID = newID()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := s.sess.
		InsertInto("jobs").
		Columns("id", "business_owner_id", "title", "description", "business_name", "city", "country",
			"job_date", "job_time", "industry", "payment_range", "payment_notes", "created_at", "updated_at").
		Values(job.ID, job.BusinessOwnerID, job.Title, job.Description, job.BusinessName, job.City, job.Country,
			dateArg(job.JobDate), job.JobTime, job.Industry, job.PaymentRange, job.PaymentNotes, now, now).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to create job",
			zap.String("owner_id", job.BusinessOwnerID),
			zap.Error(err),
		)
		return fmt.Errorf("create job: %w", err)
	}

	s.logger.Info("job created",
		zap.String("job_id", job.ID),
		zap.String("owner_id", job.BusinessOwnerID),
		zap.String("title", job.Title),
	)
	return nil
}

// UpdateJob replaces the editable columns of a job owned by job.BusinessOwnerID.
// Returns nil when no such job exists.
func (s *Store) UpdateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	if !validID(job.ID) {
		return nil, nil
	}

	res, err := s.sess.
		Update("jobs").
		Set("title", job.Title).
		Set("description", job.Description).
		Set("business_name", job.BusinessName).
		Set("city", job.City).
		Set("country", job.Country).
		Set("job_date", dateArg(job.JobDate)).
		Set("job_time", job.JobTime).
		Set("industry", job.Industry).
		Set("payment_range", job.PaymentRange).
		Set("payment_notes", job.PaymentNotes).
		Set("updated_at", s.now()).
		Where("id = ?", job.ID).
		Where("business_owner_id = ?", job.BusinessOwnerID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update job",
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update job: %w", err)
	}

	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, nil
	}

	s.logger.Info("job updated", zap.String("job_id", job.ID))
	return s.GetJob(ctx, job.ID)
}

// DeleteJob reports whether a job owned by ownerID was removed.
func (s *Store) DeleteJob(ctx context.Context, jobID, ownerID string) (bool, error) {
	if !validID(jobID) {
		return false, nil
	}

	res, err := s.sess.
		DeleteFrom("jobs").
		Where("id = ?", jobID).
		Where("business_owner_id = ?", ownerID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete job",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return false, fmt.Errorf("delete job: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows > 0 {
		s.logger.Info("job deleted", zap.String("job_id", jobID))
	}
	return rows > 0, nil
}
