package postgres

import (
	"context"
	"fmt"

	"creatorlink/internal/models"

	"github.com/gocraft/dbr/v2"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// CreateApplication inserts a pending application. ErrDuplicate means the
// creator already applied to the job.
func (s *Store) CreateApplication(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications (id, job_id, creator_id, status, applied_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (job_id, creator_id) DO NOTHING
		RETURNING id
	`

	now := s.now()
	id := newID()

	var inserted string
	err := s.sess.
		SelectBySql(query, id, app.JobID, app.CreatorID, models.ApplicationStatusPending, now).
		LoadOneContext(ctx, &inserted)

	if err == dbr.ErrNotFound {
		return ErrDuplicate
	}

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		s.logger.Error("failed to create application",
			zap.String("job_id", app.JobID),
			zap.String("creator_id", app.CreatorID),
			zap.Error(err),
		)
		return fmt.Errorf("create application: %w", err)
	}

	app.ID = inserted
	app.Status = models.ApplicationStatusPending
	app.AppliedAt = now

	s.logger.Info("application created",
		zap.String("application_id", app.ID),
		zap.String("job_id", app.JobID),
		zap.String("creator_id", app.CreatorID),
	)
	return nil
}

func (s *Store) HasApplied(ctx context.Context, jobID, creatorID string) (bool, error) {
	return s.exists(ctx, "applications", jobID, creatorID)
}

// AppliedJobIDs lists the ids of jobs the creator applied to.
func (s *Store) AppliedJobIDs(ctx context.Context, creatorID string) ([]string, error) {
	return s.jobIDs(ctx, "applications", creatorID)
}

// ListApplicationsByCreator returns the creator's applications with their
// jobs, most recent first.
func (s *Store) ListApplicationsByCreator(ctx context.Context, creatorID string) ([]models.ApplicationWithJob, error) {
	var apps []models.Application

	_, err := s.sess.
		Select("*").
		From("applications").
		Where("creator_id = ?", creatorID).
		OrderDesc("applied_at").
		LoadContext(ctx, &apps)

	if err != nil {
		s.logger.Error("failed to list applications",
			zap.String("creator_id", creatorID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list applications: %w", err)
	}

	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.JobID)
	}

	jobs, err := s.GetJobsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]models.ApplicationWithJob, 0, len(apps))
	for _, a := range apps {
		result = append(result, models.ApplicationWithJob{
			Application: a,
			Job:         jobs[a.JobID],
		})
	}

	return result, nil
}

// ListApplicants returns the applications to a job with each applicant's
// creator profile, most recent first.
func (s *Store) ListApplicants(ctx context.Context, jobID string) ([]models.Applicant, error) {
	if !validID(jobID) {
		return []models.Applicant{}, nil
	}

	var apps []models.Application

	_, err := s.sess.
		Select("*").
		From("applications").
		Where("job_id = ?", jobID).
		OrderDesc("applied_at").
		LoadContext(ctx, &apps)

	if err != nil {
		s.logger.Error("failed to list applicants",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list applicants: %w", err)
	}

	result := make([]models.Applicant, 0, len(apps))
	if len(apps) == 0 {
		return result, nil
	}

	creatorIDs := make([]string, 0, len(apps))
	for _, a := range apps {
		creatorIDs = append(creatorIDs, a.CreatorID)
	}

	var profiles []models.CreatorProfile
	_, err = s.sess.
		Select("*").
		From("creator_profiles").
		Where("user_id = ANY(?)", pq.Array(creatorIDs)).
		LoadContext(ctx, &profiles)

	if err != nil {
		s.logger.Error("failed to load applicant profiles",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("load applicant profiles: %w", err)
	}

	byUser := make(map[string]*models.CreatorProfile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}

	for _, a := range apps {
		result = append(result, models.Applicant{
			Application: a,
			Creator:     byUser[a.CreatorID],
		})
	}

	return result, nil
}

// exists checks a (job_id, creator_id) pair in applications or saved_jobs.
func (s *Store) exists(ctx context.Context, table, jobID, creatorID string) (bool, error) {
	if !validID(jobID) {
		return false, nil
	}

	var count int

	err := s.sess.
		Select("COUNT(*)").
		From(table).
		Where("job_id = ? AND creator_id = ?", jobID, creatorID).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to check "+table,
			zap.String("job_id", jobID),
			zap.String("creator_id", creatorID),
			zap.Error(err),
		)
		return false, fmt.Errorf("check %s: %w", table, err)
	}

	return count > 0, nil
}

func (s *Store) jobIDs(ctx context.Context, table, creatorID string) ([]string, error) {
	var ids []string

	_, err := s.sess.
		Select("job_id").
		From(table).
		Where("creator_id = ?", creatorID).
		LoadContext(ctx, &ids)

	if err != nil {
		s.logger.Error("failed to list "+table+" job ids",
			zap.String("creator_id", creatorID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list %s job ids: %w", table, err)
	}

	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
