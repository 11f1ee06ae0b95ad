package service

import (
	"context"
	"errors"
	"strings"

	"creatorlink/internal/models"
	"creatorlink/internal/storage/postgres"

	"go.uber.org/zap"
)

// Apply submits a pending application from a creator.
func (s *Service) Apply(ctx context.Context, userID, jobID string) (*models.Application, error) {
	if _, err := s.requireRole(ctx, userID, models.UserTypeCreator, msgCreatorsOnlyApply); err != nil {
		return nil, err
	}

	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, invalid(msgJobIDRequired)
	}

	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, notFound(msgJobNotFound)
	}

	applied, err := s.repo.HasApplied(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, invalid(msgAlreadyApplied)
	}

	app := &models.Application{JobID: jobID, CreatorID: userID}
	err = s.repo.CreateApplication(ctx, app)
	if errors.Is(err, postgres.ErrDuplicate) {
		return nil, invalid(msgAlreadyApplied)
	}
	if err != nil {
		return nil, err
	}

	s.notifyApplication(ctx, job, userID)
	return app, nil
}

func (s *Service) notifyApplication(ctx context.Context, job *models.Job, creatorID string) {
	creator, err := s.repo.GetCreatorProfile(ctx, creatorID)
	if err != nil || creator == nil {
		s.logger.Warn("skipping application notification: creator profile unavailable",
			zap.String("creator_id", creatorID),
			zap.Error(err),
		)
		return
	}

	if err := s.notifier.ApplicationReceived(ctx, job, creator); err != nil {
		s.logger.Warn("failed to notify application",
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
	}
}

func (s *Service) ListApplications(ctx context.Context, userID string) ([]models.ApplicationWithJob, error) {
	if _, err := s.requireRole(ctx, userID, models.UserTypeCreator, msgCreatorsOnlyApply); err != nil {
		return nil, err
	}

	apps, err := s.repo.ListApplicationsByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []models.ApplicationWithJob{}
	}
	return apps, nil
}

// SaveJob bookmarks a job for a creator.
func (s *Service) SaveJob(ctx context.Context, userID, jobID string) (*models.SavedJob, error) {
	if _, err := s.requireRole(ctx, userID, models.UserTypeCreator, msgCreatorsOnlySave); err != nil {
		return nil, err
	}

	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, invalid(msgJobIDRequired)
	}

	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, notFound(msgJobNotFound)
	}

	saved, err := s.repo.IsJobSaved(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}
	if saved {
		return nil, invalid(msgAlreadySaved)
	}

	sj := &models.SavedJob{JobID: jobID, CreatorID: userID}
	err = s.repo.SaveJob(ctx, sj)
	if errors.Is(err, postgres.ErrDuplicate) {
		return nil, invalid(msgAlreadySaved)
	}
	if err != nil {
		return nil, err
	}

	return sj, nil
}

// UnsaveJob removes a bookmark. Removing one that does not exist succeeds.
func (s *Service) UnsaveJob(ctx context.Context, userID, jobID string) error {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return invalid(msgJobIDRequired)
	}
	return s.repo.UnsaveJob(ctx, jobID, userID)
}

func (s *Service) ListSavedJobs(ctx context.Context, userID string) ([]models.Job, error) {
	if _, err := s.requireRole(ctx, userID, models.UserTypeCreator, msgCreatorsOnlySave); err != nil {
		return nil, err
	}

	jobs, err := s.repo.ListSavedJobs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, nil
}
