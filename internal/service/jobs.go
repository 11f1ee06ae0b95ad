package service

import (
	"context"

	"creatorlink/internal/models"

	"go.uber.org/zap"
)

// JobFeed is the creator's job board with their own activity marked.
type JobFeed struct {
	Jobs          []models.Job
	AppliedJobIDs []string
	SavedJobIDs   []string
}

// JobDetail is a job as seen by a viewer. HasApplied and HasSaved are set
// only for creators.
type JobDetail struct {
	Job        *models.Job
	HasApplied *bool
	HasSaved   *bool
}

// Dashboard is the landing data for an onboarded user: own jobs for a
// business, own applications for a creator.
type Dashboard struct {
	UserType     models.UserType
	Jobs         []models.Job
	Applications []models.ApplicationWithJob
}

func (s *Service) ListJobs(ctx context.Context, userID string) (*JobFeed, error) {
	if _, err := s.requireRole(ctx, userID, models.UserTypeCreator, msgCreatorsOnlyJobs); err != nil {
		return nil, err
	}

	jobs, err := s.repo.ListJobs(ctx)
	if err != nil {
		return nil, err
	}

	applied, err := s.repo.AppliedJobIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.SavedJobIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if jobs == nil {
		jobs = []models.Job{}
	}
	return &JobFeed{Jobs: jobs, AppliedJobIDs: applied, SavedJobIDs: saved}, nil
}

func (s *Service) PostJob(ctx context.Context, userID string, req models.JobRequest) (*models.Job, error) {
	if _, err := s.requireRole(ctx, userID, models.UserTypeBusiness, msgBusinessOnlyPost); err != nil {
		return nil, err
	}

	if req.Missing() {
		return nil, invalid(msgMissingFields)
	}

	job := req.ToJob(userID)
	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	if err := s.notifier.JobPosted(ctx, job); err != nil {
		s.logger.Warn("failed to notify job posted",
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
	}

	return job, nil
}

// GetJob is public. viewerID may be empty for anonymous callers.
func (s *Service) GetJob(ctx context.Context, jobID, viewerID string) (*JobDetail, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, notFound(msgJobNotFound)
	}

	detail := &JobDetail{Job: job}
	if viewerID == "" {
		return detail, nil
	}

	viewer, err := s.repo.GetUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if !viewer.Is(models.UserTypeCreator) {
		return detail, nil
	}

	applied, err := s.repo.HasApplied(ctx, jobID, viewerID)
	if err != nil {
		return nil, err
	}
	saved, err := s.repo.IsJobSaved(ctx, jobID, viewerID)
	if err != nil {
		return nil, err
	}

	detail.HasApplied = &applied
	detail.HasSaved = &saved
	return detail, nil
}

// UpdateJob replaces a job's fields. Only the owning business may do it.
func (s *Service) UpdateJob(ctx context.Context, userID, jobID string, req models.JobRequest) (*models.Job, error) {
	if _, err := s.requireRole(ctx, userID, models.UserTypeBusiness, msgBusinessOnlyEdit); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.BusinessOwnerID != userID {
		return nil, notFound(msgJobNotOwned)
	}

	if req.Missing() {
		return nil, invalid(msgMissingFields)
	}

	job := req.ToJob(userID)
	job.ID = jobID

	updated, err := s.repo.UpdateJob(ctx, job)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, notFound(msgJobNotOwned)
	}
	return updated, nil
}

func (s *Service) DeleteJob(ctx context.Context, userID, jobID string) error {
	if _, err := s.requireRole(ctx, userID, models.UserTypeBusiness, msgBusinessOnlyDrop); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteJob(ctx, jobID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound(msgJobNotOwned)
	}
	return nil
}

// ListApplicants returns a job's applications for its owner.
func (s *Service) ListApplicants(ctx context.Context, userID, jobID string) ([]models.Applicant, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil || job.BusinessOwnerID != userID {
		return nil, notFound(msgJobNotOwned)
	}

	return s.repo.ListApplicants(ctx, jobID)
}

func (s *Service) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.OnboardingComplete || user.UserType == nil {
		return nil, ErrOnboardingIncomplete
	}

	d := &Dashboard{UserType: *user.UserType}
	switch d.UserType {
	case models.UserTypeBusiness:
		d.Jobs, err = s.repo.ListJobsByOwner(ctx, userID)
		if d.Jobs == nil {
			d.Jobs = []models.Job{}
		}
	case models.UserTypeCreator:
		d.Applications, err = s.repo.ListApplicationsByCreator(ctx, userID)
		if d.Applications == nil {
			d.Applications = []models.ApplicationWithJob{}
		}
	}
	if err != nil {
		return nil, err
	}

	return d, nil
}
