// Package service holds the marketplace use cases. It knows nothing about
// HTTP; handlers translate its errors into status codes.
package service

import (
	"context"
	"time"

	"creatorlink/internal/api/clerk"
	"creatorlink/internal/models"

	"go.uber.org/zap"
)

// Repository is the persistence surface the use cases need. Lookups return
// (nil, nil) when the row does not exist.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateUserIdentity(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID string) error

	OnboardCreator(ctx context.Context, p *models.CreatorProfile) error
	OnboardBusiness(ctx context.Context, p *models.BusinessProfile) error
	UsernameTaken(ctx context.Context, username string) (bool, error)
	GetCreatorProfile(ctx context.Context, userID string) (*models.CreatorProfile, error)
	GetCreatorProfileByUsername(ctx context.Context, username string) (*models.CreatorProfile, error)
	GetBusinessProfile(ctx context.Context, userID string) (*models.BusinessProfile, error)
	UpdateCreatorProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.CreatorProfile, error)
	UpdateBusinessProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.BusinessProfile, error)
	SearchCreators(ctx context.Context, search *string) ([]models.CreatorProfile, error)
	ListCreatorCountries(ctx context.Context) ([]string, error)

	ListTravels(ctx context.Context, creatorID string) ([]models.Travel, error)
	ListActiveTravels(ctx context.Context, latestStart, earliestEnd models.Date) ([]models.Travel, error)
	GetTravel(ctx context.Context, travelID, creatorID string) (*models.Travel, error)
	CreateTravel(ctx context.Context, t *models.Travel) error
	UpdateTravel(ctx context.Context, travelID, creatorID string, patch models.TravelPatch) (*models.Travel, error)
	DeleteTravel(ctx context.Context, travelID, creatorID string) (bool, error)
	DeleteExpiredTravels(ctx context.Context, creatorID string, today models.Date) (int64, error)

	ListJobs(ctx context.Context) ([]models.Job, error)
	ListJobsByOwner(ctx context.Context, ownerID string) ([]models.Job, error)
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	CreateJob(ctx context.Context, job *models.Job) error
	UpdateJob(ctx context.Context, job *models.Job) (*models.Job, error)
	DeleteJob(ctx context.Context, jobID, ownerID string) (bool, error)

	CreateApplication(ctx context.Context, app *models.Application) error
	HasApplied(ctx context.Context, jobID, creatorID string) (bool, error)
	AppliedJobIDs(ctx context.Context, creatorID string) ([]string, error)
	ListApplicationsByCreator(ctx context.Context, creatorID string) ([]models.ApplicationWithJob, error)
	ListApplicants(ctx context.Context, jobID string) ([]models.Applicant, error)

	SaveJob(ctx context.Context, saved *models.SavedJob) error
	IsJobSaved(ctx context.Context, jobID, creatorID string) (bool, error)
	SavedJobIDs(ctx context.Context, creatorID string) ([]string, error)
	UnsaveJob(ctx context.Context, jobID, creatorID string) error
	ListSavedJobs(ctx context.Context, creatorID string) ([]models.Job, error)
}

// Cache holds derived data that is safe to serve stale for a few minutes.
type Cache interface {
	GetCountries(ctx context.Context) ([]string, error)
	SetCountries(ctx context.Context, countries []string) error
	InvalidateCountries(ctx context.Context) error
}

// Identity is the identity provider's backend API.
type Identity interface {
	GetUser(ctx context.Context, userID string) (*clerk.User, error)
	UpdateUserMetadata(ctx context.Context, userID string, metadata map[string]interface{}) error
}

// Notifier tells operators about marketplace activity.
type Notifier interface {
	JobPosted(ctx context.Context, job *models.Job) error
	ApplicationReceived(ctx context.Context, job *models.Job, creator *models.CreatorProfile) error
}

type Service struct {
	repo     Repository
	cache    Cache
	identity Identity
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func New(repo Repository, cache Cache, identity Identity, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		identity: identity,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// today is the current UTC calendar date.
func (s *Service) today() models.Date {
	return models.DateOf(s.now())
}

// requireUser loads the caller's row.
func (s *Service) requireUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound(msgUserNotFound)
	}
	return user, nil
}

// requireRole loads the caller and checks the role. A missing user row is
// treated like a wrong role.
func (s *Service) requireRole(ctx context.Context, userID string, role models.UserType, denied string) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Is(role) {
		return nil, forbidden(denied)
	}
	return user, nil
}

func (s *Service) invalidateCountries(ctx context.Context) {
	if err := s.cache.InvalidateCountries(ctx); err != nil {
		s.logger.Warn("failed to invalidate countries cache", zap.Error(err))
	}
}
