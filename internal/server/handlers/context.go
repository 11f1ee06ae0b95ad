package handlers

import (
	"context"
	"net/http"
	"time"

	"creatorlink/internal/api/clerk"
	"creatorlink/internal/auth"
	"creatorlink/internal/discovery"
	"creatorlink/internal/models"
	"creatorlink/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// Service is the use-case surface the handlers call.
type Service interface {
	UserCreated(ctx context.Context, u *clerk.User) error
	UserUpdated(ctx context.Context, u *clerk.User)
	UserDeleted(ctx context.Context, userID string)

	CompleteOnboarding(ctx context.Context, userID string, req models.OnboardingRequest) (models.UserType, error)
	GetProfile(ctx context.Context, userID string) (*service.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*service.Profile, error)
	GetCreatorByUsername(ctx context.Context, username string) (*models.CreatorProfile, error)
	Countries(ctx context.Context) ([]string, error)
	DiscoverCreators(ctx context.Context, c discovery.Criteria) ([]discovery.Result, error)

	ListJobs(ctx context.Context, userID string) (*service.JobFeed, error)
	PostJob(ctx context.Context, userID string, req models.JobRequest) (*models.Job, error)
	GetJob(ctx context.Context, jobID, viewerID string) (*service.JobDetail, error)
	UpdateJob(ctx context.Context, userID, jobID string, req models.JobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, userID, jobID string) error
	ListApplicants(ctx context.Context, userID, jobID string) ([]models.Applicant, error)
	Dashboard(ctx context.Context, userID string) (*service.Dashboard, error)

	Apply(ctx context.Context, userID, jobID string) (*models.Application, error)
	ListApplications(ctx context.Context, userID string) ([]models.ApplicationWithJob, error)
	SaveJob(ctx context.Context, userID, jobID string) (*models.SavedJob, error)
	UnsaveJob(ctx context.Context, userID, jobID string) error
	ListSavedJobs(ctx context.Context, userID string) ([]models.Job, error)

	ListTravels(ctx context.Context, userID string) ([]models.Travel, error)
	CreateTravel(ctx context.Context, userID string, req models.TravelRequest) (*models.Travel, error)
	UpdateTravel(ctx context.Context, userID, travelID string, req models.TravelRequest) (*models.Travel, error)
	DeleteTravel(ctx context.Context, userID, travelID string) error
}

type WebhookVerifier interface {
	Verify(payload []byte, headers http.Header) (*auth.Event, error)
}

// Pinger is a backend the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Context contains deps for all handlers
type Context struct {
	Service  Service
	Webhooks WebhookVerifier
	Backends map[string]Pinger
	Logger   *zap.Logger
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}
