package service

import (
	"context"
	"errors"
	"strings"

	"creatorlink/internal/models"
	"creatorlink/internal/storage/postgres"

	"go.uber.org/zap"
)

// CompleteOnboarding creates the caller's profile for the chosen role and
// marks the account onboarded.
func (s *Service) CompleteOnboarding(ctx context.Context, userID string, req models.OnboardingRequest) (models.UserType, error) {
	userType, ok := models.ParseUserType(req.UserType)
	if !ok {
		return "", invalid(msgInvalidUserType)
	}

	username := strings.TrimSpace(req.Username)
	city := strings.TrimSpace(req.City)
	country := strings.TrimSpace(req.Country)
	if username == "" || city == "" || country == "" {
		return "", invalid(msgMissingFields)
	}

	if _, err := s.ensureUser(ctx, userID); err != nil {
		return "", err
	}

	taken, err := s.repo.UsernameTaken(ctx, username)
	if err != nil {
		return "", err
	}
	if taken {
		return "", invalid(msgUsernameTaken)
	}

	switch userType {
	case models.UserTypeCreator:
		err = s.repo.OnboardCreator(ctx, &models.CreatorProfile{
			UserID:       userID,
			Username:     username,
			Bio:          models.NullIfEmpty(req.Bio),
			City:         city,
			Country:      country,
			InstagramURL: models.NullIfEmpty(req.InstagramURL),
			YoutubeURL:   models.NullIfEmpty(req.YoutubeURL),
			TiktokURL:    models.NullIfEmpty(req.TiktokURL),
			OtherURL:     models.NullIfEmpty(req.OtherURL),
		})
	case models.UserTypeBusiness:
		err = s.repo.OnboardBusiness(ctx, &models.BusinessProfile{
			UserID:   userID,
			Username: username,
			City:     city,
			Country:  country,
		})
	}
	if errors.Is(err, postgres.ErrDuplicate) {
		// lost a race for the username, or the user already has a profile
		return "", invalid(msgUsernameTaken)
	}
	if err != nil {
		return "", err
	}

	metadata := map[string]interface{}{
		"user_type":           string(userType),
		"onboarding_complete": true,
	}
	if err := s.identity.UpdateUserMetadata(ctx, userID, metadata); err != nil {
		s.logger.Warn("failed to push onboarding metadata",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	if userType == models.UserTypeCreator {
		s.invalidateCountries(ctx)
	}

	s.logger.Info("onboarding completed",
		zap.String("user_id", userID),
		zap.String("user_type", string(userType)),
	)
	return userType, nil
}
