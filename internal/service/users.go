package service

import (
	"context"
	"errors"
	"fmt"

	"creatorlink/internal/api/clerk"
	"creatorlink/internal/models"
	"creatorlink/internal/storage/postgres"

	"go.uber.org/zap"
)

func userFromIdentity(u *clerk.User) *models.User {
	return &models.User{
		ID:        u.ID,
		Email:     u.PrimaryEmail(),
		FirstName: nonEmpty(u.FirstName),
		LastName:  nonEmpty(u.LastName),
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// UserCreated mirrors a newly registered user. Redelivery of the same
// event is not an error.
func (s *Service) UserCreated(ctx context.Context, u *clerk.User) error {
	err := s.repo.CreateUser(ctx, userFromIdentity(u))
	if errors.Is(err, postgres.ErrDuplicate) {
		s.logger.Info("user already mirrored", zap.String("user_id", u.ID))
		return nil
	}
	return err
}

// UserUpdated refreshes email and names. Failures are logged only.
func (s *Service) UserUpdated(ctx context.Context, u *clerk.User) {
	if err := s.repo.UpdateUserIdentity(ctx, userFromIdentity(u)); err != nil {
		s.logger.Error("failed to sync updated user",
			zap.String("user_id", u.ID),
			zap.Error(err),
		)
	}
}

// UserDeleted removes the user and everything it owns. Failures are
// logged only.
func (s *Service) UserDeleted(ctx context.Context, userID string) {
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		s.logger.Error("failed to delete user",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return
	}
	s.invalidateCountries(ctx)
}

// ensureUser returns the caller's row, creating it from the identity
// provider when the creation webhook has not arrived yet.
func (s *Service) ensureUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	remote, err := s.identity.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch identity: %w", err)
	}

	user = userFromIdentity(remote)
	if err := s.repo.CreateUser(ctx, user); err != nil && !errors.Is(err, postgres.ErrDuplicate) {
		return nil, err
	}

	s.logger.Info("user created from identity provider", zap.String("user_id", userID))
	return user, nil
}
