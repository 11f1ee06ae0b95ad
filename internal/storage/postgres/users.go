package postgres

import (
	"context"
	"fmt"
	"time"

	"creatorlink/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// CreateUser inserts a user mirrored from the identity provider. A second
// insert for the same id returns ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	now := s.now()

	_, err := s.sess.
		InsertInto("users").
		Columns("id", "email", "first_name", "last_name", "onboarding_complete", "created_at", "updated_at").
		Values(user.ID, user.Email, user.FirstName, user.LastName, false, now, now).
		ExecContext(ctx)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		s.logger.Error("failed to create user",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
		return fmt.Errorf("create user: %w", err)
	}

	user.CreatedAt = now
	user.UpdatedAt = now

	s.logger.Info("user created",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
	)

	return nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	err := s.sess.
		Select("*").
		From("users").
		Where("id = ?", userID).
		LoadOneContext(ctx, &user)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get user",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// UpdateUserIdentity refreshes the identity-provider owned columns.
func (s *Store) UpdateUserIdentity(ctx context.Context, user *models.User) error {
	res, err := s.sess.
		Update("users").
		Set("email", user.Email).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("updated_at", s.now()).
		Where("id = ?", user.ID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update user",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
		return fmt.Errorf("update user: %w", err)
	}

	rows, _ := res.RowsAffected()
	s.logger.Info("user updated",
		zap.String("user_id", user.ID),
		zap.Int64("rows", rows),
	)
	return nil
}

// DeleteUser removes the user; profiles, travels, jobs, applications and
// saved jobs go with it through ON DELETE CASCADE.
func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	_, err := s.sess.
		DeleteFrom("users").
		Where("id = ?", userID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete user",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info("user deleted", zap.String("user_id", userID))
	return nil
}

func completeOnboarding(ctx context.Context, tx *dbr.Tx, userID string, userType models.UserType, now time.Time) error {
	_, err := tx.
		Update("users").
		Set("user_type", string(userType)).
		Set("onboarding_complete", true).
		Set("updated_at", now).
		Where("id = ?", userID).
		ExecContext(ctx)
	return err
}
