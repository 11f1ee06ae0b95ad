package postgres

import (
	"context"
	"fmt"
	"strings"

	"creatorlink/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// OnboardCreator inserts the creator profile and marks the user onboarded
// in one transaction. A taken username returns ErrDuplicate.
func (s *Store) OnboardCreator(ctx context.Context, p *models.CreatorProfile) error {
	now := s.now()
	p.ID = newID()
	p.CreatedAt = now
	p.UpdatedAt = now

	tx, err := s.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin onboard creator: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	_, err = tx.
		InsertInto("creator_profiles").
		Columns("id", "user_id", "username", "bio", "city", "country",
			"instagram_url", "youtube_url", "tiktok_url", "other_url", "created_at", "updated_at").
		Values(p.ID, p.UserID, p.Username, p.Bio, p.City, p.Country,
			p.InstagramURL, p.YoutubeURL, p.TiktokURL, p.OtherURL, now, now).
		ExecContext(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		s.logger.Error("failed to create creator profile",
			zap.String("user_id", p.UserID),
			zap.Error(err),
		)
		return fmt.Errorf("create creator profile: %w", err)
	}

	if err := completeOnboarding(ctx, tx, p.UserID, models.UserTypeCreator, now); err != nil {
		s.logger.Error("failed to complete onboarding",
			zap.String("user_id", p.UserID),
			zap.Error(err),
		)
		return fmt.Errorf("complete onboarding: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit onboard creator: %w", err)
	}

	s.logger.Info("creator onboarded",
		zap.String("user_id", p.UserID),
		zap.String("username", p.Username),
	)
	return nil
}

// OnboardBusiness is OnboardCreator for business profiles.
func (s *Store) OnboardBusiness(ctx context.Context, p *models.BusinessProfile) error {
	now := s.now()
	p.ID = newID()
	p.CreatedAt = now
	p.UpdatedAt = now

	tx, err := s.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin onboard business: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	_, err = tx.
		InsertInto("business_profiles").
		Columns("id", "user_id", "username", "city", "country", "created_at", "updated_at").
		Values(p.ID, p.UserID, p.Username, p.City, p.Country, now, now).
		ExecContext(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		s.logger.Error("failed to create business profile",
			zap.String("user_id", p.UserID),
			zap.Error(err),
		)
		return fmt.Errorf("create business profile: %w", err)
	}

	if err := completeOnboarding(ctx, tx, p.UserID, models.UserTypeBusiness, now); err != nil {
		s.logger.Error("failed to complete onboarding",
			zap.String("user_id", p.UserID),
			zap.Error(err),
		)
		return fmt.Errorf("complete onboarding: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit onboard business: %w", err)
	}

	s.logger.Info("business onboarded",
		zap.String("user_id", p.UserID),
		zap.String("username", p.Username),
	)
	return nil
}

// UsernameTaken checks both profile tables.
func (s *Store) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var taken bool

	err := s.sess.
		SelectBySql(`SELECT
			EXISTS (SELECT 1 FROM creator_profiles WHERE username = ?)
			OR EXISTS (SELECT 1 FROM business_profiles WHERE username = ?)`,
			username, username).
		LoadOneContext(ctx, &taken)

	if err != nil {
		s.logger.Error("failed to check username",
			zap.String("username", username),
			zap.Error(err),
		)
		return false, fmt.Errorf("check username: %w", err)
	}

	return taken, nil
}

func (s *Store) GetCreatorProfile(ctx context.Context, userID string) (*models.CreatorProfile, error) {
	return s.loadCreatorProfile(ctx, "user_id = ?", userID)
}

func (s *Store) GetCreatorProfileByUsername(ctx context.Context, username string) (*models.CreatorProfile, error) {
	return s.loadCreatorProfile(ctx, "username = ?", username)
}

func (s *Store) loadCreatorProfile(ctx context.Context, where string, arg string) (*models.CreatorProfile, error) {
	var p models.CreatorProfile

	err := s.sess.
		Select("*").
		From("creator_profiles").
		Where(where, arg).
		LoadOneContext(ctx, &p)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get creator profile",
			zap.String("key", arg),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get creator profile: %w", err)
	}

	return &p, nil
}

func (s *Store) GetBusinessProfile(ctx context.Context, userID string) (*models.BusinessProfile, error) {
	var p models.BusinessProfile

	err := s.sess.
		Select("*").
		From("business_profiles").
		Where("user_id = ?", userID).
		LoadOneContext(ctx, &p)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get business profile",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get business profile: %w", err)
	}

	return &p, nil
}

// UpdateCreatorProfile writes location and social links, then reloads the row.
// Returns nil when the user has no creator profile.
func (s *Store) UpdateCreatorProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.CreatorProfile, error) {
	res, err := s.sess.
		Update("creator_profiles").
		Set("city", upd.City).
		Set("country", upd.Country).
		Set("bio", upd.Social.Bio).
		Set("instagram_url", upd.Social.InstagramURL).
		Set("youtube_url", upd.Social.YoutubeURL).
		Set("tiktok_url", upd.Social.TiktokURL).
		Set("other_url", upd.Social.OtherURL).
		Set("updated_at", s.now()).
		Where("user_id = ?", userID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update creator profile",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update creator profile: %w", err)
	}

	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, nil
	}

	s.logger.Info("creator profile updated", zap.String("user_id", userID))
	return s.GetCreatorProfile(ctx, userID)
}

func (s *Store) UpdateBusinessProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.BusinessProfile, error) {
	res, err := s.sess.
		Update("business_profiles").
		Set("city", upd.City).
		Set("country", upd.Country).
		Set("updated_at", s.now()).
		Where("user_id = ?", userID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update business profile",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update business profile: %w", err)
	}

	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, nil
	}

	s.logger.Info("business profile updated", zap.String("user_id", userID))
	return s.GetBusinessProfile(ctx, userID)
}

// SearchCreators returns the roster newest first. A non-nil search narrows
// it to usernames or bios containing the text, case-insensitively.
func (s *Store) SearchCreators(ctx context.Context, search *string) ([]models.CreatorProfile, error) {
	var creators []models.CreatorProfile

	stmt := s.sess.
		Select("*").
		From("creator_profiles").
		OrderDesc("created_at")

	if search != nil {
		pattern := "%" + escapeLike(*search) + "%"
		stmt = stmt.Where(dbr.Or(
			dbr.Expr("username ILIKE ?", pattern),
			dbr.Expr("bio ILIKE ?", pattern),
		))
	}

	_, err := stmt.LoadContext(ctx, &creators)
	if err != nil {
		s.logger.Error("failed to search creators", zap.Error(err))
		return nil, fmt.Errorf("search creators: %w", err)
	}

	s.logger.Debug("creators loaded", zap.Int("count", len(creators)))
	return creators, nil
}

// ListCreatorCountries returns the distinct home countries, sorted.
func (s *Store) ListCreatorCountries(ctx context.Context) ([]string, error) {
	var countries []string

	_, err := s.sess.
		Select("DISTINCT country").
		From("creator_profiles").
		OrderBy("country").
		LoadContext(ctx, &countries)

	if err != nil {
		s.logger.Error("failed to list creator countries", zap.Error(err))
		return nil, fmt.Errorf("list creator countries: %w", err)
	}

	return countries, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
