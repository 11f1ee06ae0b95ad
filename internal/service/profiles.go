package service

import (
	"context"
	"errors"
	"strings"

	"creatorlink/internal/discovery"
	"creatorlink/internal/models"
	"creatorlink/internal/storage/redis"

	"go.uber.org/zap"
)

// Profile is the caller's own profile. Exactly one of Creator and Business
// is set.
type Profile struct {
	UserType models.UserType
	Creator  *models.CreatorProfile
	Business *models.BusinessProfile
}

// Value returns whichever profile is set.
func (p *Profile) Value() interface{} {
	if p.Creator != nil {
		return p.Creator
	}
	return p.Business
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch {
	case user.Is(models.UserTypeCreator):
		p, err := s.repo.GetCreatorProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return &Profile{UserType: models.UserTypeCreator, Creator: p}, nil
		}
	case user.Is(models.UserTypeBusiness):
		p, err := s.repo.GetBusinessProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return &Profile{UserType: models.UserTypeBusiness, Business: p}, nil
		}
	}

	return nil, notFound(msgProfileNotFound)
}

// UpdateProfile writes the caller's editable profile fields. Businesses
// only carry a location; the creator-only fields are ignored for them.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*Profile, error) {
	city := strings.TrimSpace(req.City)
	country := strings.TrimSpace(req.Country)
	if city == "" || country == "" {
		return nil, invalid(msgMissingFields)
	}

	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	upd := models.ProfileUpdate{
		City:    city,
		Country: country,
		Social: models.SocialLinks{
			Bio:          models.NullIfEmpty(req.Bio),
			InstagramURL: models.NullIfEmpty(req.InstagramURL),
			YoutubeURL:   models.NullIfEmpty(req.YoutubeURL),
			TiktokURL:    models.NullIfEmpty(req.TiktokURL),
			OtherURL:     models.NullIfEmpty(req.OtherURL),
		},
	}

	switch {
	case user.Is(models.UserTypeCreator):
		p, err := s.repo.UpdateCreatorProfile(ctx, userID, upd)
		if err != nil {
			return nil, err
		}
		if p != nil {
			s.invalidateCountries(ctx)
			return &Profile{UserType: models.UserTypeCreator, Creator: p}, nil
		}
	case user.Is(models.UserTypeBusiness):
		p, err := s.repo.UpdateBusinessProfile(ctx, userID, upd)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return &Profile{UserType: models.UserTypeBusiness, Business: p}, nil
		}
	}

	return nil, notFound(msgProfileNotFound)
}

func (s *Service) GetCreatorByUsername(ctx context.Context, username string) (*models.CreatorProfile, error) {
	p, err := s.repo.GetCreatorProfileByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound(msgCreatorNotFound)
	}
	return p, nil
}

// Countries lists the distinct home countries of creators. The list is
// served from cache when possible; cache failures fall back to the store.
func (s *Service) Countries(ctx context.Context) ([]string, error) {
	countries, err := s.cache.GetCountries(ctx)
	if err == nil {
		return countries, nil
	}
	if !errors.Is(err, redis.ErrCacheMiss) {
		s.logger.Warn("countries cache unavailable", zap.Error(err))
	}

	countries, err = s.repo.ListCreatorCountries(ctx)
	if err != nil {
		return nil, err
	}
	if countries == nil {
		countries = []string{}
	}

	if err := s.cache.SetCountries(ctx, countries); err != nil {
		s.logger.Warn("failed to cache countries", zap.Error(err))
	}

	return countries, nil
}

// DiscoverCreators runs the discovery filter over fresh rows. Results are
// never cached since travel activity depends on today's date.
func (s *Service) DiscoverCreators(ctx context.Context, c discovery.Criteria) ([]discovery.Result, error) {
	creators, err := s.repo.SearchCreators(ctx, c.Search)
	if err != nil {
		return nil, err
	}

	today := s.today()
	latestStart, earliestEnd := discovery.ActiveRange(today)

	travels, err := s.repo.ListActiveTravels(ctx, latestStart, earliestEnd)
	if err != nil {
		return nil, err
	}

	results := discovery.Filter(creators, travels, c, today)

	s.logger.Debug("creators discovered",
		zap.Int("roster", len(creators)),
		zap.Int("active_travels", len(travels)),
		zap.Int("results", len(results)),
	)
	return results, nil
}
