package redis

import (
	"context"
	"fmt"
	"time"
)

const (
	CountriesCacheTTL  = 10 * time.Minute
	RateLimitWindowTTL = 1 * time.Minute
)

func CountriesKey() string {
	return "creators:countries"
}

// RateLimitKey buckets a subject's requests into fixed one-minute windows.
func RateLimitKey(subject string, at time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", subject, at.Unix()/int64(RateLimitWindowTTL/time.Second))
}

// GetCountries returns ErrCacheMiss when the list is not cached.
func (c *Cache) GetCountries(ctx context.Context) ([]string, error) {
	var countries []string
	err := c.Get(ctx, CountriesKey(), &countries)
	if err != nil {
		return nil, err
	}
	return countries, nil
}

func (c *Cache) SetCountries(ctx context.Context, countries []string) error {
	return c.Set(ctx, CountriesKey(), countries, CountriesCacheTTL)
}

func (c *Cache) InvalidateCountries(ctx context.Context) error {
	return c.Delete(ctx, CountriesKey())
}

// IncrementRateLimit counts one request for subject in the window containing at.
func (c *Cache) IncrementRateLimit(ctx context.Context, subject string, at time.Time) (int64, error) {
	return c.IncrementWithExpiry(ctx, RateLimitKey(subject, at), RateLimitWindowTTL)
}
