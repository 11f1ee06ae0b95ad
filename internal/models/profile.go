package models

import "time"

type CreatorProfile struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	Username     string    `db:"username" json:"username"`
	Bio          *string   `db:"bio" json:"bio"`
	City         string    `db:"city" json:"city"`
	Country      string    `db:"country" json:"country"`
	InstagramURL *string   `db:"instagram_url" json:"instagram_url"`
	YoutubeURL   *string   `db:"youtube_url" json:"youtube_url"`
	TiktokURL    *string   `db:"tiktok_url" json:"tiktok_url"`
	OtherURL     *string   `db:"other_url" json:"other_url"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type BusinessProfile struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	City      string    `db:"city" json:"city"`
	Country   string    `db:"country" json:"country"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SocialLinks are the optional creator-only profile fields.
type SocialLinks struct {
	Bio          *string
	InstagramURL *string
	YoutubeURL   *string
	TiktokURL    *string
	OtherURL     *string
}

// ProfileUpdate is the set of columns a profile owner may change.
// Social is ignored for business profiles.
type ProfileUpdate struct {
	City    string
	Country string
	Social  SocialLinks
}

type OnboardingRequest struct {
	UserType     string `json:"userType"`
	Username     string `json:"username" binding:"max=50"`
	City         string `json:"city" binding:"max=120"`
	Country      string `json:"country" binding:"max=120"`
	Bio          string `json:"bio" binding:"max=2000"`
	InstagramURL string `json:"instagram_url" binding:"max=500"`
	YoutubeURL   string `json:"youtube_url" binding:"max=500"`
	TiktokURL    string `json:"tiktok_url" binding:"max=500"`
	OtherURL     string `json:"other_url" binding:"max=500"`
}

type ProfileUpdateRequest struct {
	City         string `json:"city" binding:"max=120"`
	Country      string `json:"country" binding:"max=120"`
	Bio          string `json:"bio" binding:"max=2000"`
	InstagramURL string `json:"instagram_url" binding:"max=500"`
	YoutubeURL   string `json:"youtube_url" binding:"max=500"`
	TiktokURL    string `json:"tiktok_url" binding:"max=500"`
	OtherURL     string `json:"other_url" binding:"max=500"`
}

// NullIfEmpty maps the empty string to SQL NULL.
func NullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
