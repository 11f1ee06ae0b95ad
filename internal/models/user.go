package models

import "time"

type UserType string

const (
	UserTypeCreator  UserType = "creator"
	UserTypeBusiness UserType = "business"
)

// ParseUserType accepts only the two marketplace roles.
func ParseUserType(s string) (UserType, bool) {
	switch t := UserType(s); t {
	case UserTypeCreator, UserTypeBusiness:
		return t, true
	}
	return "", false
}

// User mirrors the identity provider's user. ID is the provider's user id.
type User struct {
	ID                 string    `db:"id" json:"id"`
	Email              string    `db:"email" json:"email"`
	FirstName          *string   `db:"first_name" json:"first_name"`
	LastName           *string   `db:"last_name" json:"last_name"`
	UserType           *UserType `db:"user_type" json:"user_type"`
	OnboardingComplete bool      `db:"onboarding_complete" json:"onboarding_complete"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// Is reports whether the user completed onboarding as the given role.
func (u *User) Is(t UserType) bool {
	return u != nil && u.UserType != nil && *u.UserType == t
}
