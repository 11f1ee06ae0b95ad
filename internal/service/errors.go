package service

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrUnauthorized         = errors.New("Unauthorized")
	ErrOnboardingIncomplete = errors.New("Onboarding not complete")
)

// NotFoundError carries the user-facing message for a missing or foreign row.
type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string        { return e.Msg }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// ForbiddenError is returned when the caller's role may not use an operation.
type ForbiddenError struct{ Msg string }

func (e *ForbiddenError) Error() string        { return e.Msg }
func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

func notFound(msg string) error  { return &NotFoundError{Msg: msg} }
func invalid(msg string) error   { return &ValidationError{Msg: msg} }
func forbidden(msg string) error { return &ForbiddenError{Msg: msg} }

const (
	msgUserNotFound      = "User not found"
	msgProfileNotFound   = "Profile not found"
	msgCreatorNotFound   = "Creator not found"
	msgJobNotFound       = "Job not found"
	msgJobNotOwned       = "Job not found or unauthorized"
	msgTravelNotOwned    = "Travel not found or unauthorized"
	msgMissingFields     = "Missing required fields"
	msgInvalidUserType   = "Invalid user type"
	msgUsernameTaken     = "Username already taken"
	msgJobIDRequired     = "Job ID is required"
	msgAlreadyApplied    = "You have already applied to this job"
	msgAlreadySaved      = "Job already saved"
	msgEndBeforeStart    = "End date must be after start date"
	msgCreatorsOnlyJobs  = "Only creators can view jobs"
	msgCreatorsOnlyApply = "Only creators can apply to jobs"
	msgCreatorsOnlySave  = "Only creators can save jobs"
	msgCreatorsOnlyTrips = "Only creators can manage travels"
	msgCreatorsOnlyAdd   = "Only creators can add travels"
	msgBusinessOnlyPost  = "Only business owners can post jobs"
	msgBusinessOnlyEdit  = "Only business owners can update jobs"
	msgBusinessOnlyDrop  = "Only business owners can delete jobs"
)
