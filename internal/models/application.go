package models

import "time"

const ApplicationStatusPending = "pending"

type Application struct {
	ID        string    `db:"id" json:"id"`
	JobID     string    `db:"job_id" json:"job_id"`
	CreatorID string    `db:"creator_id" json:"creator_id"`
	Status    string    `db:"status" json:"status"`
	AppliedAt time.Time `db:"applied_at" json:"applied_at"`
}

// ApplicationWithJob is a creator's application with the job it targets.
type ApplicationWithJob struct {
	Application
	Job *Job `json:"jobs"`
}

// Applicant is an application as seen by the job's owner.
type Applicant struct {
	Application
	Creator *CreatorProfile `json:"creator"`
}

type SavedJob struct {
	ID        string    `db:"id" json:"id"`
	JobID     string    `db:"job_id" json:"job_id"`
	CreatorID string    `db:"creator_id" json:"creator_id"`
	SavedAt   time.Time `db:"saved_at" json:"saved_at"`
}

type JobRefRequest struct {
	JobID string `json:"job_id" binding:"max=64"`
}
