package models

import "time"

type Job struct {
	ID              string    `db:"id" json:"id"`
	BusinessOwnerID string    `db:"business_owner_id" json:"business_owner_id"`
	Title           string    `db:"title" json:"title"`
	Description     string    `db:"description" json:"description"`
	BusinessName    string    `db:"business_name" json:"business_name"`
	City            string    `db:"city" json:"city"`
	Country         string    `db:"country" json:"country"`
	JobDate         *Date     `db:"job_date" json:"job_date"`
	JobTime         *string   `db:"job_time" json:"job_time"`
	Industry        string    `db:"industry" json:"industry"`
	PaymentRange    *string   `db:"payment_range" json:"payment_range"`
	PaymentNotes    *string   `db:"payment_notes" json:"payment_notes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

type JobRequest struct {
	Title        string `json:"title" binding:"max=200"`
	Description  string `json:"description" binding:"max=10000"`
	BusinessName string `json:"business_name" binding:"max=200"`
	City         string `json:"city" binding:"max=120"`
	Country      string `json:"country" binding:"max=120"`
	JobDate      *Date  `json:"job_date"`
	JobTime      string `json:"job_time" binding:"max=50"`
	Industry     string `json:"industry" binding:"max=120"`
	PaymentRange string `json:"payment_range" binding:"max=120"`
	PaymentNotes string `json:"payment_notes" binding:"max=2000"`
}

// Missing reports whether any field required for a posting is empty.
func (r *JobRequest) Missing() bool {
	return r.Title == "" || r.Description == "" || r.BusinessName == "" ||
		r.City == "" || r.Country == "" || r.Industry == ""
}

// ToJob builds the row for owner; empty optionals become NULL.
func (r *JobRequest) ToJob(ownerID string) *Job {
	job := &Job{
		BusinessOwnerID: ownerID,
		Title:           r.Title,
		Description:     r.Description,
		BusinessName:    r.BusinessName,
		City:            r.City,
		Country:         r.Country,
		JobTime:         NullIfEmpty(r.JobTime),
		Industry:        r.Industry,
		PaymentRange:    NullIfEmpty(r.PaymentRange),
		PaymentNotes:    NullIfEmpty(r.PaymentNotes),
	}
	if r.JobDate != nil && !r.JobDate.IsZero() {
		d := *r.JobDate
		job.JobDate = &d
	}
	return job
}
