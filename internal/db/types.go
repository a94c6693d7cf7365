package db

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the lifecycle status of a job application.
type ApplicationStatus string

// Application status values
const (
	StatusWaiting     ApplicationStatus = "waiting"
	StatusInterviewed ApplicationStatus = "interviewed"
	StatusRejected    ApplicationStatus = "rejected"
	StatusAccepted    ApplicationStatus = "accepted"
)

// Valid reports whether s is one of the four known statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusWaiting, StatusInterviewed, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

// JobApplication represents a tracked job application owned by a single user.
// Title, Company and Location are nil when AI extraction could not determine
// them. AppliedDate is an ISO calendar date (YYYY-MM-DD) with no time component.
type JobApplication struct {
	ID          uuid.UUID         `json:"id"`
	OwnerID     uuid.UUID         `json:"owner_id"`
	URL         string            `json:"url"`
	Title       *string           `json:"title,omitempty"`
	Company     *string           `json:"company,omitempty"`
	Location    *string           `json:"location,omitempty"`
	AppliedDate *string           `json:"applied_date,omitempty"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ApplicationCreateInput contains the fields for creating a job application.
// Status defaults to StatusWaiting when empty.
type ApplicationCreateInput struct {
	URL         string
	Title       *string
	Company     *string
	Location    *string
	AppliedDate *string
	Status      ApplicationStatus
}

// ApplicationUpdateInput contains the fields for a partial update.
// Nil fields are left unchanged.
type ApplicationUpdateInput struct {
	URL         *string
	Title       *string
	Company     *string
	Location    *string
	AppliedDate *string
	Status      *ApplicationStatus
}

// User represents a registered account
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
