// Package types provides request and response types shared between the HTTP
// layer and its callers.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUserRequest represents the request to register a new account.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User represents an account in API responses (avoids import cycle with db package).
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse represents the register/login response with the auth token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// CreateApplicationRequest represents the request to track a job application.
// Title, company and location are optional; extraction may have left them
// empty. AppliedDate is an ISO calendar date.
type CreateApplicationRequest struct {
	URL         string  `json:"url" validate:"required,url"`
	Title       *string `json:"title,omitempty"`
	Company     *string `json:"company,omitempty"`
	Location    *string `json:"location,omitempty"`
	AppliedDate *string `json:"applied_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=waiting interviewed rejected accepted"`
}

// UpdateApplicationRequest represents a partial update; nil fields are left
// unchanged.
type UpdateApplicationRequest struct {
	URL         *string `json:"url,omitempty" validate:"omitempty,url"`
	Title       *string `json:"title,omitempty"`
	Company     *string `json:"company,omitempty"`
	Location    *string `json:"location,omitempty"`
	AppliedDate *string `json:"applied_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=waiting interviewed rejected accepted"`
}

// FetchJobRequest represents the request to fetch a job-posting page.
type FetchJobRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ExtractJobInfoRequest represents the request to extract fields from HTML.
type ExtractJobInfoRequest struct {
	HTML string `json:"html" validate:"required"`
}

// ImportApplicationRequest represents the request to create an application
// directly from a posting URL via the fetch-then-extract pipeline.
type ImportApplicationRequest struct {
	URL         string  `json:"url" validate:"required,url"`
	AppliedDate *string `json:"applied_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=waiting interviewed rejected accepted"`
}

var validate = validator.New()

// Validate validates the CreateUserRequest.
func (r *CreateUserRequest) Validate() error { return validate.Struct(r) }

// Validate validates the LoginRequest.
func (r *LoginRequest) Validate() error { return validate.Struct(r) }

// Validate validates the CreateApplicationRequest.
func (r *CreateApplicationRequest) Validate() error { return validate.Struct(r) }

// Validate validates the UpdateApplicationRequest.
func (r *UpdateApplicationRequest) Validate() error { return validate.Struct(r) }

// Validate validates the FetchJobRequest.
func (r *FetchJobRequest) Validate() error { return validate.Struct(r) }

// Validate validates the ExtractJobInfoRequest.
func (r *ExtractJobInfoRequest) Validate() error { return validate.Struct(r) }

// Validate validates the ImportApplicationRequest.
func (r *ImportApplicationRequest) Validate() error { return validate.Struct(r) }
