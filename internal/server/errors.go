// Package server provides the HTTP REST API for the job application tracker.
package server

import (
	"fmt"
	"net/http"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrNotFoundOrForbidden indicates the target application is absent or owned
// by someone else. The two cases share one error so responses never leak
// whether another user's record exists.
type ErrNotFoundOrForbidden struct{}

func (e *ErrNotFoundOrForbidden) Error() string {
	return "job application not found or access denied"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUpstreamFetch indicates the page fetch or the AI call failed or timed
// out. Surfaced to the user as a retryable warning; no record is written.
type ErrUpstreamFetch struct {
	Stage string
	Cause error
}

func (e *ErrUpstreamFetch) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Stage, e.Cause)
}

func (e *ErrUpstreamFetch) Unwrap() error {
	return e.Cause
}

// ErrInvalidPosting indicates the AI determined the URL is not a job posting.
// Surfaced as a distinct warning; no record is created.
type ErrInvalidPosting struct{}

func (e *ErrInvalidPosting) Error() string {
	return "the page does not appear to be a job posting"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrNotFoundOrForbidden:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrUpstreamFetch:
		return http.StatusBadGateway
	case *ErrInvalidPosting:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
