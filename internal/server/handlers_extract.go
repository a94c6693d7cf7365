package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/job-tracker/internal/db"
	"github.com/jonathan/job-tracker/internal/extraction"
	"github.com/jonathan/job-tracker/internal/server/middleware"
	"github.com/jonathan/job-tracker/internal/types"
)

// FetchJobResponse carries the raw HTML of a fetched posting page.
type FetchJobResponse struct {
	HTML string `json:"html"`
}

// ImportApplicationResponse carries the created record plus an optional
// non-blocking warning (e.g. partial extraction).
type ImportApplicationResponse struct {
	Application *db.JobApplication `json:"application"`
	Warning     string             `json:"warning,omitempty"`
}

// WarningPartialExtraction is returned when extraction succeeded but one or
// more fields came back empty; the record is still created so the user can
// fill the gaps manually.
const WarningPartialExtraction = "partial_extraction"

// handleFetchJob retrieves the HTML of a job-posting page.
func (s *Server) handleFetchJob(w http.ResponseWriter, r *http.Request) {
	var req types.FetchJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := s.fetcher.Page(r.Context(), req.URL)
	if err != nil {
		upstream := &ErrUpstreamFetch{Stage: "page fetch", Cause: err}
		s.errorResponse(w, HTTPStatus(upstream), upstream.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, FetchJobResponse{HTML: page.HTML})
}

// handleExtractJobInfo extracts title, company and location from posting
// HTML. A missing html field is a 400; a missing upstream credential is a
// 500; a page the model rejects as not-a-posting is a 422.
func (s *Server) handleExtractJobInfo(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractJobInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.HTML == "" {
		s.errorResponse(w, http.StatusBadRequest, "HTML content is required")
		return
	}

	if s.extractor == nil {
		s.errorResponse(w, http.StatusInternalServerError, "GEMINI_API_KEY is not configured")
		return
	}

	fields, err := s.extractor.ExtractFromHTML(r.Context(), req.HTML)
	if err != nil {
		if errors.Is(err, extraction.ErrInvalidPosting) {
			invalid := &ErrInvalidPosting{}
			s.errorResponse(w, HTTPStatus(invalid), invalid.Error())
			return
		}
		upstream := &ErrUpstreamFetch{Stage: "extraction", Cause: err}
		s.errorResponse(w, HTTPStatus(upstream), upstream.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, fields)
}

// handleImportApplication runs the full fetch-then-extract pipeline for a
// URL and creates the record. Each stage fails distinctly: fetch failure and
// model failure are retryable upstream errors, an invalid posting is a
// distinct warning with no record, and partial fields create the record
// with a non-blocking warning.
func (s *Server) handleImportApplication(w http.ResponseWriter, r *http.Request) {
	ownerID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.ImportApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.pipeline == nil {
		s.errorResponse(w, http.StatusInternalServerError, "GEMINI_API_KEY is not configured")
		return
	}

	fields, err := s.pipeline.Run(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, extraction.ErrInvalidPosting) {
			invalid := &ErrInvalidPosting{}
			s.errorResponse(w, HTTPStatus(invalid), invalid.Error())
			return
		}
		var stageErr *extraction.StageError
		stage := "pipeline"
		if errors.As(err, &stageErr) {
			stage = string(stageErr.Stage)
		}
		upstream := &ErrUpstreamFetch{Stage: stage, Cause: err}
		s.errorResponse(w, HTTPStatus(upstream), upstream.Error())
		return
	}

	input := &db.ApplicationCreateInput{
		URL:         req.URL,
		Title:       optional(fields.Title),
		Company:     optional(fields.Company),
		Location:    optional(fields.Location),
		AppliedDate: req.AppliedDate,
		Status:      db.ApplicationStatus(req.Status),
	}

	app, err := s.db.CreateApplication(r.Context(), ownerID, input)
	if err != nil {
		s.internalError(w, err)
		return
	}

	resp := ImportApplicationResponse{Application: app}
	if fields.Partial() {
		resp.Warning = WarningPartialExtraction
	}
	s.jsonResponse(w, http.StatusCreated, resp)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
