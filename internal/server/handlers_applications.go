package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/job-tracker/internal/db"
	"github.com/jonathan/job-tracker/internal/query"
	"github.com/jonathan/job-tracker/internal/server/middleware"
	"github.com/jonathan/job-tracker/internal/types"
)

// LocationsResponse represents the response for the locations dropdown.
type LocationsResponse struct {
	Locations []string `json:"locations"`
}

// handleListApplications lists the caller's applications, filtered, sorted
// and paginated. Malformed filter values are treated as "no constraint" or
// "no match" rather than errors, so the dashboard stays usable on partial
// input.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	ownerID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	records, err := s.db.ListApplicationsByOwner(r.Context(), ownerID)
	if err != nil {
		s.internalError(w, err)
		return
	}

	params := r.URL.Query()
	filter := query.Filter{
		SearchText: params.Get("search"),
		Location:   params.Get("location"),
		Status:     params.Get("status"),
		DateFrom:   params.Get("date_from"),
		DateTo:     params.Get("date_to"),
		Page:       parseQueryInt(r, "page", 1),
		PageSize:   parseQueryInt(r, "page_size", query.DefaultPageSize),
	}

	s.jsonResponse(w, http.StatusOK, filter.Apply(records))
}

// handleListLocations returns the caller's distinct application locations.
func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	ownerID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	records, err := s.db.ListApplicationsByOwner(r.Context(), ownerID)
	if err != nil {
		s.internalError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, LocationsResponse{Locations: query.UniqueLocations(records)})
}

// handleCreateApplication creates a new application for the caller.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	ownerID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	app, err := s.db.CreateApplication(r.Context(), ownerID, &db.ApplicationCreateInput{
		URL:         req.URL,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		AppliedDate: req.AppliedDate,
		Status:      db.ApplicationStatus(req.Status),
	})
	if err != nil {
		s.internalError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, app)
}

// handleGetApplication retrieves one of the caller's applications by ID.
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	ownerID, appID, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}

	app, err := s.db.GetApplication(r.Context(), appID, ownerID)
	if err != nil {
		s.internalError(w, err)
		return
	}
	if app == nil {
		s.notFoundOrForbidden(w)
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

// handleUpdateApplication applies a partial update to one of the caller's
// applications.
func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	ownerID, appID, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}

	var req types.UpdateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	input := &db.ApplicationUpdateInput{
		URL:         req.URL,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		AppliedDate: req.AppliedDate,
	}
	if req.Status != nil {
		status := db.ApplicationStatus(*req.Status)
		input.Status = &status
	}

	app, err := s.db.UpdateApplication(r.Context(), appID, ownerID, input)
	if err != nil {
		s.internalError(w, err)
		return
	}
	if app == nil {
		s.notFoundOrForbidden(w)
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

// handleDeleteApplication removes one of the caller's applications.
func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	ownerID, appID, ok := s.ownerAndID(w, r)
	if !ok {
		return
	}

	deleted, err := s.db.DeleteApplication(r.Context(), appID, ownerID)
	if err != nil {
		s.internalError(w, err)
		return
	}
	if !deleted {
		s.notFoundOrForbidden(w)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// ownerAndID extracts the authenticated owner and the {id} path value.
func (s *Server) ownerAndID(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	ownerID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	appID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		// An unparseable ID can never name an existing record; answer the
		// same way as a miss so responses stay uniform.
		s.notFoundOrForbidden(w)
		return uuid.Nil, uuid.Nil, false
	}

	return ownerID, appID, true
}

func (s *Server) notFoundOrForbidden(w http.ResponseWriter) {
	err := &ErrNotFoundOrForbidden{}
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

// parseQueryInt parses an integer query parameter, falling back to def on
// absent or malformed values.
func parseQueryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
