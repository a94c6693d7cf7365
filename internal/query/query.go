// Package query implements in-memory filtering, ordering and pagination of a
// user's job applications. The store guarantees owner isolation; this package
// only ever sees records that already belong to the caller.
package query

import (
	"sort"
	"strings"

	"github.com/jonathan/job-tracker/internal/db"
)

// All is the sentinel filter value meaning "no constraint" for the
// location and status filters.
const All = "all"

// DefaultPageSize matches the default page size of the dashboard UI.
const DefaultPageSize = 9

// Filter is the caller-supplied filter/sort/page specification. The zero
// value selects everything, sorted, on the first page of DefaultPageSize.
type Filter struct {
	// SearchText is matched case-insensitively as a substring of title or
	// company. Records with neither field set never match a non-empty search.
	SearchText string
	// Location and Status constrain by exact match; "" or "all" disables them.
	Location string
	Status   string
	// DateFrom and DateTo are inclusive YYYY-MM-DD bounds on the applied
	// date. A record without an applied date never matches a date filter.
	DateFrom string
	DateTo   string
	// Page is 1-based. PageSize must be positive; other values fall back to
	// DefaultPageSize.
	Page     int
	PageSize int
}

// Result holds one page of matching records plus pagination metadata.
type Result struct {
	Records         []db.JobApplication `json:"records"`
	TotalCount      int                 `json:"total_count"`
	TotalPages      int                 `json:"total_pages"`
	Page            int                 `json:"page"`
	HasNextPage     bool                `json:"has_next_page"`
	HasPreviousPage bool                `json:"has_previous_page"`
}

// Apply filters, sorts and paginates records. It never fails: malformed
// filter values degrade to "no match" or "no constraint", and an
// out-of-range page yields an empty slice with consistent metadata.
func (f Filter) Apply(records []db.JobApplication) Result {
	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	matched := make([]db.JobApplication, 0, len(records))
	for _, rec := range records {
		if f.matches(&rec) {
			matched = append(matched, rec)
		}
	}

	sortApplications(matched)

	totalCount := len(matched)
	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return Result{
		Records:         matched[start:end],
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		Page:            page,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// matches applies all filter predicates conjunctively.
func (f Filter) matches(rec *db.JobApplication) bool {
	if search := strings.TrimSpace(f.SearchText); search != "" {
		needle := strings.ToLower(search)
		if !containsFold(rec.Title, needle) && !containsFold(rec.Company, needle) {
			return false
		}
	}

	if constrained(f.Location) {
		if rec.Location == nil || *rec.Location != f.Location {
			return false
		}
	}

	if constrained(f.Status) {
		if string(rec.Status) != f.Status {
			return false
		}
	}

	if f.DateFrom != "" || f.DateTo != "" {
		// Records without an applied date are excluded by any date filter.
		if rec.AppliedDate == nil {
			return false
		}
		// ISO dates order correctly under string comparison.
		if f.DateFrom != "" && *rec.AppliedDate < f.DateFrom {
			return false
		}
		if f.DateTo != "" && *rec.AppliedDate > f.DateTo {
			return false
		}
	}

	return true
}

func constrained(value string) bool {
	return value != "" && value != All
}

func containsFold(field *string, lowerNeedle string) bool {
	if field == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*field), lowerNeedle)
}

// sortApplications orders records by applied date descending with records
// lacking an applied date after every dated record, breaking ties by
// creation time descending. The tie-break makes the order a strict total
// order, so output is deterministic for fixed input.
func sortApplications(apps []db.JobApplication) {
	sort.SliceStable(apps, func(i, j int) bool {
		a, b := &apps[i], &apps[j]
		switch {
		case a.AppliedDate != nil && b.AppliedDate == nil:
			return true
		case a.AppliedDate == nil && b.AppliedDate != nil:
			return false
		case a.AppliedDate != nil && b.AppliedDate != nil && *a.AppliedDate != *b.AppliedDate:
			return *a.AppliedDate > *b.AppliedDate
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

// UniqueLocations returns every distinct non-empty location across the given
// records, lexicographically sorted. Used to populate the filter dropdown.
func UniqueLocations(records []db.JobApplication) []string {
	seen := make(map[string]bool)
	locations := make([]string, 0)
	for _, rec := range records {
		if rec.Location == nil || *rec.Location == "" {
			continue
		}
		if !seen[*rec.Location] {
			seen[*rec.Location] = true
			locations = append(locations, *rec.Location)
		}
	}
	sort.Strings(locations)
	return locations
}
