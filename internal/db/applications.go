package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, owner_id, url, title, company, location,
	       applied_date, status, created_at, updated_at`

func scanApplication(row pgx.Row) (*JobApplication, error) {
	var a JobApplication
	err := row.Scan(&a.ID, &a.OwnerID, &a.URL, &a.Title, &a.Company, &a.Location,
		&a.AppliedDate, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication inserts a new job application for the given owner.
// An empty status defaults to waiting.
func (db *DB) CreateApplication(ctx context.Context, ownerID uuid.UUID, input *ApplicationCreateInput) (*JobApplication, error) {
	status := input.Status
	if status == "" {
		status = StatusWaiting
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid application status: %q", status)
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO job_applications (owner_id, url, title, company, location, applied_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+applicationColumns,
		ownerID, input.URL, input.Title, input.Company, input.Location,
		input.AppliedDate, status,
	)

	app, err := scanApplication(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

// GetApplication retrieves a single application scoped to its owner.
// Returns nil when the record does not exist or belongs to another owner;
// the two cases are indistinguishable to the caller.
func (db *DB) GetApplication(ctx context.Context, id, ownerID uuid.UUID) (*JobApplication, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+`
		 FROM job_applications WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)

	app, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// UpdateApplication applies a partial update to an owner's application.
// Nil input fields keep their current values. Returns nil when the record
// does not exist or belongs to another owner.
func (db *DB) UpdateApplication(ctx context.Context, id, ownerID uuid.UUID, input *ApplicationUpdateInput) (*JobApplication, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, fmt.Errorf("invalid application status: %q", *input.Status)
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE job_applications SET
		     url          = COALESCE($3, url),
		     title        = COALESCE($4, title),
		     company      = COALESCE($5, company),
		     location     = COALESCE($6, location),
		     applied_date = COALESCE($7, applied_date),
		     status       = COALESCE($8, status),
		     updated_at   = NOW()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING `+applicationColumns,
		id, ownerID, input.URL, input.Title, input.Company, input.Location,
		input.AppliedDate, input.Status,
	)

	app, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return app, nil
}

// DeleteApplication removes an owner's application. Returns false when the
// record does not exist or belongs to another owner.
func (db *DB) DeleteApplication(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		"DELETE FROM job_applications WHERE id = $1 AND owner_id = $2",
		id, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete application: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListApplicationsByOwner retrieves every application belonging to an owner.
// Filtering, ordering and pagination happen in-memory in the query package;
// the store only guarantees owner isolation.
func (db *DB) ListApplicationsByOwner(ctx context.Context, ownerID uuid.UUID) ([]JobApplication, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM job_applications
		 WHERE owner_id = $1
		 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []JobApplication
	for rows.Next() {
		var a JobApplication
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.URL, &a.Title, &a.Company,
			&a.Location, &a.AppliedDate, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, nil
}
