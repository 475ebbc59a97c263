package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/priya/jobscout/internal/types"
)

// ListingExists reports whether a listing with this apply link is already
// persisted. The check runs per row against the full persisted set, so
// repeated runs over overlapping result sets stay idempotent.
func (db *DB) ListingExists(ctx context.Context, applyLink string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM job_listings WHERE apply_link = $1)`,
		applyLink,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check listing existence: %w", err)
	}
	return exists, nil
}

// InsertListing persists one listing. The unique index on apply_link backs
// up the pre-insert existence check; a conflicting insert affects no rows
// and is not an error.
func (db *DB) InsertListing(ctx context.Context, l *types.Listing) error {
	meta, err := json.Marshal(l.SourceMetadata)
	if err != nil {
		return fmt.Errorf("failed to marshal source metadata: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO job_listings
		   (company_name, role_title, apply_link, location, job_type, work_mode,
		    salary_min, salary_max, currency, source, status, source_metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (apply_link) DO NOTHING`,
		l.CompanyName, l.RoleTitle, l.ApplyLink, l.Location, l.JobType, l.WorkMode,
		l.SalaryMin, l.SalaryMax, l.Currency, l.Source, l.Status, meta,
	)
	if err != nil {
		return fmt.Errorf("failed to insert listing %s: %w", l.ApplyLink, err)
	}
	return nil
}

// ListingFilters holds optional filters for listing queries.
type ListingFilters struct {
	Source  types.ListingSource
	Status  types.ListingStatus
	JobType types.JobType
	Company string
	Limit   int
	Offset  int
}

// ListListings retrieves listings with optional filters, newest first,
// along with the total count for pagination.
func (db *DB) ListListings(ctx context.Context, filters ListingFilters) ([]types.Listing, int, error) {
	if filters.Limit == 0 {
		filters.Limit = 20
	}

	where := ` WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Source != "" {
		where += fmt.Sprintf(" AND source = $%d", argNum)
		args = append(args, filters.Source)
		argNum++
	}
	if filters.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}
	if filters.JobType != "" {
		where += fmt.Sprintf(" AND job_type = $%d", argNum)
		args = append(args, filters.JobType)
		argNum++
	}
	if filters.Company != "" {
		where += fmt.Sprintf(" AND company_name ILIKE $%d", argNum)
		args = append(args, "%"+filters.Company+"%")
		argNum++
	}

	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_listings`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	query := `SELECT id, company_name, role_title, apply_link, location, job_type, work_mode,
	                 salary_min, salary_max, currency, source, status, source_metadata,
	                 created_at, updated_at
	          FROM job_listings` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	var listings []types.Listing
	for rows.Next() {
		l, err := scanListing(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		listings = append(listings, *l)
	}
	return listings, total, rows.Err()
}

// GetListing retrieves one listing by ID; nil when not found.
func (db *DB) GetListing(ctx context.Context, id uuid.UUID) (*types.Listing, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, company_name, role_title, apply_link, location, job_type, work_mode,
		        salary_min, salary_max, currency, source, status, source_metadata,
		        created_at, updated_at
		 FROM job_listings WHERE id = $1`,
		id,
	)
	l, err := scanListing(row.Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}

func scanListing(scan func(dest ...any) error) (*types.Listing, error) {
	var (
		l        types.Listing
		location *string
		jobType  *string
		workMode *string
		currency *string
		meta     []byte
	)
	if err := scan(&l.ID, &l.CompanyName, &l.RoleTitle, &l.ApplyLink, &location,
		&jobType, &workMode, &l.SalaryMin, &l.SalaryMax, &currency,
		&l.Source, &l.Status, &meta, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	if location != nil {
		l.Location = *location
	}
	if jobType != nil {
		l.JobType = types.JobType(*jobType)
	}
	if workMode != nil {
		l.WorkMode = types.WorkMode(*workMode)
	}
	if currency != nil {
		l.Currency = *currency
	}
	if len(meta) > 0 {
		_ = json.Unmarshal(meta, &l.SourceMetadata)
	}
	return &l, nil
}
