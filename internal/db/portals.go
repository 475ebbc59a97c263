package db

import (
	"context"
	"fmt"

	"github.com/priya/jobscout/internal/types"
)

// ListPortals retrieves every known career portal, alphabetical by company.
func (db *DB) ListPortals(ctx context.Context) ([]types.PortalEntry, error) {
	return db.queryPortals(ctx,
		`SELECT company, portal_url, status, reason, last_checked
		 FROM career_portals ORDER BY company`)
}

// ActivePortals retrieves portals eligible for a deep scan pass. Entries
// marked NON-WORKING and entries without a URL are skipped so failed
// portals are not retried until something flips them back.
func (db *DB) ActivePortals(ctx context.Context) ([]types.PortalEntry, error) {
	return db.queryPortals(ctx,
		`SELECT company, portal_url, status, reason, last_checked
		 FROM career_portals
		 WHERE status != 'NON-WORKING' AND portal_url != ''
		 ORDER BY company`)
}

func (db *DB) queryPortals(ctx context.Context, query string) ([]types.PortalEntry, error) {
	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query career portals: %w", err)
	}
	defer rows.Close()

	var portals []types.PortalEntry
	for rows.Next() {
		var (
			p      types.PortalEntry
			reason *string
		)
		if err := rows.Scan(&p.Company, &p.PortalURL, &p.Status, &reason, &p.LastChecked); err != nil {
			return nil, fmt.Errorf("failed to scan career portal: %w", err)
		}
		if reason != nil {
			p.Reason = *reason
		}
		portals = append(portals, p)
	}
	return portals, rows.Err()
}

// MarkPortalWorking records a successful crawl against a company's portal
// and refreshes the last-checked timestamp.
func (db *DB) MarkPortalWorking(ctx context.Context, company string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE career_portals
		 SET status = 'WORKING', reason = NULL, last_checked = now()
		 WHERE company = $1`,
		company,
	)
	if err != nil {
		return fmt.Errorf("failed to mark portal working: %w", err)
	}
	return nil
}

// MarkPortalNonWorking records a terminal crawl failure with its reason.
func (db *DB) MarkPortalNonWorking(ctx context.Context, company, reason string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE career_portals
		 SET status = 'NON-WORKING', reason = $2, last_checked = now()
		 WHERE company = $1`,
		company, reason,
	)
	if err != nil {
		return fmt.Errorf("failed to mark portal non-working: %w", err)
	}
	return nil
}

// UpsertPortal inserts or replaces one portal record. The import command
// and the portal management API both land here.
func (db *DB) UpsertPortal(ctx context.Context, p *types.PortalEntry) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO career_portals (company, portal_url, status, reason, last_checked)
		 VALUES ($1, $2, $3, NULLIF($4, ''), now())
		 ON CONFLICT (company) DO UPDATE SET
		   portal_url = EXCLUDED.portal_url,
		   status = EXCLUDED.status,
		   reason = EXCLUDED.reason,
		   last_checked = now()`,
		p.Company, p.PortalURL, p.Status, p.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert career portal %s: %w", p.Company, err)
	}
	return nil
}
