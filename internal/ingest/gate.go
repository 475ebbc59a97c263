// Package ingest turns raw adapter rows into persisted listings. The gate
// is the single funnel every adapter result passes through: entry-level
// filtering, apply-link deduplication, classification, then insert.
package ingest

import (
	"context"

	"go.uber.org/zap"

	"github.com/priya/jobscout/internal/classify"
	"github.com/priya/jobscout/internal/sources"
	"github.com/priya/jobscout/internal/types"
)

// ListingStore is the persistence surface the gate needs.
type ListingStore interface {
	ListingExists(ctx context.Context, applyLink string) (bool, error)
	InsertListing(ctx context.Context, l *types.Listing) error
}

// Params carries the per-task context the classifiers need.
type Params struct {
	DefaultLocation string
	ExperienceYears int
}

// Gate filters, classifies and persists raw listings.
type Gate struct {
	store ListingStore
	log   *zap.Logger
}

func New(store ListingStore, log *zap.Logger) *Gate {
	return &Gate{store: store, log: log}
}

// Process runs every raw row through the gate and returns how many were
// persisted. A row that fails any check is skipped silently; a row that
// fails a store call is logged and skipped. The dedup check runs per row
// against the live store, so reprocessing overlapping result sets is safe.
func (g *Gate) Process(ctx context.Context, rows []sources.RawListing, p Params) int {
	saved := 0
	for _, row := range rows {
		if g.processRow(ctx, row, p) {
			saved++
		}
	}
	return saved
}

func (g *Gate) processRow(ctx context.Context, row sources.RawListing, p Params) bool {
	if row.Title == "" || row.ApplyLink == "" {
		return false
	}
	if !classify.EntryLevel(row.Title, row.Description, p.ExperienceYears) {
		return false
	}

	exists, err := g.store.ListingExists(ctx, row.ApplyLink)
	if err != nil {
		g.log.Warn("dedup check failed",
			zap.String("apply_link", row.ApplyLink),
			zap.Error(err))
		return false
	}
	if exists {
		return false
	}

	listing := g.buildListing(row, p)
	if err := g.store.InsertListing(ctx, listing); err != nil {
		g.log.Warn("listing insert failed",
			zap.String("apply_link", row.ApplyLink),
			zap.Error(err))
		return false
	}
	return true
}

func (g *Gate) buildListing(row sources.RawListing, p Params) *types.Listing {
	company := row.Company
	if company == "" {
		company = "Unknown"
	}

	defaultLocation := p.DefaultLocation
	if defaultLocation == "" {
		defaultLocation = "India"
	}
	location := row.Location
	if location == "" {
		location = classify.Location(row.Description, defaultLocation)
	}

	workMode := classify.DetectWorkMode(location, row.Description)
	if row.WorkMode != nil {
		workMode = *row.WorkMode
	}

	salaryMin, salaryMax := row.SalaryMin, row.SalaryMax
	currency := ""
	if salaryMin == nil && salaryMax == nil {
		salaryMin, salaryMax = classify.Salary(row.Description)
	}
	if salaryMin != nil || salaryMax != nil {
		currency = "INR"
	}

	source := row.Source
	if source == "" {
		source = types.SourceOther
	}

	meta := row.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	if row.Site != "" {
		meta["site"] = row.Site
	}

	return &types.Listing{
		CompanyName:    company,
		RoleTitle:      row.Title,
		ApplyLink:      row.ApplyLink,
		Location:       location,
		JobType:        classify.DetectJobType(row.Title, row.Description),
		WorkMode:       workMode,
		SalaryMin:      salaryMin,
		SalaryMax:      salaryMax,
		Currency:       currency,
		Source:         source,
		Status:         types.ListingOpen,
		SourceMetadata: meta,
	}
}
