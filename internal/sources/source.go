// Package sources hosts the job-board adapters. Each adapter turns one
// upstream site or API into a uniform stream of raw listings; adapters
// log and swallow their own failures so one bad upstream never aborts a
// discovery batch.
package sources

import (
	"context"

	"github.com/priya/jobscout/internal/types"
)

// Query is a single role search against one adapter.
type Query struct {
	Role            string
	Location        string
	IsRemote        bool
	IsInternship    bool
	ExperienceYears int
	Limit           int
}

// RawListing is an adapter result before classification and persistence.
// Salary and work mode are set only when the upstream states them
// outright; the ingestion gate infers the rest from the description.
type RawListing struct {
	Title       string
	Company     string
	ApplyLink   string
	Description string
	Location    string
	SalaryMin   *int
	SalaryMax   *int
	WorkMode    *types.WorkMode
	Source      types.ListingSource
	Site        string
	Metadata    map[string]any
}

// Source is a job-board adapter. Search never returns an error: adapters
// log upstream failures and return whatever they managed to collect,
// possibly nothing.
type Source interface {
	Name() string
	Search(ctx context.Context, q Query) []RawListing
}
