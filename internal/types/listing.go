package types

import (
	"time"

	"github.com/google/uuid"
)

// Listing is a persisted job opportunity. ApplyLink is the dedup key: no two
// listings ever share one, across adapters and across runs.
type Listing struct {
	ID             uuid.UUID      `json:"id"`
	CompanyName    string         `json:"company_name"`
	RoleTitle      string         `json:"role_title"`
	ApplyLink      string         `json:"apply_link"`
	Location       string         `json:"location,omitempty"`
	JobType        JobType        `json:"job_type,omitempty"`
	WorkMode       WorkMode       `json:"work_mode,omitempty"`
	SalaryMin      *int           `json:"salary_min,omitempty"`
	SalaryMax      *int           `json:"salary_max,omitempty"`
	Currency       string         `json:"currency,omitempty"`
	Source         ListingSource  `json:"source"`
	Status         ListingStatus  `json:"status"`
	SourceMetadata map[string]any `json:"source_metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// PortalEntry is one knowledge-base row: the learned crawl health of a
// company career page.
type PortalEntry struct {
	Company     string       `json:"company"`
	PortalURL   string       `json:"portal_url"`
	Status      PortalStatus `json:"status"`
	Reason      string       `json:"reason,omitempty"`
	LastChecked time.Time    `json:"last_checked"`
}

// ResumeScore is one append-only ATS scoring result.
type ResumeScore struct {
	ID              int64      `json:"id"`
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	JobID           *uuid.UUID `json:"job_id,omitempty"`
	Score           float64    `json:"score"`
	MissingKeywords []string   `json:"missing_keywords"`
	Recommendations []string   `json:"recommendations"`
	CreatedAt       time.Time  `json:"created_at"`
}
