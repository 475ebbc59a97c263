package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// SearchFilters is the typed configuration of a SEARCH task. It is stored as
// JSONB on the queue row and decoded by task type.
type SearchFilters struct {
	Location         string   `json:"location,omitempty"`
	IsRemote         bool     `json:"is_remote,omitempty"`
	IsInternship     bool     `json:"is_internship,omitempty"`
	ExperienceYears  int      `json:"experience_years,omitempty"`
	ScanMode         ScanMode `json:"scan_mode,omitempty"`
	AutoDeepFallback bool     `json:"auto_deep_fallback,omitempty"`
}

// UnmarshalJSON tolerates experience_years arriving as a number or a numeric
// string; rows written by older API clients used both encodings.
func (f *SearchFilters) UnmarshalJSON(data []byte) error {
	type alias SearchFilters
	aux := struct {
		*alias
		ExperienceYears json.RawMessage `json:"experience_years,omitempty"`
	}{alias: (*alias)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.ExperienceYears) > 0 {
		var n int
		if err := json.Unmarshal(aux.ExperienceYears, &n); err == nil {
			f.ExperienceYears = n
			return nil
		}
		var s string
		if err := json.Unmarshal(aux.ExperienceYears, &s); err != nil {
			return fmt.Errorf("experience_years: %w", err)
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			// Unparseable values fall back to zero, matching the lenient
			// behavior listings were ingested with historically.
			n = 0
		}
		f.ExperienceYears = n
	}
	return nil
}

// AtsPayload is the typed payload of an ATS task.
type AtsPayload struct {
	ResumeText     string     `json:"resume_text,omitempty"`
	ResumeURL      string     `json:"resume_url,omitempty"`
	JobDescription string     `json:"job_description,omitempty"`
	JobID          *uuid.UUID `json:"job_id,omitempty"`
}

// SearchTask is one row of the search queue. Filters and Payload form a
// discriminated union selected by TaskType: SEARCH tasks carry Filters,
// ATS tasks carry Payload.
type SearchTask struct {
	ID        uuid.UUID     `json:"id"`
	UserID    *uuid.UUID    `json:"user_id,omitempty"`
	Status    TaskStatus    `json:"status"`
	TaskType  TaskType      `json:"task_type"`
	Query     string        `json:"query,omitempty"`
	Filters   SearchFilters `json:"filters,omitempty"`
	Payload   AtsPayload    `json:"payload,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// DecodeTaskConfig fills the typed side of the union from raw JSONB columns.
func (t *SearchTask) DecodeTaskConfig(filters, payload []byte) error {
	switch t.TaskType {
	case TaskATS:
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &t.Payload); err != nil {
				return fmt.Errorf("decode ATS payload for task %s: %w", t.ID, err)
			}
		}
	default:
		if len(filters) > 0 {
			if err := json.Unmarshal(filters, &t.Filters); err != nil {
				return fmt.Errorf("decode search filters for task %s: %w", t.ID, err)
			}
		}
	}
	if t.Filters.ScanMode == "" {
		t.Filters.ScanMode = ScanFast
	}
	return nil
}

// JobPreference is a user's stored search profile. When present it overrides
// the free-text query and experience filter on their tasks.
type JobPreference struct {
	UserID          uuid.UUID `json:"user_id"`
	DesiredRoles    []string  `json:"desired_roles"`
	ExperienceYears int       `json:"experience_years"`
}
