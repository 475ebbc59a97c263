package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/priya/jobscout/internal/types"
)

// GetJobPreference retrieves a user's stored search preferences; nil when
// the user has none saved.
func (db *DB) GetJobPreference(ctx context.Context, userID uuid.UUID) (*types.JobPreference, error) {
	var (
		pref  types.JobPreference
		roles []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, desired_roles, experience_years
		 FROM job_preferences WHERE user_id = $1`,
		userID,
	).Scan(&pref.UserID, &roles, &pref.ExperienceYears)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job preference: %w", err)
	}
	if len(roles) > 0 {
		if err := json.Unmarshal(roles, &pref.DesiredRoles); err != nil {
			return nil, fmt.Errorf("failed to decode desired roles: %w", err)
		}
	}
	return &pref, nil
}

// UpsertJobPreference stores or replaces a user's search preferences.
func (db *DB) UpsertJobPreference(ctx context.Context, pref *types.JobPreference) error {
	roles, err := json.Marshal(pref.DesiredRoles)
	if err != nil {
		return fmt.Errorf("failed to marshal desired roles: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO job_preferences (user_id, desired_roles, experience_years)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET
		   desired_roles = EXCLUDED.desired_roles,
		   experience_years = EXCLUDED.experience_years`,
		pref.UserID, roles, pref.ExperienceYears,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert job preference: %w", err)
	}
	return nil
}
