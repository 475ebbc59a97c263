package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/priya/jobscout/internal/types"
)

// InsertResumeScore appends one scoring result. Scores are never updated
// in place so the history of runs per user stays intact.
func (db *DB) InsertResumeScore(ctx context.Context, score *types.ResumeScore) error {
	missing, err := json.Marshal(score.MissingKeywords)
	if err != nil {
		return fmt.Errorf("failed to marshal missing keywords: %w", err)
	}
	recs, err := json.Marshal(score.Recommendations)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO resume_scores (user_id, job_id, score, missing_keywords, recommendations)
		 VALUES ($1, $2, $3, $4, $5)`,
		score.UserID, score.JobID, score.Score, missing, recs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert resume score: %w", err)
	}
	return nil
}

// ListResumeScores retrieves scoring history for a user, newest first.
func (db *DB) ListResumeScores(ctx context.Context, userID uuid.UUID) ([]types.ResumeScore, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, job_id, score, missing_keywords, recommendations, created_at
		 FROM resume_scores WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume scores: %w", err)
	}
	defer rows.Close()

	var scores []types.ResumeScore
	for rows.Next() {
		var (
			s       types.ResumeScore
			missing []byte
			recs    []byte
		)
		if err := rows.Scan(&s.ID, &s.UserID, &s.JobID, &s.Score, &missing, &recs, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume score: %w", err)
		}
		if len(missing) > 0 {
			_ = json.Unmarshal(missing, &s.MissingKeywords)
		}
		if len(recs) > 0 {
			_ = json.Unmarshal(recs, &s.Recommendations)
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}
