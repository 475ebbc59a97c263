package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/priya/jobscout/internal/types"
)

// PendingTasks returns all queued tasks awaiting processing, oldest first,
// with their typed filters/payload decoded by task type.
func (db *DB) PendingTasks(ctx context.Context) ([]types.SearchTask, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, status, task_type, query, filters, payload, created_at, updated_at
		 FROM search_queue
		 WHERE status = $1
		 ORDER BY created_at ASC`,
		types.TaskPending,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending tasks: %w", err)
	}
	defer rows.Close()

	var tasks []types.SearchTask
	for rows.Next() {
		var (
			t       types.SearchTask
			filters []byte
			payload []byte
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Status, &t.TaskType, &t.Query,
			&filters, &payload, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if err := t.DecodeTaskConfig(filters, payload); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// SetTaskStatus transitions a task and is committed immediately: other
// readers see PROCESSING before any work for the task begins.
func (db *DB) SetTaskStatus(ctx context.Context, id uuid.UUID, status types.TaskStatus) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE search_queue SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set task %s to %s: %w", id, status, err)
	}
	return nil
}

// CreateSearchTask enqueues a SEARCH task and returns its ID.
func (db *DB) CreateSearchTask(ctx context.Context, userID *uuid.UUID, query string, filters types.SearchFilters) (uuid.UUID, error) {
	raw, err := json.Marshal(filters)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal filters: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO search_queue (user_id, status, task_type, query, filters)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		userID, types.TaskPending, types.TaskSearch, query, raw,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create search task: %w", err)
	}
	return id, nil
}

// CreateAtsTask enqueues an ATS scoring task and returns its ID.
func (db *DB) CreateAtsTask(ctx context.Context, userID *uuid.UUID, payload types.AtsPayload) (uuid.UUID, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO search_queue (user_id, status, task_type, query, payload)
		 VALUES ($1, $2, $3, '', $4)
		 RETURNING id`,
		userID, types.TaskPending, types.TaskATS, raw,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create ATS task: %w", err)
	}
	return id, nil
}

// ListTasks retrieves recent tasks, newest first.
func (db *DB) ListTasks(ctx context.Context, limit int) ([]types.SearchTask, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, status, task_type, query, filters, payload, created_at, updated_at
		 FROM search_queue
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []types.SearchTask
	for rows.Next() {
		var (
			t       types.SearchTask
			filters []byte
			payload []byte
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Status, &t.TaskType, &t.Query,
			&filters, &payload, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if err := t.DecodeTaskConfig(filters, payload); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask retrieves one task by ID; nil when not found.
func (db *DB) GetTask(ctx context.Context, id uuid.UUID) (*types.SearchTask, error) {
	var (
		t       types.SearchTask
		filters []byte
		payload []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, status, task_type, query, filters, payload, created_at, updated_at
		 FROM search_queue WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.UserID, &t.Status, &t.TaskType, &t.Query,
		&filters, &payload, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if err := t.DecodeTaskConfig(filters, payload); err != nil {
		return nil, err
	}
	return &t, nil
}
