package store

import (
	"database/sql"
	"fmt"

	"github.com/tessera-labs/trailhead/pkg/models"
)

// Phase and task operations. Phases and tasks are read-only from the
// tracker's perspective; writes happen only through seeding.

// ListPhases returns all phases ordered by sequence.
func (db *DB) ListPhases() ([]models.Phase, error) {
	rows, err := db.Query(`
		SELECT id, name, sequence FROM phases ORDER BY sequence
	`)
	if err != nil {
		return nil, fmt.Errorf("list phases: %w", err)
	}
	defer rows.Close()

	var phases []models.Phase
	for rows.Next() {
		var p models.Phase
		if err := rows.Scan(&p.ID, &p.Name, &p.Sequence); err != nil {
			return nil, fmt.Errorf("scan phase: %w", err)
		}
		phases = append(phases, p)
	}
	return phases, rows.Err()
}

// ListTasks returns all tasks ordered by phase and sequence.
func (db *DB) ListTasks() ([]models.Task, error) {
	rows, err := db.Query(`
		SELECT t.id, t.phase_id, t.name, t.sequence, t.subtask_suggestion
		FROM tasks t
		JOIN phases p ON p.id = t.phase_id
		ORDER BY p.sequence, t.sequence
	`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var suggestion sql.NullString
		if err := rows.Scan(&t.ID, &t.PhaseID, &t.Name, &t.Sequence, &suggestion); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if suggestion.Valid {
			t.SubtaskSuggestion = suggestion.String
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask retrieves a task by ID. Returns nil if not found.
func (db *DB) GetTask(id string) (*models.Task, error) {
	row := db.QueryRow(`
		SELECT id, phase_id, name, sequence, subtask_suggestion FROM tasks WHERE id = ?
	`, id)

	var t models.Task
	var suggestion sql.NullString
	err := row.Scan(&t.ID, &t.PhaseID, &t.Name, &t.Sequence, &suggestion)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if suggestion.Valid {
		t.SubtaskSuggestion = suggestion.String
	}
	return &t, nil
}

// UpsertPhase inserts or updates a phase by ID.
func (db *DB) UpsertPhase(p *models.Phase) error {
	_, err := db.Exec(`
		INSERT INTO phases (id, name, sequence) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, sequence = excluded.sequence
	`, p.ID, p.Name, p.Sequence)
	if err != nil {
		return fmt.Errorf("upsert phase: %w", err)
	}
	return nil
}

// UpsertTask inserts or updates a task by ID.
func (db *DB) UpsertTask(t *models.Task) error {
	var suggestion any
	if t.SubtaskSuggestion != "" {
		suggestion = t.SubtaskSuggestion
	}
	_, err := db.Exec(`
		INSERT INTO tasks (id, phase_id, name, sequence, subtask_suggestion) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			phase_id = excluded.phase_id,
			name = excluded.name,
			sequence = excluded.sequence,
			subtask_suggestion = excluded.subtask_suggestion
	`, t.ID, t.PhaseID, t.Name, t.Sequence, suggestion)
	if err != nil {
		return fmt.Errorf("upsert task: %w", err)
	}
	return nil
}
