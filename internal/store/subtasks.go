package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tessera-labs/trailhead/pkg/models"
)

// ValidationError indicates the caller supplied bad input. Validation
// failures are detected before any statement reaches the database.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// SubtaskWithContext is a subtask joined with its task and phase names,
// used to build the extraction de-duplication context.
type SubtaskWithContext struct {
	models.Subtask
	TaskName  string `json:"task_name"`
	PhaseName string `json:"phase_name"`
}

// CreateSubtask inserts a new subtask with status yet_to_start and a
// store-assigned ID, and returns the persisted record.
func (db *DB) CreateSubtask(taskID, studentID, name string, sequence int, aiGenerated bool) (*models.Subtask, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if taskID == "" {
		return nil, &ValidationError{Field: "task_id", Msg: "must not be empty"}
	}
	if studentID == "" {
		return nil, &ValidationError{Field: "student_id", Msg: "must not be empty"}
	}

	s := &models.Subtask{
		ID:            uuid.New().String(),
		TaskID:        taskID,
		StudentID:     studentID,
		Name:          name,
		Status:        models.StatusYetToStart,
		Sequence:      sequence,
		IsAIGenerated: aiGenerated,
	}

	_, err := db.Exec(`
		INSERT INTO student_subtasks (id, name, student_id, task_id, status, sequence, is_ai_generated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Name, s.StudentID, s.TaskID, string(s.Status), s.Sequence, boolToInt(s.IsAIGenerated))
	if err != nil {
		return nil, fmt.Errorf("create subtask: %w", err)
	}
	return s, nil
}

// ListSubtasksByStudent returns every subtask for a student, ordered by
// task and sequence. Grouping by task is left to the caller.
func (db *DB) ListSubtasksByStudent(studentID string) ([]models.Subtask, error) {
	rows, err := db.Query(`
		SELECT id, name, student_id, task_id, status, sequence, is_ai_generated
		FROM student_subtasks
		WHERE student_id = ?
		ORDER BY task_id, sequence
	`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}
	defer rows.Close()

	var subtasks []models.Subtask
	for rows.Next() {
		var s models.Subtask
		var ai int
		if err := rows.Scan(&s.ID, &s.Name, &s.StudentID, &s.TaskID, &s.Status, &s.Sequence, &ai); err != nil {
			return nil, fmt.Errorf("scan subtask: %w", err)
		}
		s.IsAIGenerated = ai != 0
		subtasks = append(subtasks, s)
	}
	return subtasks, rows.Err()
}

// ListSubtasksWithContext returns a student's subtasks joined with their
// task and phase names.
func (db *DB) ListSubtasksWithContext(studentID string) ([]SubtaskWithContext, error) {
	rows, err := db.Query(`
		SELECT s.id, s.name, s.student_id, s.task_id, s.status, s.sequence, s.is_ai_generated,
			t.name, p.name
		FROM student_subtasks s
		JOIN tasks t ON t.id = s.task_id
		JOIN phases p ON p.id = t.phase_id
		WHERE s.student_id = ?
		ORDER BY p.sequence, t.sequence, s.sequence
	`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list subtasks with context: %w", err)
	}
	defer rows.Close()

	var subtasks []SubtaskWithContext
	for rows.Next() {
		var s SubtaskWithContext
		var ai int
		if err := rows.Scan(&s.ID, &s.Name, &s.StudentID, &s.TaskID, &s.Status, &s.Sequence, &ai,
			&s.TaskName, &s.PhaseName); err != nil {
			return nil, fmt.Errorf("scan subtask context: %w", err)
		}
		s.IsAIGenerated = ai != 0
		subtasks = append(subtasks, s)
	}
	return subtasks, rows.Err()
}

// UpdateSubtaskStatus sets a subtask's status. The student filter is part
// of the predicate so one student cannot move another's subtask.
func (db *DB) UpdateSubtaskStatus(subtaskID, studentID string, status models.SubtaskStatus) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Msg: fmt.Sprintf("unknown status %q", status)}
	}

	_, err := db.Exec(`
		UPDATE student_subtasks SET status = ? WHERE id = ? AND student_id = ?
	`, string(status), subtaskID, studentID)
	if err != nil {
		return fmt.Errorf("update subtask status: %w", err)
	}
	return nil
}

// NextSequence returns 1 + max(existing sequences) for the task, or 1 when
// the task has no subtasks yet.
func (db *DB) NextSequence(taskID, studentID string) (int, error) {
	row := db.QueryRow(`
		SELECT COALESCE(MAX(sequence), 0) FROM student_subtasks
		WHERE task_id = ? AND student_id = ?
	`, taskID, studentID)

	var max int
	if err := row.Scan(&max); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return max + 1, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
