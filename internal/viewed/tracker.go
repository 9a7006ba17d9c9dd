// Package viewed persists the per-student set of tasks the student has
// already opened. The set only grows; it exists to gate the one-shot
// "new AI-generated subtask" badge.
package viewed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tessera-labs/trailhead/pkg/models"
)

// Tracker stores viewed task IDs for one student in a JSON file.
type Tracker struct {
	studentID string
	dir       string
	seen      map[string]bool
}

// DefaultDir returns the default directory for viewed-state files.
func DefaultDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "trailhead")
}

// NewTracker loads the viewed set for a student from dir. A missing or
// corrupt state file is treated as an empty set; loading never fails.
func NewTracker(dir, studentID string) *Tracker {
	t := &Tracker{
		studentID: studentID,
		dir:       dir,
		seen:      make(map[string]bool),
	}

	data, err := os.ReadFile(t.path())
	if err != nil {
		return t
	}

	var stored map[string]bool
	if err := json.Unmarshal(data, &stored); err != nil {
		// Corrupt state recovers to empty rather than surfacing an error.
		return t
	}
	t.seen = stored
	if t.seen == nil {
		t.seen = make(map[string]bool)
	}
	return t
}

// path returns the state file location, keyed per student.
func (t *Tracker) path() string {
	return filepath.Join(t.dir, fmt.Sprintf("viewed_tasks_%s.json", t.studentID))
}

// IsViewed reports whether the task has been opened before.
func (t *Tracker) IsViewed(taskID string) bool {
	return t.seen[taskID]
}

// MarkViewed records the task as opened and persists the set. Marking an
// already-viewed task is a no-op.
func (t *Tracker) MarkViewed(taskID string) error {
	if t.seen[taskID] {
		return nil
	}
	t.seen[taskID] = true

	if err := os.MkdirAll(t.dir, 0755); err != nil {
		return fmt.Errorf("create viewed-state directory: %w", err)
	}

	data, err := json.Marshal(t.seen)
	if err != nil {
		return fmt.Errorf("encode viewed set: %w", err)
	}
	if err := os.WriteFile(t.path(), data, 0644); err != nil {
		return fmt.Errorf("write viewed set: %w", err)
	}
	return nil
}

// IsNewAISubtask returns true iff any of the task's subtasks is
// AI-generated and the task has not been viewed yet.
func (t *Tracker) IsNewAISubtask(taskID string, subtasks []models.Subtask) bool {
	if t.seen[taskID] {
		return false
	}
	for _, s := range subtasks {
		if s.IsAIGenerated {
			return true
		}
	}
	return false
}
