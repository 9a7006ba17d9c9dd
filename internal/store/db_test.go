package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tessera-labs/trailhead/pkg/models"
)

// tempDBPath returns a path to a temp database file.
func tempDBPath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "test.db")
}

// setupTestDB creates a new temporary database for testing.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(tempDBPath(t))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// seedRoadmap inserts a small phase/task fixture.
func seedRoadmap(t *testing.T, db *DB) {
	t.Helper()
	phases := []models.Phase{
		{ID: "p1", Name: "Intro", Sequence: 1},
		{ID: "p2", Name: "Core Skills", Sequence: 2},
	}
	for i := range phases {
		if err := db.UpsertPhase(&phases[i]); err != nil {
			t.Fatalf("seed phase: %v", err)
		}
	}
	tasks := []models.Task{
		{ID: "t1", PhaseID: "p1", Name: "Setup", Sequence: 1},
		{ID: "t2", PhaseID: "p1", Name: "Orientation", Sequence: 2},
		{ID: "t3", PhaseID: "p2", Name: "First Project", Sequence: 1},
	}
	for i := range tasks {
		if err := db.UpsertTask(&tasks[i]); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}
}

func TestOpen(t *testing.T) {
	path := tempDBPath(t)
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("database file does not exist at %s", path)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := setupTestDB(t)

	// A second migrate must be a no-op.
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}

	var version int
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&version); err != nil {
		t.Fatalf("read schema version: %v", err)
	}
	if version != 2 {
		t.Errorf("schema version = %d, want 2", version)
	}
}

func TestListPhasesOrdered(t *testing.T) {
	db := setupTestDB(t)
	// Insert out of order; listing must come back by sequence.
	if err := db.UpsertPhase(&models.Phase{ID: "p2", Name: "Second", Sequence: 2}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := db.UpsertPhase(&models.Phase{ID: "p1", Name: "First", Sequence: 1}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	phases, err := db.ListPhases()
	if err != nil {
		t.Fatalf("ListPhases failed: %v", err)
	}
	if len(phases) != 2 {
		t.Fatalf("got %d phases, want 2", len(phases))
	}
	if phases[0].ID != "p1" || phases[1].ID != "p2" {
		t.Errorf("phases out of order: %v", phases)
	}
}

func TestUpsertPhaseUpdates(t *testing.T) {
	db := setupTestDB(t)
	if err := db.UpsertPhase(&models.Phase{ID: "p1", Name: "Old", Sequence: 1}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := db.UpsertPhase(&models.Phase{ID: "p1", Name: "New", Sequence: 3}); err != nil {
		t.Fatalf("upsert again: %v", err)
	}

	phases, err := db.ListPhases()
	if err != nil {
		t.Fatalf("ListPhases failed: %v", err)
	}
	if len(phases) != 1 {
		t.Fatalf("got %d phases, want 1", len(phases))
	}
	if phases[0].Name != "New" || phases[0].Sequence != 3 {
		t.Errorf("phase not updated: %+v", phases[0])
	}
}

func TestGetTask(t *testing.T) {
	db := setupTestDB(t)
	seedRoadmap(t, db)

	task, err := db.GetTask("t1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if task == nil {
		t.Fatal("GetTask returned nil for existing task")
	}
	if task.Name != "Setup" || task.PhaseID != "p1" {
		t.Errorf("task mismatch: %+v", task)
	}

	task, err = db.GetTask("nonexistent")
	if err != nil {
		t.Fatalf("GetTask failed for nonexistent: %v", err)
	}
	if task != nil {
		t.Errorf("expected nil for nonexistent task, got %+v", task)
	}
}

func TestListTasksOrderedByPhase(t *testing.T) {
	db := setupTestDB(t)
	seedRoadmap(t, db)

	tasks, err := db.ListTasks()
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}
	want := []string{"t1", "t2", "t3"}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Errorf("tasks[%d].ID = %s, want %s", i, tasks[i].ID, id)
		}
	}
}
