package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessera-labs/trailhead/internal/roadmap"
	"github.com/tessera-labs/trailhead/pkg/models"
)

// fakeStore is an in-memory presenter store.
type fakeStore struct {
	phases   []models.Phase
	tasks    []models.Task
	subtasks []models.Subtask
	nextID   int
}

func (f *fakeStore) ListPhases() ([]models.Phase, error) { return f.phases, nil }
func (f *fakeStore) ListTasks() ([]models.Task, error)   { return f.tasks, nil }

func (f *fakeStore) ListSubtasksByStudent(studentID string) ([]models.Subtask, error) {
	var out []models.Subtask
	for _, s := range f.subtasks {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateSubtask(taskID, studentID, name string, sequence int, aiGenerated bool) (*models.Subtask, error) {
	f.nextID++
	s := models.Subtask{
		ID:        fmt.Sprintf("s%d", f.nextID),
		TaskID:    taskID,
		StudentID: studentID,
		Name:      name,
		Status:    models.StatusYetToStart,
		Sequence:  sequence,
	}
	f.subtasks = append(f.subtasks, s)
	return &s, nil
}

func (f *fakeStore) UpdateSubtaskStatus(subtaskID, studentID string, status models.SubtaskStatus) error {
	for i := range f.subtasks {
		if f.subtasks[i].ID == subtaskID && f.subtasks[i].StudentID == studentID {
			f.subtasks[i].Status = status
		}
	}
	return nil
}

func (f *fakeStore) NextSequence(taskID, studentID string) (int, error) {
	max := 0
	for _, s := range f.subtasks {
		if s.TaskID == taskID && s.StudentID == studentID && s.Sequence > max {
			max = s.Sequence
		}
	}
	return max + 1, nil
}

type fakeTracker struct {
	viewed map[string]bool
}

func (f *fakeTracker) MarkViewed(taskID string) error {
	f.viewed[taskID] = true
	return nil
}

func (f *fakeTracker) IsNewAISubtask(taskID string, subtasks []models.Subtask) bool {
	if f.viewed[taskID] {
		return false
	}
	for _, s := range subtasks {
		if s.IsAIGenerated {
			return true
		}
	}
	return false
}

func newTestApp(t *testing.T) (*App, *fakeStore, *fakeTracker) {
	t.Helper()
	fs := &fakeStore{
		phases: []models.Phase{
			{ID: "p1", Name: "Intro", Sequence: 1},
		},
		tasks: []models.Task{
			{ID: "t1", PhaseID: "p1", Name: "Setup", Sequence: 1},
		},
	}
	ft := &fakeTracker{viewed: make(map[string]bool)}
	p := roadmap.NewPresenter(fs, ft, "student-1")
	if err := p.Refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	return NewApp(p), fs, ft
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppToggleTaskMarksViewed(t *testing.T) {
	app, _, ft := newTestApp(t)

	// Move from the phase line to the task line and expand it.
	app.tree.selectNext()
	app.activateSelection()

	if !ft.viewed["t1"] {
		t.Error("expanding a task should mark it viewed")
	}
	if app.presenter.ActiveTaskID() != "t1" {
		t.Error("expanded task should become active")
	}
}

func TestAppQuickAddCreatesInlineSubtask(t *testing.T) {
	app, fs, _ := newTestApp(t)

	app.tree.selectNext() // t1
	app.handleKey(key("a"))

	if len(fs.subtasks) != 1 {
		t.Fatalf("got %d subtasks, want 1", len(fs.subtasks))
	}
	if fs.subtasks[0].Name != roadmap.InlineSubtaskName {
		t.Errorf("Name = %q, want %q", fs.subtasks[0].Name, roadmap.InlineSubtaskName)
	}
	if fs.subtasks[0].Sequence != 1 {
		t.Errorf("Sequence = %d, want 1", fs.subtasks[0].Sequence)
	}
}

func TestAppSubmitNamedSubtask(t *testing.T) {
	app, fs, _ := newTestApp(t)

	model, _ := app.Update(SubtaskSubmittedMsg{TaskID: "t1", Name: "Read the docs"})
	app = model.(*App)

	if len(fs.subtasks) != 1 || fs.subtasks[0].Name != "Read the docs" {
		t.Fatalf("subtask not created: %+v", fs.subtasks)
	}
	if app.mode != modeTree {
		t.Error("should return to tree mode after submit")
	}
}

func TestAppBlankSubtaskShowsNotice(t *testing.T) {
	fs := &fakeStore{
		phases: []models.Phase{{ID: "p1", Name: "Intro", Sequence: 1}},
		tasks:  []models.Task{{ID: "t1", PhaseID: "p1", Name: "Setup", Sequence: 1}},
	}
	fsFail := &failingCreateStore{fakeStore: fs}
	p := roadmap.NewPresenter(fsFail, &fakeTracker{viewed: map[string]bool{}}, "student-1")
	if err := p.Refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	app := NewApp(p)
	app.mode = modeInput
	app.input = NewInputField("t1")

	model, _ := app.Update(SubtaskSubmittedMsg{TaskID: "t1", Name: "   "})
	app = model.(*App)

	if app.notice == "" {
		t.Error("validation failure should surface a notice")
	}
	if app.mode != modeInput {
		t.Error("input should stay open on validation failure")
	}
}

type failingCreateStore struct {
	*fakeStore
}

func (f *failingCreateStore) CreateSubtask(taskID, studentID, name string, sequence int, aiGenerated bool) (*models.Subtask, error) {
	return nil, fmt.Errorf("name: must not be empty")
}

func TestAppStatusMenuFlow(t *testing.T) {
	app, fs, _ := newTestApp(t)
	fs.subtasks = []models.Subtask{
		{ID: "s1", TaskID: "t1", StudentID: "student-1", Name: "work", Status: models.StatusYetToStart, Sequence: 1},
	}
	if err := app.presenter.Refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	app.presenter.ToggleTask("t1")
	app.syncTree()

	// Navigate to the subtask line and open the menu.
	app.tree.selectNext() // t1
	app.tree.selectNext() // s1
	app.activateSelection()

	if app.mode != modeMenu {
		t.Fatal("selecting a subtask should open the status menu")
	}

	model, _ := app.Update(StatusChosenMsg{SubtaskID: "s1", Status: models.StatusDone})
	app = model.(*App)

	if fs.subtasks[0].Status != models.StatusDone {
		t.Errorf("status = %s, want done", fs.subtasks[0].Status)
	}
	if app.mode != modeTree {
		t.Error("should return to tree mode after choosing a status")
	}
}

func TestStatusMenuOffersClosedSet(t *testing.T) {
	m := NewStatusMenu("s1", "work", models.StatusInProgress)
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1 (current status)", m.cursor)
	}

	view := m.View()
	for _, status := range models.AllStatuses {
		if !strings.Contains(view, status.Display().Label) {
			t.Errorf("menu missing %s", status.Display().Label)
		}
	}
}

func TestStatusMenuEnterEmitsChoice(t *testing.T) {
	m := NewStatusMenu("s1", "work", models.StatusYetToStart)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should emit a command")
	}

	msg := cmd()
	chosen, ok := msg.(StatusChosenMsg)
	if !ok {
		t.Fatalf("got %T, want StatusChosenMsg", msg)
	}
	if chosen.Status != models.StatusInProgress {
		t.Errorf("Status = %s, want in_progress", chosen.Status)
	}
}

func TestInputFieldSubmits(t *testing.T) {
	f := NewInputField("t1")
	f.input.SetValue("Read the docs")

	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should emit a command")
	}

	msg := cmd()
	submitted, ok := msg.(SubtaskSubmittedMsg)
	if !ok {
		t.Fatalf("got %T, want SubtaskSubmittedMsg", msg)
	}
	if submitted.TaskID != "t1" || submitted.Name != "Read the docs" {
		t.Errorf("unexpected submission: %+v", submitted)
	}
}
