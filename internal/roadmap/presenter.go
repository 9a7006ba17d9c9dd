// Package roadmap composes the phase/task/subtask tree for one student and
// tracks its expand/collapse state. It routes user actions to the store and
// the viewed-task tracker; rendering is left to the caller.
package roadmap

import (
	"log"
	"sort"

	"github.com/tessera-labs/trailhead/pkg/models"
)

// InlineSubtaskName is the name given to subtasks created through the
// no-text-entry inline flow.
const InlineSubtaskName = "New Subtask"

// Store is the subset of store operations the presenter needs.
type Store interface {
	ListPhases() ([]models.Phase, error)
	ListTasks() ([]models.Task, error)
	ListSubtasksByStudent(studentID string) ([]models.Subtask, error)
	CreateSubtask(taskID, studentID, name string, sequence int, aiGenerated bool) (*models.Subtask, error)
	UpdateSubtaskStatus(subtaskID, studentID string, status models.SubtaskStatus) error
	NextSequence(taskID, studentID string) (int, error)
}

// ViewTracker is the subset of viewed-state operations the presenter needs.
type ViewTracker interface {
	MarkViewed(taskID string) error
	IsNewAISubtask(taskID string, subtasks []models.Subtask) bool
}

// PhaseNode is a phase with its composed children and expand state.
type PhaseNode struct {
	models.Phase
	Expanded bool       `json:"expanded"`
	Tasks    []TaskNode `json:"tasks"`
}

// TaskNode is a task with its subtasks, expand state, and AI badge.
type TaskNode struct {
	models.Task
	Expanded     bool             `json:"expanded"`
	Active       bool             `json:"active"`
	NewAISubtask bool             `json:"new_ai_subtask"`
	Subtasks     []models.Subtask `json:"subtasks"`
}

// Presenter holds the tree state for a single student.
type Presenter struct {
	store     Store
	viewed    ViewTracker
	studentID string

	phases   []models.Phase
	tasks    []models.Task
	subtasks map[string][]models.Subtask // keyed by task ID

	phaseExpanded map[string]bool
	taskExpanded  map[string]bool
	activeTaskID  string
	loaded        bool
}

// NewPresenter creates a presenter for the given student.
func NewPresenter(s Store, v ViewTracker, studentID string) *Presenter {
	return &Presenter{
		store:         s,
		viewed:        v,
		studentID:     studentID,
		subtasks:      make(map[string][]models.Subtask),
		phaseExpanded: make(map[string]bool),
		taskExpanded:  make(map[string]bool),
	}
}

// Refresh re-fetches phases, tasks, and the student's subtasks. On the first
// load the first phase defaults to expanded; expand state survives later
// refreshes. Any fetch error is logged and leaves the current tree in place.
func (p *Presenter) Refresh() error {
	phases, err := p.store.ListPhases()
	if err != nil {
		log.Printf("roadmap: list phases: %v", err)
		return err
	}
	tasks, err := p.store.ListTasks()
	if err != nil {
		log.Printf("roadmap: list tasks: %v", err)
		return err
	}
	subtasks, err := p.store.ListSubtasksByStudent(p.studentID)
	if err != nil {
		log.Printf("roadmap: list subtasks: %v", err)
		return err
	}

	sort.SliceStable(phases, func(i, j int) bool { return phases[i].Sequence < phases[j].Sequence })

	p.phases = phases
	p.tasks = tasks
	p.subtasks = make(map[string][]models.Subtask)
	for _, s := range subtasks {
		p.subtasks[s.TaskID] = append(p.subtasks[s.TaskID], s)
	}
	for _, group := range p.subtasks {
		sort.SliceStable(group, func(i, j int) bool { return group[i].Sequence < group[j].Sequence })
	}

	if !p.loaded && len(p.phases) > 0 {
		p.phaseExpanded[p.phases[0].ID] = true
		p.loaded = true
	}
	return nil
}

// Tree returns the composed roadmap for rendering.
func (p *Presenter) Tree() []PhaseNode {
	tasksByPhase := make(map[string][]models.Task)
	for _, t := range p.tasks {
		tasksByPhase[t.PhaseID] = append(tasksByPhase[t.PhaseID], t)
	}
	for _, group := range tasksByPhase {
		sort.SliceStable(group, func(i, j int) bool { return group[i].Sequence < group[j].Sequence })
	}

	nodes := make([]PhaseNode, 0, len(p.phases))
	for _, phase := range p.phases {
		node := PhaseNode{
			Phase:    phase,
			Expanded: p.phaseExpanded[phase.ID],
		}
		for _, task := range tasksByPhase[phase.ID] {
			subs := p.subtasks[task.ID]
			node.Tasks = append(node.Tasks, TaskNode{
				Task:         task,
				Expanded:     p.taskExpanded[task.ID],
				Active:       task.ID == p.activeTaskID,
				NewAISubtask: p.viewed.IsNewAISubtask(task.ID, subs),
				Subtasks:     subs,
			})
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// TogglePhase flips a phase between collapsed and expanded and clears the
// active task selection.
func (p *Presenter) TogglePhase(phaseID string) {
	p.phaseExpanded[phaseID] = !p.phaseExpanded[phaseID]
	p.activeTaskID = ""
}

// ToggleTask flips a task between collapsed and expanded. Expanding a task
// marks it viewed and makes it the active task.
func (p *Presenter) ToggleTask(taskID string) {
	expanded := !p.taskExpanded[taskID]
	p.taskExpanded[taskID] = expanded
	if expanded {
		if err := p.viewed.MarkViewed(taskID); err != nil {
			log.Printf("roadmap: mark viewed %s: %v", taskID, err)
		}
		p.activeTaskID = taskID
	}
}

// ActiveTaskID returns the currently selected task, if any.
func (p *Presenter) ActiveTaskID() string {
	return p.activeTaskID
}

// CreateSubtask creates a named subtask under the task and refreshes the
// tree. The returned error carries the validation or store failure for an
// inline message; the tree is untouched on failure.
func (p *Presenter) CreateSubtask(taskID, name string) error {
	seq, err := p.store.NextSequence(taskID, p.studentID)
	if err != nil {
		log.Printf("roadmap: next sequence for %s: %v", taskID, err)
		return err
	}
	if _, err := p.store.CreateSubtask(taskID, p.studentID, name, seq, false); err != nil {
		log.Printf("roadmap: create subtask under %s: %v", taskID, err)
		return err
	}
	return p.Refresh()
}

// CreateInlineSubtask creates a "New Subtask" record with no user text
// entry, appended after the current maximum sequence.
func (p *Presenter) CreateInlineSubtask(taskID string) error {
	return p.CreateSubtask(taskID, InlineSubtaskName)
}

// ChangeStatus updates a subtask's status then refreshes. A store failure
// is logged and the tree simply does not refresh; the caller sees no error.
func (p *Presenter) ChangeStatus(subtaskID string, status models.SubtaskStatus) {
	if err := p.store.UpdateSubtaskStatus(subtaskID, p.studentID, status); err != nil {
		log.Printf("roadmap: change status of %s: %v", subtaskID, err)
		return
	}
	if err := p.Refresh(); err != nil {
		log.Printf("roadmap: refresh after status change: %v", err)
	}
}
