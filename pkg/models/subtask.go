package models

// SubtaskStatus represents the lifecycle state of a subtask.
type SubtaskStatus string

const (
	// StatusYetToStart indicates the subtask has not been started.
	StatusYetToStart SubtaskStatus = "yet_to_start"
	// StatusInProgress indicates the subtask is being worked on.
	StatusInProgress SubtaskStatus = "in_progress"
	// StatusDone indicates the subtask is complete.
	StatusDone SubtaskStatus = "done"
	// StatusBlocked indicates the subtask cannot proceed.
	StatusBlocked SubtaskStatus = "blocked"
	// StatusNotApplicable indicates the subtask does not apply to this student.
	StatusNotApplicable SubtaskStatus = "not_applicable"
)

// AllStatuses lists every valid subtask status, in menu order.
// The set is closed: status menus must offer exactly these five values.
var AllStatuses = []SubtaskStatus{
	StatusYetToStart,
	StatusInProgress,
	StatusDone,
	StatusBlocked,
	StatusNotApplicable,
}

// Valid returns true if the status is a known value.
func (s SubtaskStatus) Valid() bool {
	switch s {
	case StatusYetToStart, StatusInProgress, StatusDone, StatusBlocked, StatusNotApplicable:
		return true
	default:
		return false
	}
}

// StatusDisplay holds the presentation attributes for a subtask status.
type StatusDisplay struct {
	// Icon is the single-cell marker shown next to the subtask.
	Icon string
	// Label is the human-readable status name.
	Label string
	// Color is the terminal color code used when rendering the icon.
	Color string
}

// statusDisplays maps each status to its display attributes.
var statusDisplays = map[SubtaskStatus]StatusDisplay{
	StatusYetToStart:    {Icon: "○", Label: "Yet to Start", Color: "244"},
	StatusInProgress:    {Icon: "◐", Label: "In Progress", Color: "34"},
	StatusDone:          {Icon: "●", Label: "Done", Color: "28"},
	StatusBlocked:       {Icon: "✗", Label: "Blocked", Color: "196"},
	StatusNotApplicable: {Icon: "–", Label: "Not Applicable", Color: "240"},
}

// Display returns the presentation attributes for the status.
// Unknown statuses fall back to the yet_to_start display.
func (s SubtaskStatus) Display() StatusDisplay {
	if d, ok := statusDisplays[s]; ok {
		return d
	}
	return statusDisplays[StatusYetToStart]
}

// Subtask represents a single unit of work under a task, owned by one student.
type Subtask struct {
	// ID is the unique identifier, assigned by the store on creation.
	ID string `json:"id"`
	// TaskID is the parent task.
	TaskID string `json:"task_id"`
	// StudentID is the owning student.
	StudentID string `json:"student_id"`
	// Name is the subtask description.
	Name string `json:"name"`
	// Status is the current lifecycle state.
	Status SubtaskStatus `json:"status"`
	// Sequence orders subtasks within a task. Advisory only: new items are
	// appended after the current maximum, no gap or uniqueness guarantees.
	Sequence int `json:"sequence,omitempty"`
	// IsAIGenerated marks subtasks produced by transcript extraction.
	IsAIGenerated bool `json:"is_ai_generated,omitempty"`
}
