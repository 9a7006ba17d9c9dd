package models

// Phase is the top level of the roadmap hierarchy. Phases are read-only
// from the tracker's perspective and ordered by Sequence.
type Phase struct {
	// ID is the unique identifier.
	ID string `json:"id"`
	// Name is the phase title.
	Name string `json:"name"`
	// Sequence orders phases in the roadmap.
	Sequence int `json:"sequence"`
}

// Task is the middle level of the roadmap hierarchy. A task belongs to
// exactly one phase and owns zero or more subtasks per student.
type Task struct {
	// ID is the unique identifier.
	ID string `json:"id"`
	// PhaseID is the owning phase.
	PhaseID string `json:"phase_id"`
	// Name is the task title.
	Name string `json:"name"`
	// Sequence orders tasks within a phase.
	Sequence int `json:"sequence"`
	// SubtaskSuggestion is an optional hint shown when creating subtasks.
	SubtaskSuggestion string `json:"subtask_suggestion,omitempty"`
}
