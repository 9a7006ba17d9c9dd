package models

// Priority levels for extracted task candidates.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// ExtractedTask is a candidate subtask proposed by transcript extraction.
// Candidates are returned for client-side review; nothing is inserted
// into the store automatically.
type ExtractedTask struct {
	// Description is the action item text.
	Description string `json:"description"`
	// SuggestedPhaseID and SuggestedPhaseName locate the candidate in the roadmap.
	SuggestedPhaseID   string `json:"suggestedPhaseId"`
	SuggestedPhaseName string `json:"suggestedPhaseName"`
	// SuggestedTaskID and SuggestedTaskName identify the parent task match.
	SuggestedTaskID   string `json:"suggestedTaskId"`
	SuggestedTaskName string `json:"suggestedTaskName"`
	// Owner is who committed to the item, if stated in the transcript.
	Owner string `json:"owner,omitempty"`
	// DueDate is the deadline, if stated.
	DueDate string `json:"dueDate,omitempty"`
	// Priority is one of High, Medium, Low.
	Priority string `json:"priority,omitempty"`
	// Notes carries any extra context from the transcript.
	Notes string `json:"notes,omitempty"`
}
