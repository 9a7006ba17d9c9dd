package extract

import (
	"fmt"
	"strings"

	"github.com/tessera-labs/trailhead/internal/store"
	"github.com/tessera-labs/trailhead/pkg/models"
)

// buildRoadmapOutline renders the phase/task hierarchy as a flat textual
// outline for prompt grounding.
func buildRoadmapOutline(phases []models.Phase, tasks []models.Task) string {
	var b strings.Builder
	for _, phase := range phases {
		fmt.Fprintf(&b, "Phase: %s (ID: %s)\n", phase.Name, phase.ID)
		for _, task := range tasks {
			if task.PhaseID == phase.ID {
				fmt.Fprintf(&b, "- Task: %s (ID: %s)\n", task.Name, task.ID)
			}
		}
	}
	return b.String()
}

// buildDedupContext renders the student's existing subtasks as a
// "do not duplicate" block. An empty slice yields an empty block.
func buildDedupContext(existing []store.SubtaskWithContext) string {
	if len(existing) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("The student already has these subtasks. Do NOT propose duplicates of them:\n")
	for _, s := range existing {
		fmt.Fprintf(&b, "- [%s > %s] %s (status: %s)\n", s.PhaseName, s.TaskName, s.Name, s.Status)
	}
	return b.String()
}

// buildSystemPrompt composes the single system prompt: roadmap outline,
// dedup block, and the extraction rules.
func buildSystemPrompt(outline, dedup string) string {
	var b strings.Builder
	b.WriteString(`You are an assistant that extracts actionable task candidates from a mentoring-session transcript for a student roadmap.

Extract every concrete action item, deadline, owner commitment, deliverable, and follow-up mentioned in the transcript.

The student's roadmap is:

`)
	b.WriteString(outline)
	if dedup != "" {
		b.WriteString("\n")
		b.WriteString(dedup)
	}
	b.WriteString(`
Rules:
- Match each extracted item to the most relevant task in the roadmap above, using the phase and task IDs exactly as given.
- priority must be one of: High, Medium, Low.
- dueDate is the deadline as stated in the transcript, or empty if none was given.
- owner is the person who committed to the item, or empty.
- Respond with a single JSON object of the form {"tasks": [...]} where each element has the keys: description, suggestedPhaseId, suggestedPhaseName, suggestedTaskId, suggestedTaskName, owner, dueDate, priority, notes.
- Output the JSON object only. No explanation, no markdown, no extra prose.`)
	return b.String()
}
