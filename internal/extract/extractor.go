// Package extract turns a session transcript into candidate subtasks by
// forwarding a structured prompt to a completion provider. Candidates are
// returned for review; nothing is written to the store.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/tessera-labs/trailhead/internal/llm"
	"github.com/tessera-labs/trailhead/internal/store"
	"github.com/tessera-labs/trailhead/pkg/models"
)

// extractionTemperature is fixed low so runs stay close to deterministic.
const extractionTemperature = 0.3

// rawExcerptLen bounds the non-JSON reply excerpt included in parse errors.
const rawExcerptLen = 300

// ContextStore loads the existing subtasks used for the dedup block.
type ContextStore interface {
	ListSubtasksWithContext(studentID string) ([]store.SubtaskWithContext, error)
}

// Request is one extraction call.
type Request struct {
	TranscriptText string         `json:"transcriptText"`
	Phases         []models.Phase `json:"phases"`
	Tasks          []models.Task  `json:"tasks"`
	StudentID      string         `json:"studentId"`
}

// Response carries the candidates plus the option lists the caller supplied.
type Response struct {
	ExtractedTasks []models.ExtractedTask `json:"extractedTasks"`
	PhaseOptions   []models.Phase         `json:"phaseOptions"`
	TaskOptions    []models.Task          `json:"taskOptions"`
}

// Extractor runs the single-pass extraction pipeline.
type Extractor struct {
	completer llm.Completer
	contexts  ContextStore
}

// NewExtractor creates an Extractor. contexts may be nil, in which case the
// dedup block is always empty.
func NewExtractor(completer llm.Completer, contexts ContextStore) *Extractor {
	return &Extractor{completer: completer, contexts: contexts}
}

// Extract validates the request, composes the prompt, invokes the model
// once, and parses its JSON reply. No retries, no partial recovery.
func (e *Extractor) Extract(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.TranscriptText) == "" {
		return nil, fmt.Errorf("transcript text is required")
	}
	if e.completer == nil {
		return nil, fmt.Errorf("model credential is not configured")
	}

	// Dedup context failures are non-fatal: extraction proceeds without it.
	var existing []store.SubtaskWithContext
	if e.contexts != nil {
		var err error
		existing, err = e.contexts.ListSubtasksWithContext(req.StudentID)
		if err != nil {
			log.Printf("extract: load dedup context for %s: %v", req.StudentID, err)
			existing = nil
		}
	}

	outline := buildRoadmapOutline(req.Phases, req.Tasks)
	system := buildSystemPrompt(outline, buildDedupContext(existing))

	reply, err := e.completer.Complete(ctx, llm.Request{
		System:      system,
		Prompt:      req.TranscriptText,
		Temperature: extractionTemperature,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("model call: %w", err)
	}

	var parsed struct {
		Tasks []models.ExtractedTask `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(reply), &parsed); err != nil {
		return nil, fmt.Errorf("parse model reply: %w (raw reply: %s)", err, excerpt(reply))
	}

	return &Response{
		ExtractedTasks: parsed.Tasks,
		PhaseOptions:   req.Phases,
		TaskOptions:    req.Tasks,
	}, nil
}

// excerpt truncates a reply for inclusion in error messages.
func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > rawExcerptLen {
		return s[:rawExcerptLen] + "..."
	}
	return s
}
