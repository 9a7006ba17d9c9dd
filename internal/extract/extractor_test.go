package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tessera-labs/trailhead/internal/llm"
	"github.com/tessera-labs/trailhead/internal/store"
	"github.com/tessera-labs/trailhead/pkg/models"
)

// fakeCompleter records the request and returns a canned reply.
type fakeCompleter struct {
	lastReq llm.Request
	reply   string
	err     error
	calls   int
}

func (f *fakeCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.calls++
	f.lastReq = req
	return f.reply, f.err
}

// fakeContexts serves canned dedup context rows.
type fakeContexts struct {
	rows []store.SubtaskWithContext
	err  error
}

func (f *fakeContexts) ListSubtasksWithContext(studentID string) ([]store.SubtaskWithContext, error) {
	return f.rows, f.err
}

func exampleRequest() Request {
	return Request{
		TranscriptText: "Alice will finish setup by Friday",
		Phases:         []models.Phase{{ID: "p1", Name: "Intro", Sequence: 1}},
		Tasks:          []models.Task{{ID: "t1", PhaseID: "p1", Name: "Setup", Sequence: 1}},
		StudentID:      "student-1",
	}
}

func TestExtractWorkedExample(t *testing.T) {
	fc := &fakeCompleter{
		reply: `{"tasks":[{"description":"Finish setup","suggestedPhaseId":"p1","suggestedPhaseName":"Intro","suggestedTaskId":"t1","suggestedTaskName":"Setup","owner":"Alice","dueDate":"Friday","priority":"High","notes":""}]}`,
	}
	e := NewExtractor(fc, &fakeContexts{})

	resp, err := e.Extract(context.Background(), exampleRequest())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if !strings.Contains(fc.lastReq.System, "Phase: Intro (ID: p1)") {
		t.Error("prompt missing phase outline line")
	}
	if !strings.Contains(fc.lastReq.System, "- Task: Setup (ID: t1)") {
		t.Error("prompt missing task outline line")
	}
	if fc.lastReq.Prompt != "Alice will finish setup by Friday" {
		t.Errorf("transcript not forwarded as user prompt: %q", fc.lastReq.Prompt)
	}
	if fc.lastReq.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", fc.lastReq.Temperature)
	}
	if !fc.lastReq.JSONMode {
		t.Error("JSONMode not requested")
	}

	if len(resp.ExtractedTasks) != 1 {
		t.Fatalf("got %d candidates, want 1", len(resp.ExtractedTasks))
	}
	if resp.ExtractedTasks[0].SuggestedTaskID != "t1" {
		t.Errorf("SuggestedTaskID = %q, want t1", resp.ExtractedTasks[0].SuggestedTaskID)
	}
	if len(resp.PhaseOptions) != 1 || resp.PhaseOptions[0].ID != "p1" {
		t.Error("phase options not echoed back")
	}
	if len(resp.TaskOptions) != 1 || resp.TaskOptions[0].ID != "t1" {
		t.Error("task options not echoed back")
	}
}

func TestExtractRequiresTranscript(t *testing.T) {
	fc := &fakeCompleter{reply: `{"tasks":[]}`}
	e := NewExtractor(fc, &fakeContexts{})

	for _, text := range []string{"", "   \n\t"} {
		req := exampleRequest()
		req.TranscriptText = text
		if _, err := e.Extract(context.Background(), req); err == nil {
			t.Errorf("transcript %q: expected validation error", text)
		}
	}
	if fc.calls != 0 {
		t.Errorf("model called %d times for invalid requests, want 0", fc.calls)
	}
}

func TestExtractRequiresCredential(t *testing.T) {
	e := NewExtractor(nil, &fakeContexts{})
	_, err := e.Extract(context.Background(), exampleRequest())
	if err == nil || !strings.Contains(err.Error(), "credential") {
		t.Errorf("got %v, want credential error", err)
	}
}

func TestExtractParseFailureIncludesExcerpt(t *testing.T) {
	fc := &fakeCompleter{reply: "Sorry, I cannot produce JSON today."}
	e := NewExtractor(fc, &fakeContexts{})

	resp, err := e.Extract(context.Background(), exampleRequest())
	if err == nil {
		t.Fatal("expected parse error")
	}
	if resp != nil {
		t.Error("no partial task list on parse failure")
	}
	if !strings.Contains(err.Error(), "Sorry, I cannot produce JSON today.") {
		t.Errorf("error should carry the raw reply excerpt, got: %v", err)
	}
}

func TestExtractExcerptTruncated(t *testing.T) {
	long := strings.Repeat("x", 2000)
	fc := &fakeCompleter{reply: long}
	e := NewExtractor(fc, &fakeContexts{})

	_, err := e.Extract(context.Background(), exampleRequest())
	if err == nil {
		t.Fatal("expected parse error")
	}
	if len(err.Error()) > 600 {
		t.Errorf("error excerpt not truncated: %d chars", len(err.Error()))
	}
}

func TestExtractDedupContextInPrompt(t *testing.T) {
	fc := &fakeCompleter{reply: `{"tasks":[]}`}
	contexts := &fakeContexts{rows: []store.SubtaskWithContext{
		{
			Subtask:   models.Subtask{Name: "Install toolchain", Status: models.StatusDone},
			TaskName:  "Setup",
			PhaseName: "Intro",
		},
	}}
	e := NewExtractor(fc, contexts)

	if _, err := e.Extract(context.Background(), exampleRequest()); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(fc.lastReq.System, "Install toolchain") {
		t.Error("dedup block missing existing subtask name")
	}
	if !strings.Contains(fc.lastReq.System, "Do NOT propose duplicates") {
		t.Error("dedup instruction missing")
	}
}

func TestExtractDedupFailureNonFatal(t *testing.T) {
	fc := &fakeCompleter{reply: `{"tasks":[]}`}
	contexts := &fakeContexts{err: errors.New("store down")}
	e := NewExtractor(fc, contexts)

	resp, err := e.Extract(context.Background(), exampleRequest())
	if err != nil {
		t.Fatalf("dedup failure should be non-fatal, got: %v", err)
	}
	if resp == nil {
		t.Fatal("expected a response")
	}
	if strings.Contains(fc.lastReq.System, "Do NOT propose duplicates") {
		t.Error("dedup block should be empty when context load fails")
	}
}

func TestExtractModelErrorPropagates(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("rate limited")}
	e := NewExtractor(fc, &fakeContexts{})

	_, err := e.Extract(context.Background(), exampleRequest())
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("got %v, want wrapped model error", err)
	}
}
