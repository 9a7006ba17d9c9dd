// Package watch runs transcript extraction over a drop folder. New .txt
// files are extracted once and the candidates written next to them as
// <name>.tasks.json.
package watch

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/tessera-labs/trailhead/internal/extract"
	"github.com/tessera-labs/trailhead/pkg/models"
)

// RoadmapSource provides the phase and task options for each extraction.
type RoadmapSource interface {
	ListPhases() ([]models.Phase, error)
	ListTasks() ([]models.Task, error)
}

// Extractor runs the transcript extraction pipeline.
type Extractor interface {
	Extract(ctx context.Context, req extract.Request) (*extract.Response, error)
}

// Watcher processes transcript files dropped into a directory.
type Watcher struct {
	dir       string
	studentID string
	source    RoadmapSource
	extractor Extractor

	mu        sync.Mutex
	processed map[string]bool

	fsw  *fsnotify.Watcher
	done chan struct{}
}

// New creates a watcher for the given drop folder.
func New(dir, studentID string, source RoadmapSource, extractor Extractor) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	w := &Watcher{
		dir:       dir,
		studentID: studentID,
		source:    source,
		extractor: extractor,
		processed: make(map[string]bool),
		done:      make(chan struct{}),
	}
	return w, nil
}

// Run sweeps existing transcripts, then blocks processing new ones until the
// context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := w.Sweep(ctx); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsw = fsw
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == 0 && event.Op&fsnotify.Write == 0 {
				continue
			}
			if _, err := w.processFile(ctx, event.Name); err != nil {
				log.Printf("watch: %s: %v", filepath.Base(event.Name), err)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		}
	}
}

// Close stops a running watcher.
func (w *Watcher) Close() {
	close(w.done)
}

// Sweep processes transcripts already present in the folder. Returns the
// number of files extracted.
func (w *Watcher) Sweep(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		did, err := w.processFile(ctx, path)
		if err != nil {
			log.Printf("watch: %s: %v", entry.Name(), err)
			continue
		}
		if did {
			count++
		}
	}
	return count, nil
}

// processFile extracts one transcript, reporting whether it did any work.
// Non-transcript files and files already handled are skipped silently. A
// failed extraction leaves the file eligible for retry on the next write.
func (w *Watcher) processFile(ctx context.Context, path string) (bool, error) {
	if !strings.HasSuffix(path, ".txt") {
		return false, nil
	}

	w.mu.Lock()
	if w.processed[path] {
		w.mu.Unlock()
		return false, nil
	}
	outPath := OutputPath(path)
	if _, err := os.Stat(outPath); err == nil {
		w.processed[path] = true
		w.mu.Unlock()
		return false, nil
	}
	w.mu.Unlock()

	text, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	phases, err := w.source.ListPhases()
	if err != nil {
		return false, err
	}
	tasks, err := w.source.ListTasks()
	if err != nil {
		return false, err
	}

	resp, err := w.extractor.Extract(ctx, extract.Request{
		TranscriptText: string(text),
		Phases:         phases,
		Tasks:          tasks,
		StudentID:      w.studentID,
	})
	if err != nil {
		return false, err
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return false, err
	}

	w.mu.Lock()
	w.processed[path] = true
	w.mu.Unlock()

	log.Printf("watch: %s: %d candidate tasks", filepath.Base(path), len(resp.ExtractedTasks))
	return true, nil
}

// OutputPath returns where the candidates for a transcript are written.
func OutputPath(transcriptPath string) string {
	return strings.TrimSuffix(transcriptPath, ".txt") + ".tasks.json"
}
