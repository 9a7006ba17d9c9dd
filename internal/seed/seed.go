// Package seed loads a roadmap definition from YAML and writes it to the
// store. Seeding is idempotent: re-running with the same file updates names
// and ordering in place.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tessera-labs/trailhead/pkg/models"
)

// Store is the subset of the persistence layer seeding needs.
type Store interface {
	UpsertPhase(phase *models.Phase) error
	UpsertTask(task *models.Task) error
}

// File is the on-disk roadmap format.
type File struct {
	Phases []PhaseSpec `yaml:"phases"`
}

// PhaseSpec describes one phase and its tasks.
type PhaseSpec struct {
	ID    string     `yaml:"id"`
	Name  string     `yaml:"name"`
	Tasks []TaskSpec `yaml:"tasks"`
}

// TaskSpec describes one task within a phase.
type TaskSpec struct {
	ID                string `yaml:"id"`
	Name              string `yaml:"name"`
	SubtaskSuggestion string `yaml:"subtask_suggestion"`
}

// Result summarizes what a seed run wrote.
type Result struct {
	Phases int
	Tasks  int
}

// Load parses a roadmap YAML file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roadmap file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing roadmap file: %w", err)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	if len(f.Phases) == 0 {
		return fmt.Errorf("roadmap file has no phases")
	}

	seen := make(map[string]bool)
	for i, p := range f.Phases {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("phase %d: id and name are required", i+1)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate phase id %q", p.ID)
		}
		seen[p.ID] = true

		for j, t := range p.Tasks {
			if t.ID == "" || t.Name == "" {
				return fmt.Errorf("phase %q task %d: id and name are required", p.ID, j+1)
			}
			if seen[t.ID] {
				return fmt.Errorf("duplicate task id %q", t.ID)
			}
			seen[t.ID] = true
		}
	}
	return nil
}

// Apply writes the roadmap to the store. Sequence numbers follow file order,
// starting at 1 within each level.
func Apply(s Store, f *File) (*Result, error) {
	res := &Result{}

	for pi, p := range f.Phases {
		phase := &models.Phase{ID: p.ID, Name: p.Name, Sequence: pi + 1}
		if err := s.UpsertPhase(phase); err != nil {
			return nil, fmt.Errorf("seeding phase %q: %w", p.ID, err)
		}
		res.Phases++

		for ti, t := range p.Tasks {
			task := &models.Task{
				ID:                t.ID,
				PhaseID:           p.ID,
				Name:              t.Name,
				Sequence:          ti + 1,
				SubtaskSuggestion: t.SubtaskSuggestion,
			}
			if err := s.UpsertTask(task); err != nil {
				return nil, fmt.Errorf("seeding task %q: %w", t.ID, err)
			}
			res.Tasks++
		}
	}

	return res, nil
}
