package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tessera-labs/trailhead/internal/config"
	"github.com/tessera-labs/trailhead/internal/extract"
	"github.com/tessera-labs/trailhead/internal/watch"
)

var (
	extractWatchDir string
	extractOutPath  string
)

var extractCmd = &cobra.Command{
	Use:   "extract [transcript.txt]",
	Short: "Extract candidate subtasks from a transcript",
	Long: `Run LLM extraction over a mentoring-session transcript and print the
candidate tasks as JSON.

Reads the transcript from the given file, or from stdin when the argument
is "-" or omitted.

With --watch, monitors a folder instead: every .txt file dropped in is
extracted once and its candidates written next to it as <name>.tasks.json.

Examples:
  trailhead extract standup.txt
  cat notes.txt | trailhead extract
  trailhead extract --watch ./transcripts`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractWatchDir, "watch", "", "Watch a folder for transcripts instead of reading one file")
	extractCmd.Flags().StringVar(&extractOutPath, "out", "", "Write candidates to a file instead of stdout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	completer, err := newCompleter(cfg)
	if err != nil {
		return fmt.Errorf("configuring LLM provider: %w", err)
	}
	extractor := extract.NewExtractor(completer, db)

	if extractWatchDir != "" {
		return runExtractWatch(db, extractor)
	}

	text, err := readTranscript(args)
	if err != nil {
		return err
	}

	phases, err := db.ListPhases()
	if err != nil {
		return fmt.Errorf("loading phases: %w", err)
	}
	tasks, err := db.ListTasks()
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}

	resp, err := extractor.Extract(cmd.Context(), extract.Request{
		TranscriptText: text,
		Phases:         phases,
		Tasks:          tasks,
		StudentID:      studentID,
	})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}

	if extractOutPath != "" {
		if err := os.WriteFile(extractOutPath, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", extractOutPath, err)
		}
	} else {
		fmt.Println(string(data))
	}

	fmt.Fprintf(os.Stderr, "%s %d candidate task(s)\n",
		color.GreenString("✓"), len(resp.ExtractedTasks))
	return nil
}

func runExtractWatch(db watch.RoadmapSource, extractor watch.Extractor) error {
	w, err := watch.New(extractWatchDir, studentID, db, extractor)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s for transcripts (ctrl+c to stop)\n", extractWatchDir)
	if err := w.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func readTranscript(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
