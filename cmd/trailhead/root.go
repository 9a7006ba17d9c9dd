package main

import (
	"os"

	"github.com/spf13/cobra"
)

var studentID string

var rootCmd = &cobra.Command{
	Use:   "trailhead",
	Short: "Student progress tracker",
	Long: `Trailhead tracks a student's progress through a phased roadmap of
tasks and subtasks.

With no arguments, opens the roadmap TUI for the selected student. Expand
phases and tasks, add subtasks, and move them through their statuses.

Core capabilities:
- Phased roadmap with per-student subtasks and statuses
- Transcript extraction: an LLM proposes subtasks from meeting notes
- JSON HTTP API for web front ends
- Watch mode that extracts every transcript dropped into a folder`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRoadmap(cmd, args)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&studentID, "student", "default", "Student whose roadmap to operate on")

	rootCmd.AddCommand(roadmapCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
