package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessera-labs/trailhead/internal/config"
	"github.com/tessera-labs/trailhead/internal/roadmap"
	"github.com/tessera-labs/trailhead/internal/viewed"
	"github.com/tessera-labs/trailhead/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON HTTP API server",
	Long: `Serve the roadmap tracker over HTTP.

Endpoints:
  GET   /api/roadmap/:studentID      composed phase/task/subtask tree
  POST  /api/subtasks                create a named subtask
  POST  /api/subtasks/inline         quick-add a "New Subtask"
  PATCH /api/subtasks/:id/status     change a subtask status
  POST  /api/tasks/:id/viewed        mark a task opened
  POST  /api/extract                 extract candidate tasks from a transcript`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	extractor := newExtractor(cfg, db)

	trackerDir := viewed.DefaultDir()
	trackers := func(studentID string) roadmap.ViewTracker {
		return viewed.NewTracker(trackerDir, studentID)
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	srv := web.NewServer(db, extractor, trackers)
	fmt.Printf("Listening on %s (db: %s)\n", addr, db.Path())
	return srv.Run(addr)
}
