// Package web exposes the roadmap tracker over a JSON HTTP API.
package web

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tessera-labs/trailhead/internal/extract"
	"github.com/tessera-labs/trailhead/internal/roadmap"
	"github.com/tessera-labs/trailhead/pkg/models"
)

// Store is the persistence surface the handlers need.
type Store interface {
	roadmap.Store
	GetTask(id string) (*models.Task, error)
}

// Extractor runs the transcript extraction pipeline.
type Extractor interface {
	Extract(ctx context.Context, req extract.Request) (*extract.Response, error)
}

// TrackerFactory returns the viewed-task tracker for a student.
type TrackerFactory func(studentID string) roadmap.ViewTracker

// Server is the Trailhead web server.
type Server struct {
	store     Store
	extractor Extractor
	trackers  TrackerFactory
	router    *gin.Engine
}

// NewServer creates a web server with all routes registered.
func NewServer(store Store, extractor Extractor, trackers TrackerFactory) *Server {
	router := gin.Default()

	s := &Server{
		store:     store,
		extractor: extractor,
		trackers:  trackers,
		router:    router,
	}

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.GET("/roadmap/:studentID", s.handleRoadmap)
		api.POST("/subtasks", s.handleCreateSubtask)
		api.POST("/subtasks/inline", s.handleCreateInlineSubtask)
		api.PATCH("/subtasks/:id/status", s.handleUpdateStatus)
		api.POST("/tasks/:id/viewed", s.handleMarkViewed)
		api.POST("/extract", s.handleExtract)
	}

	return s
}

// Run starts the web server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
