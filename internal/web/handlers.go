package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tessera-labs/trailhead/internal/extract"
	"github.com/tessera-labs/trailhead/internal/roadmap"
	"github.com/tessera-labs/trailhead/internal/store"
	"github.com/tessera-labs/trailhead/pkg/models"
)

// maxTranscriptSize bounds transcript payloads.
const maxTranscriptSize = 1 << 20 // 1MB

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleRoadmap returns the composed phase/task/subtask tree for a student.
func (s *Server) handleRoadmap(c *gin.Context) {
	studentID := c.Param("studentID")

	p := roadmap.NewPresenter(s.store, s.trackers(studentID), studentID)
	if err := p.Refresh(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load roadmap"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"studentId": studentID,
		"phases":    p.Tree(),
	})
}

type createSubtaskRequest struct {
	TaskID    string `json:"taskId"`
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
}

// handleCreateSubtask is the named-create flow. Validation failures come
// back as 400 with the message the UI shows inline.
func (s *Server) handleCreateSubtask(c *gin.Context) {
	var req createSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	seq, err := s.store.NextSequence(req.TaskID, req.StudentID)
	if err != nil {
		log.Printf("web: next sequence: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create subtask"})
		return
	}

	subtask, err := s.store.CreateSubtask(req.TaskID, req.StudentID, req.Name, seq, false)
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		log.Printf("web: create subtask: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create subtask"})
		return
	}

	c.JSON(http.StatusCreated, subtask)
}

type createInlineSubtaskRequest struct {
	TaskID    string `json:"taskId"`
	StudentID string `json:"studentId"`
}

// handleCreateInlineSubtask creates a "New Subtask" record with no user
// text entry, appended after the current maximum sequence.
func (s *Server) handleCreateInlineSubtask(c *gin.Context) {
	var req createInlineSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	seq, err := s.store.NextSequence(req.TaskID, req.StudentID)
	if err != nil {
		log.Printf("web: next sequence: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create subtask"})
		return
	}

	subtask, err := s.store.CreateSubtask(req.TaskID, req.StudentID, roadmap.InlineSubtaskName, seq, false)
	if err != nil {
		log.Printf("web: create inline subtask: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create subtask"})
		return
	}

	c.JSON(http.StatusCreated, subtask)
}

type updateStatusRequest struct {
	StudentID string `json:"studentId"`
	Status    string `json:"status"`
}

// handleUpdateStatus changes a subtask's status. The status set is closed;
// anything outside the five values is a 400.
func (s *Server) handleUpdateStatus(c *gin.Context) {
	subtaskID := c.Param("id")

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	status := models.SubtaskStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	if err := s.store.UpdateSubtaskStatus(subtaskID, req.StudentID, status); err != nil {
		log.Printf("web: update status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": subtaskID, "status": string(status)})
}

type markViewedRequest struct {
	StudentID string `json:"studentId"`
}

// handleMarkViewed records that the student opened a task.
func (s *Server) handleMarkViewed(c *gin.Context) {
	taskID := c.Param("id")

	var req markViewedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := s.store.GetTask(taskID)
	if err != nil {
		log.Printf("web: get task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark task viewed"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown task"})
		return
	}

	if err := s.trackers(req.StudentID).MarkViewed(taskID); err != nil {
		log.Printf("web: mark viewed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark task viewed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"taskId": taskID, "viewed": true})
}

// handleExtract runs transcript extraction. Failures, including validation,
// come back as a 500 with the original error text.
func (s *Server) handleExtract(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxTranscriptSize)

	var req extract.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to process transcript",
			"details": "invalid request body",
		})
		return
	}

	resp, err := s.extractor.Extract(c.Request.Context(), req)
	if err != nil {
		log.Printf("web: extract: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to process transcript",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
