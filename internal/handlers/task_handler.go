// internal/handlers/task_handler.go

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autoaidc6/school-planner/internal/planner"
	"github.com/autoaidc6/school-planner/models"
)

// respondPlannerError translates router errors into HTTP status codes.
func respondPlannerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, planner.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, planner.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, planner.ErrRemoteUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage operation failed"})
	}
}

func (h *Handlers) ListTasksHandler(c *gin.Context) {
	tasks, err := h.svc.Tasks(c.Request.Context(), h.session(c))
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// SaveTaskHandler covers both creation and edits: records without an id are
// fresh, everything else is routed by the id the caller sends back.
func (h *Handlers) SaveTaskHandler(c *gin.Context) {
	var task models.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}
	if err := h.svc.SaveTask(c.Request.Context(), h.session(c), task); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task saved"})
}

func (h *Handlers) DeleteTaskHandler(c *gin.Context) {
	if err := h.svc.DeleteTask(c.Request.Context(), h.session(c), c.Param("id")); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// ToggleTaskHandler flips completion for a single task.
func (h *Handlers) ToggleTaskHandler(c *gin.Context) {
	if err := h.svc.ToggleTask(c.Request.Context(), h.session(c), c.Param("id")); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task toggled"})
}
