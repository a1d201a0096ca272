// internal/handlers/class_handler.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autoaidc6/school-planner/models"
)

func (h *Handlers) ListClassesHandler(c *gin.Context) {
	classes, err := h.svc.Classes(c.Request.Context(), h.session(c))
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

func (h *Handlers) SaveClassHandler(c *gin.Context) {
	var class models.ClassEvent
	if err := c.ShouldBindJSON(&class); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}
	if err := h.svc.SaveClass(c.Request.Context(), h.session(c), class); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Class saved"})
}

func (h *Handlers) DeleteClassHandler(c *gin.Context) {
	if err := h.svc.DeleteClass(c.Request.Context(), h.session(c), c.Param("id")); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Class deleted"})
}

// SaveEventHandler accepts the tagged calendar union so the week view can
// submit either variant through one endpoint.
func (h *Handlers) SaveEventHandler(c *gin.Context) {
	var ev models.PlannerEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}
	if err := h.svc.SaveEvent(c.Request.Context(), h.session(c), ev); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event saved"})
}
