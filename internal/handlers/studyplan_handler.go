// internal/handlers/studyplan_handler.go

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"

	"github.com/autoaidc6/school-planner/config"
)

const studyPlanUnavailable = "Sorry, I couldn't generate a study plan right now. Please try again later."

// GenerateStudyPlanHandler turns a task into a checklist of sub-tasks and
// appends it to the task description, prefixed so the plan is recognizable
// among the student's own notes.
func (h *Handlers) GenerateStudyPlanHandler(c *gin.Context) {
	var payload struct {
		TaskID  string `json:"taskId" binding:"required"`
		Title   string `json:"title" binding:"required"`
		Subject string `json:"subject" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}

	plan := generateStudyPlan(c.Request.Context(), payload.Title, payload.Subject)

	if err := h.svc.AppendToTaskDescription(c.Request.Context(), h.session(c), payload.TaskID, "AI Study Plan:\n"+plan); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

func generateStudyPlan(ctx context.Context, title, subject string) string {
	if config.GeminiClient == nil {
		return "API Key not configured. Please set the GEMINI_API_KEY environment variable."
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(`You are a helpful study assistant for a student.
A student has the following task: %q for their %q class.
Break this down into a simple, actionable checklist of sub-tasks for them to follow.
Provide the response as a bulleted list. For example:
- Sub-task 1
- Sub-task 2
- Sub-task 3`, title, subject)

	resp, err := config.GeminiClient.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		slog.Error("Study plan generation failed", "error", err)
		return studyPlanUnavailable
	}

	var plan string
	if len(resp.Candidates) > 0 && len(resp.Candidates[0].Content.Parts) > 0 {
		if textPart, ok := resp.Candidates[0].Content.Parts[0].(genai.Text); ok {
			plan = string(textPart)
		}
	}
	if plan == "" {
		return studyPlanUnavailable
	}
	return plan
}
