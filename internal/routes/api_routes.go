// internal/routes/api_routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/autoaidc6/school-planner/internal/handlers"
)

// RegisterAPIRoutes wires every route that requires a resolved session.
func RegisterAPIRoutes(api *gin.RouterGroup, h *handlers.Handlers) {
	apiGroup := api.Group("/api")
	{
		// Profile
		profile := apiGroup.Group("/profile")
		{
			profile.GET("", h.GetProfileHandler)
			profile.PUT("", h.UpdateProfileHandler)
			profile.PUT("/password", h.ChangePasswordHandler)
		}

		// Tasks
		tasks := apiGroup.Group("/tasks")
		{
			tasks.GET("", h.ListTasksHandler)
			tasks.POST("", h.SaveTaskHandler)
			tasks.DELETE("/:id", h.DeleteTaskHandler)
			tasks.POST("/:id/toggle", h.ToggleTaskHandler)
		}

		// Class schedule
		classes := apiGroup.Group("/classes")
		{
			classes.GET("", h.ListClassesHandler)
			classes.POST("", h.SaveClassHandler)
			classes.DELETE("/:id", h.DeleteClassHandler)
		}

		// Calendar union endpoint: accepts either variant.
		apiGroup.POST("/events", h.SaveEventHandler)

		// Subjects and the grade book
		subjects := apiGroup.Group("/subjects")
		{
			subjects.GET("", h.ListSubjectsHandler)
			subjects.POST("", h.SaveSubjectHandler)
			subjects.DELETE("/:id", h.DeleteSubjectHandler)
			subjects.GET("/summary", h.GradeSummaryHandler)
		}
		grades := apiGroup.Group("/grades")
		{
			grades.GET("", h.ListGradesHandler)
			grades.POST("", h.SaveGradeHandler)
			grades.DELETE("/:id", h.DeleteGradeHandler)
			grades.GET("/export", h.ExportGradesHandler)
		}

		// AI study plans
		apiGroup.POST("/study-plan", h.GenerateStudyPlanHandler)

		// Live collection feed
		apiGroup.GET("/feed/ws", h.FeedWSHandler)
	}
}
