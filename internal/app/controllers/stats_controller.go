package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derin/classpad/internal/app/models/dto"
	"github.com/derin/classpad/internal/app/services"
	"github.com/derin/classpad/internal/middleware"
)

// StatsController serves the dashboard aggregation endpoints. These never
// fail: the stats service degrades to zeros and empty lists on store
// trouble, so each handler has exactly one response shape.
type StatsController struct {
	statsService *services.StatsService
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService *services.StatsService) *StatsController {
	return &StatsController{statsService: statsService}
}

// GetClassroomStats handles GET /classrooms/:id/stats.
func (c *StatsController) GetClassroomStats(ctx *gin.Context) {
	stats := c.statsService.GetClassroomStats(ctx.Request.Context(), ctx.Param("id"))
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats, ""))
}

// GetMyPendingAssignments handles GET /students/me/pending-assignments.
func (c *StatsController) GetMyPendingAssignments(ctx *gin.Context) {
	studentID := ctx.GetString(middleware.ContextUserID)
	pending := c.statsService.GetStudentPendingAssignments(ctx.Request.Context(), studentID)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(pending, ""))
}

// GetMyDashboardStats handles GET /students/me/dashboard.
func (c *StatsController) GetMyDashboardStats(ctx *gin.Context) {
	studentID := ctx.GetString(middleware.ContextUserID)
	stats := c.statsService.GetStudentDashboardStats(ctx.Request.Context(), studentID)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats, ""))
}

// ListMyStudents handles GET /teachers/me/students.
func (c *StatsController) ListMyStudents(ctx *gin.Context) {
	teacherID := ctx.GetString(middleware.ContextUserID)
	roster := c.statsService.ListTeacherStudents(ctx.Request.Context(), teacherID)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(roster, ""))
}
