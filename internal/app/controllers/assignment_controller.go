package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derin/classpad/internal/app/models/dto"
	"github.com/derin/classpad/internal/app/services"
	"github.com/derin/classpad/internal/middleware"
)

// AssignmentController handles assignment and submission endpoints
type AssignmentController struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService *services.AssignmentService) *AssignmentController {
	return &AssignmentController{assignmentService: assignmentService}
}

// CreateAssignment handles POST /classrooms/:id/assignments for the
// owning teacher.
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	teacherID := ctx.GetString(middleware.ContextUserID)
	assignment, err := c.assignmentService.CreateAssignment(ctx.Request.Context(), teacherID, ctx.Param("id"), req.Draft())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(assignment, "Assignment created"))
}

// ListClassroomAssignments handles GET /classrooms/:id/assignments.
func (c *AssignmentController) ListClassroomAssignments(ctx *gin.Context) {
	assignments := c.assignmentService.ListClassroomAssignments(ctx.Request.Context(), ctx.Param("id"))
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignments, ""))
}

// GetAssignment handles GET /assignments/:id.
func (c *AssignmentController) GetAssignment(ctx *gin.Context) {
	assignment, err := c.assignmentService.GetAssignment(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, ""))
}

// UpdateAssignment handles PATCH /assignments/:id for the authoring
// teacher.
func (c *AssignmentController) UpdateAssignment(ctx *gin.Context) {
	var req dto.UpdateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	teacherID := ctx.GetString(middleware.ContextUserID)
	assignment, err := c.assignmentService.UpdateAssignment(ctx.Request.Context(), teacherID, ctx.Param("id"), req.Update())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "Assignment updated"))
}

// SubmitAssignment handles POST /assignments/:id/submissions for
// enrolled students. A repeat call replaces the previous submission.
func (c *AssignmentController) SubmitAssignment(ctx *gin.Context) {
	var req dto.SubmitAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	studentID := ctx.GetString(middleware.ContextUserID)
	studentName := ctx.GetString(middleware.ContextUserName)
	submission, err := c.assignmentService.SubmitAssignment(ctx.Request.Context(), studentID, studentName, ctx.Param("id"), req.Input())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(submission, "Submission recorded"))
}

// GetMySubmission handles GET /assignments/:id/submissions/me.
func (c *AssignmentController) GetMySubmission(ctx *gin.Context) {
	studentID := ctx.GetString(middleware.ContextUserID)
	submission, err := c.assignmentService.GetMySubmission(ctx.Request.Context(), studentID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if submission == nil {
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "No submission yet"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(submission, ""))
}

// ListAssignmentSubmissions handles GET /assignments/:id/submissions for
// the authoring teacher.
func (c *AssignmentController) ListAssignmentSubmissions(ctx *gin.Context) {
	teacherID := ctx.GetString(middleware.ContextUserID)
	submissions, err := c.assignmentService.ListAssignmentSubmissions(ctx.Request.Context(), teacherID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(submissions, ""))
}

// GradeSubmission handles POST /submissions/:id/grade for the teacher
// who authored the assignment.
func (c *AssignmentController) GradeSubmission(ctx *gin.Context) {
	var req dto.GradeSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	teacherID := ctx.GetString(middleware.ContextUserID)
	submission, err := c.assignmentService.GradeSubmission(ctx.Request.Context(), teacherID, ctx.Param("id"), req.Grade, req.Feedback)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(submission, "Submission graded"))
}
