package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derin/classpad/internal/app/models"
	"github.com/derin/classpad/internal/app/models/dto"
	"github.com/derin/classpad/internal/app/services"
	"github.com/derin/classpad/internal/middleware"
)

// ClassroomController handles classroom and enrollment endpoints
type ClassroomController struct {
	classroomService *services.ClassroomService
}

// NewClassroomController creates a new ClassroomController
func NewClassroomController(classroomService *services.ClassroomService) *ClassroomController {
	return &ClassroomController{classroomService: classroomService}
}

// CreateClassroom handles POST /classrooms for teachers.
func (c *ClassroomController) CreateClassroom(ctx *gin.Context) {
	var req dto.CreateClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	teacherID := ctx.GetString(middleware.ContextUserID)
	teacherName := ctx.GetString(middleware.ContextUserName)
	classroom, err := c.classroomService.CreateClassroom(ctx.Request.Context(), teacherID, teacherName, req.Name, req.Description)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(classroom, "Classroom created"))
}

// GetClassroom handles GET /classrooms/:id.
func (c *ClassroomController) GetClassroom(ctx *gin.Context) {
	classroom, err := c.classroomService.GetClassroom(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(classroom, ""))
}

// ListMyClassrooms handles GET /classrooms. Teachers get the classrooms
// they own; students get the classrooms they are enrolled in.
func (c *ClassroomController) ListMyClassrooms(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)
	role := ctx.GetString(middleware.ContextRoleType)

	var err error
	var classrooms interface{}
	if role == string(models.RoleTeacher) {
		classrooms, err = c.classroomService.ListTeacherClassrooms(ctx.Request.Context(), userID)
	} else {
		classrooms, err = c.classroomService.ListStudentClassrooms(ctx.Request.Context(), userID)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(classrooms, ""))
}

// JoinClassroom handles POST /classrooms/join for students.
func (c *ClassroomController) JoinClassroom(ctx *gin.Context) {
	var req dto.JoinClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	studentID := ctx.GetString(middleware.ContextUserID)
	studentName := ctx.GetString(middleware.ContextUserName)
	studentEmail := ctx.GetString(middleware.ContextEmail)
	enrollment, err := c.classroomService.JoinClassroom(ctx.Request.Context(), studentID, studentName, studentEmail, req.ClassCode)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(enrollment, "Joined classroom"))
}

// ListClassroomStudents handles GET /classrooms/:id/students for the
// owning teacher.
func (c *ClassroomController) ListClassroomStudents(ctx *gin.Context) {
	teacherID := ctx.GetString(middleware.ContextUserID)
	roster, err := c.classroomService.ListClassroomStudents(ctx.Request.Context(), teacherID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(roster, ""))
}

// UpdateClassroom handles PATCH /classrooms/:id for the owning teacher.
func (c *ClassroomController) UpdateClassroom(ctx *gin.Context) {
	var req dto.UpdateClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	teacherID := ctx.GetString(middleware.ContextUserID)
	classroom, err := c.classroomService.UpdateClassroom(ctx.Request.Context(), teacherID, ctx.Param("id"), req.Update())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(classroom, "Classroom updated"))
}

// ArchiveClassroom handles DELETE /classrooms/:id for the owning teacher.
// Archival is a soft delete; enrollments and assignments stay on record.
func (c *ClassroomController) ArchiveClassroom(ctx *gin.Context) {
	teacherID := ctx.GetString(middleware.ContextUserID)
	if err := c.classroomService.ArchiveClassroom(ctx.Request.Context(), teacherID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Classroom archived"))
}
