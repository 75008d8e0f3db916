package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/derin/classpad/internal/app/controllers"
	"github.com/derin/classpad/internal/app/models"
	"github.com/derin/classpad/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	classroomController *controllers.ClassroomController,
	assignmentController *controllers.AssignmentController,
	statsController *controllers.StatsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	teacherOnly := authMiddleware.RoleRequired(models.RoleTeacher)
	studentOnly := authMiddleware.RoleRequired(models.RoleStudent)

	classrooms := authenticated.Group("/classrooms")
	{
		classrooms.GET("", classroomController.ListMyClassrooms)
		classrooms.GET("/:id", classroomController.GetClassroom)
		classrooms.GET("/:id/assignments", assignmentController.ListClassroomAssignments)
		classrooms.GET("/:id/stats", statsController.GetClassroomStats)

		classrooms.POST("/join", studentOnly, classroomController.JoinClassroom)

		classrooms.POST("", teacherOnly, classroomController.CreateClassroom)
		classrooms.PATCH("/:id", teacherOnly, classroomController.UpdateClassroom)
		classrooms.DELETE("/:id", teacherOnly, classroomController.ArchiveClassroom)
		classrooms.GET("/:id/students", teacherOnly, classroomController.ListClassroomStudents)
		classrooms.POST("/:id/assignments", teacherOnly, assignmentController.CreateAssignment)
	}

	assignments := authenticated.Group("/assignments")
	{
		assignments.GET("/:id", assignmentController.GetAssignment)
		assignments.PATCH("/:id", teacherOnly, assignmentController.UpdateAssignment)

		assignments.POST("/:id/submissions", studentOnly, assignmentController.SubmitAssignment)
		assignments.GET("/:id/submissions/me", studentOnly, assignmentController.GetMySubmission)
		assignments.GET("/:id/submissions", teacherOnly, assignmentController.ListAssignmentSubmissions)
	}

	submissions := authenticated.Group("/submissions")
	{
		submissions.POST("/:id/grade", teacherOnly, assignmentController.GradeSubmission)
	}

	students := authenticated.Group("/students/me")
	students.Use(studentOnly)
	{
		students.GET("/pending-assignments", statsController.GetMyPendingAssignments)
		students.GET("/dashboard", statsController.GetMyDashboardStats)
	}

	teachers := authenticated.Group("/teachers/me")
	teachers.Use(teacherOnly)
	{
		teachers.GET("/students", statsController.ListMyStudents)
	}
}
