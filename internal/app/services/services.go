// Package services holds the business rules above the repository layer:
// ownership and enrollment checks, the submission upsert flow, and the
// dashboard aggregations with their degrade-to-empty error policy.
package services

import (
	"github.com/rs/zerolog"

	"github.com/derin/classpad/internal/app/repositories"
)

// Services holds all the service instances
type Services struct {
	ClassroomService  *ClassroomService
	AssignmentService *AssignmentService
	StatsService      *StatsService
}

// NewServices initializes all services over the shared repositories
func NewServices(repos *repositories.Repositories, logger zerolog.Logger) *Services {
	return &Services{
		ClassroomService:  NewClassroomService(repos.ClassroomRepository, repos.EnrollmentRepository, logger),
		AssignmentService: NewAssignmentService(repos.AssignmentRepository, repos.ClassroomRepository, repos.EnrollmentRepository, repos.SubmissionRepository, logger),
		StatsService:      NewStatsService(repos.ClassroomRepository, repos.EnrollmentRepository, repos.AssignmentRepository, repos.SubmissionRepository, logger),
	}
}
