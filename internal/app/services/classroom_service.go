package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/derin/classpad/internal/app/models"
	"github.com/derin/classpad/internal/app/repositories"
	"github.com/derin/classpad/internal/pkg/apperrors"
	"github.com/derin/classpad/internal/pkg/validation"
)

// ClassroomService handles classroom lifecycle and enrollment operations
type ClassroomService struct {
	classroomRepo  *repositories.ClassroomRepository
	enrollmentRepo *repositories.EnrollmentRepository
	logger         zerolog.Logger
}

// NewClassroomService creates a new classroom service instance
func NewClassroomService(classroomRepo *repositories.ClassroomRepository, enrollmentRepo *repositories.EnrollmentRepository, logger zerolog.Logger) *ClassroomService {
	return &ClassroomService{
		classroomRepo:  classroomRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger.With().Str("component", "classroom_service").Logger(),
	}
}

// CreateClassroom creates a classroom owned by the teacher with a fresh
// join code.
func (s *ClassroomService) CreateClassroom(ctx context.Context, teacherID, teacherName, name, description string) (*models.Classroom, error) {
	if err := validateClassroomName(name); err != nil {
		return nil, err
	}
	classroom, err := s.classroomRepo.Create(ctx, teacherID, teacherName, strings.TrimSpace(name), description)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("classroomId", classroom.ID).Str("teacherId", teacherID).Msg("Classroom created")
	return classroom, nil
}

// GetClassroom returns a classroom by id.
func (s *ClassroomService) GetClassroom(ctx context.Context, id string) (*models.Classroom, error) {
	return s.classroomRepo.GetByID(ctx, id)
}

// ListTeacherClassrooms returns the teacher's active classrooms, newest
// first.
func (s *ClassroomService) ListTeacherClassrooms(ctx context.Context, teacherID string) ([]models.Classroom, error) {
	return s.classroomRepo.ListByTeacher(ctx, teacherID)
}

// ListStudentClassrooms returns the classrooms the student is actively
// enrolled in, newest first.
func (s *ClassroomService) ListStudentClassrooms(ctx context.Context, studentID string) ([]models.Classroom, error) {
	return s.enrollmentRepo.ListStudentClassrooms(ctx, studentID)
}

// JoinClassroom enrolls the student into the classroom behind the join
// code.
func (s *ClassroomService) JoinClassroom(ctx context.Context, studentID, studentName, studentEmail, classCode string) (*models.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.Join(ctx, studentID, studentName, studentEmail, classCode)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("classroomId", enrollment.ClassroomID).Str("studentId", studentID).Msg("Student joined classroom")
	return enrollment, nil
}

// ListClassroomStudents returns the active roster of a classroom the
// teacher owns.
func (s *ClassroomService) ListClassroomStudents(ctx context.Context, teacherID, classroomID string) ([]models.Enrollment, error) {
	if err := s.requireOwnership(ctx, teacherID, classroomID); err != nil {
		return nil, err
	}
	return s.enrollmentRepo.ListByClassroom(ctx, classroomID)
}

// UpdateClassroom applies a partial update to a classroom the teacher owns.
func (s *ClassroomService) UpdateClassroom(ctx context.Context, teacherID, classroomID string, upd models.ClassroomUpdate) (*models.Classroom, error) {
	if upd.Name != nil {
		if err := validateClassroomName(*upd.Name); err != nil {
			return nil, err
		}
	}
	if err := s.requireOwnership(ctx, teacherID, classroomID); err != nil {
		return nil, err
	}
	if err := s.classroomRepo.Update(ctx, classroomID, upd); err != nil {
		return nil, err
	}
	return s.classroomRepo.GetByID(ctx, classroomID)
}

// ArchiveClassroom soft-deletes a classroom the teacher owns. Existing
// enrollments stay; the join code frees up for reuse.
func (s *ClassroomService) ArchiveClassroom(ctx context.Context, teacherID, classroomID string) error {
	if err := s.requireOwnership(ctx, teacherID, classroomID); err != nil {
		return err
	}
	if err := s.classroomRepo.Archive(ctx, classroomID); err != nil {
		return err
	}
	s.logger.Info().Str("classroomId", classroomID).Str("teacherId", teacherID).Msg("Classroom archived")
	return nil
}

func (s *ClassroomService) requireOwnership(ctx context.Context, teacherID, classroomID string) error {
	classroom, err := s.classroomRepo.GetByID(ctx, classroomID)
	if err != nil {
		return err
	}
	if classroom.TeacherID != teacherID {
		return apperrors.NewForbiddenError("classroom belongs to another teacher")
	}
	return nil
}

func validateClassroomName(name string) error {
	ok := validation.NewStringValidation(strings.TrimSpace(name)).
		WithMinLength(validation.NameMinLength).
		WithMaxLength(validation.NameMaxLength).
		Validate()
	if !ok {
		return apperrors.NewValidationError("classroom name must be between 2 and 100 characters")
	}
	return nil
}
