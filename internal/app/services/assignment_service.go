package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/derin/classpad/internal/app/models"
	"github.com/derin/classpad/internal/app/repositories"
	"github.com/derin/classpad/internal/docstore"
	"github.com/derin/classpad/internal/pkg/apperrors"
)

// AssignmentService handles assignment authoring, student submission and
// grading
type AssignmentService struct {
	assignmentRepo *repositories.AssignmentRepository
	classroomRepo  *repositories.ClassroomRepository
	enrollmentRepo *repositories.EnrollmentRepository
	submissionRepo *repositories.SubmissionRepository
	logger         zerolog.Logger
}

// NewAssignmentService creates a new assignment service instance
func NewAssignmentService(
	assignmentRepo *repositories.AssignmentRepository,
	classroomRepo *repositories.ClassroomRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	submissionRepo *repositories.SubmissionRepository,
	logger zerolog.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		classroomRepo:  classroomRepo,
		enrollmentRepo: enrollmentRepo,
		submissionRepo: submissionRepo,
		logger:         logger.With().Str("component", "assignment_service").Logger(),
	}
}

// CreateAssignment creates an assignment in a classroom the teacher owns.
func (s *AssignmentService) CreateAssignment(ctx context.Context, teacherID, classroomID string, draft models.AssignmentDraft) (*models.Assignment, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, apperrors.NewValidationError("assignment title is required")
	}
	classroom, err := s.classroomRepo.GetByID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if classroom.TeacherID != teacherID {
		return nil, apperrors.NewForbiddenError("classroom belongs to another teacher")
	}

	assignment, err := s.assignmentRepo.Create(ctx, classroomID, teacherID, draft)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("assignmentId", assignment.ID).Str("classroomId", classroomID).Msg("Assignment created")
	return assignment, nil
}

// GetAssignment returns an assignment by id.
func (s *AssignmentService) GetAssignment(ctx context.Context, id string) (*models.Assignment, error) {
	return s.assignmentRepo.GetByID(ctx, id)
}

// ListClassroomAssignments returns a classroom's assignments, newest
// first. The listing degrades to empty on store failure.
func (s *AssignmentService) ListClassroomAssignments(ctx context.Context, classroomID string) []models.Assignment {
	return s.assignmentRepo.ListByClassroom(ctx, classroomID)
}

// UpdateAssignment applies a partial update to an assignment the teacher
// authored.
func (s *AssignmentService) UpdateAssignment(ctx context.Context, teacherID, assignmentID string, upd models.AssignmentUpdate) (*models.Assignment, error) {
	if _, err := s.requireAuthorship(ctx, teacherID, assignmentID); err != nil {
		return nil, err
	}
	if err := s.assignmentRepo.Update(ctx, assignmentID, upd); err != nil {
		return nil, err
	}
	return s.assignmentRepo.GetByID(ctx, assignmentID)
}

// SubmitAssignment records the student's work for a published assignment
// in a classroom they are enrolled in. A second submit for the same
// assignment updates the existing record instead of creating another.
func (s *AssignmentService) SubmitAssignment(ctx context.Context, studentID, studentName, assignmentID string, input models.SubmissionInput) (*models.Submission, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.Status != models.AssignmentPublished {
		return nil, apperrors.NewForbiddenError("assignment is not accepting submissions")
	}
	if err := s.requireEnrollment(ctx, studentID, assignment.ClassroomID); err != nil {
		return nil, err
	}

	existing, err := s.submissionRepo.GetStudentSubmission(ctx, assignmentID, studentID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		submission, err := s.submissionRepo.Submit(ctx, assignmentID, studentID, studentName, input)
		if err != nil {
			return nil, err
		}
		s.logger.Info().Str("assignmentId", assignmentID).Str("studentId", studentID).Msg("Submission created")
		return submission, nil
	}

	status := models.SubmissionSubmitted
	upd := models.SubmissionUpdate{
		Notes:  &input.Notes,
		Status: &status,
	}
	if input.Files != nil {
		upd.Files = &input.Files
	}
	if err := s.submissionRepo.Update(ctx, existing.ID, upd); err != nil {
		return nil, err
	}
	s.logger.Info().Str("assignmentId", assignmentID).Str("studentId", studentID).Msg("Submission updated")
	return s.submissionRepo.GetByID(ctx, existing.ID)
}

// GetMySubmission returns the student's own submission for an assignment,
// or nil when they have not submitted.
func (s *AssignmentService) GetMySubmission(ctx context.Context, studentID, assignmentID string) (*models.Submission, error) {
	return s.submissionRepo.GetStudentSubmission(ctx, assignmentID, studentID)
}

// ListAssignmentSubmissions returns every submission for an assignment
// the teacher authored, most recent first.
func (s *AssignmentService) ListAssignmentSubmissions(ctx context.Context, teacherID, assignmentID string) ([]models.Submission, error) {
	if _, err := s.requireAuthorship(ctx, teacherID, assignmentID); err != nil {
		return nil, err
	}
	return s.submissionRepo.ListByAssignment(ctx, assignmentID)
}

// GradeSubmission records a grade and feedback on a submission to an
// assignment the teacher authored and marks it graded.
func (s *AssignmentService) GradeSubmission(ctx context.Context, teacherID, submissionID string, grade float64, feedback string) (*models.Submission, error) {
	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	assignment, err := s.requireAuthorship(ctx, teacherID, submission.AssignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.MaxPoints != nil && grade > float64(*assignment.MaxPoints) {
		return nil, apperrors.NewValidationError("grade exceeds the assignment's maximum points")
	}

	status := models.SubmissionGraded
	gradedAt := docstore.Now()
	upd := models.SubmissionUpdate{
		Grade:    &grade,
		Feedback: &feedback,
		Status:   &status,
		GradedAt: &gradedAt,
		GradedBy: &teacherID,
	}
	if err := s.submissionRepo.Update(ctx, submissionID, upd); err != nil {
		return nil, err
	}
	s.logger.Info().Str("submissionId", submissionID).Str("teacherId", teacherID).Msg("Submission graded")
	return s.submissionRepo.GetByID(ctx, submissionID)
}

func (s *AssignmentService) requireAuthorship(ctx context.Context, teacherID, assignmentID string) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.TeacherID != teacherID {
		return nil, apperrors.NewForbiddenError("assignment belongs to another teacher")
	}
	return assignment, nil
}

func (s *AssignmentService) requireEnrollment(ctx context.Context, studentID, classroomID string) error {
	enrollments, err := s.enrollmentRepo.ListActiveByStudent(ctx, studentID)
	if err != nil {
		return err
	}
	for _, e := range enrollments {
		if e.ClassroomID == classroomID {
			return nil
		}
	}
	return apperrors.ErrNotEnrolled
}
