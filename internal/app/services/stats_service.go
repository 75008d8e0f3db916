package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/derin/classpad/internal/app/models"
	"github.com/derin/classpad/internal/app/repositories"
	"github.com/derin/classpad/internal/docstore"
	"github.com/derin/classpad/internal/pkg/helpers"
)

// StatsService aggregates dashboard numbers across the record types.
// Every operation here is read-only and degrades: a failing store yields
// zeros and empty lists, never an error, so dashboards always render.
type StatsService struct {
	classroomRepo  *repositories.ClassroomRepository
	enrollmentRepo *repositories.EnrollmentRepository
	assignmentRepo *repositories.AssignmentRepository
	submissionRepo *repositories.SubmissionRepository
	logger         zerolog.Logger
}

// NewStatsService creates a new stats service instance
func NewStatsService(
	classroomRepo *repositories.ClassroomRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	assignmentRepo *repositories.AssignmentRepository,
	submissionRepo *repositories.SubmissionRepository,
	logger zerolog.Logger,
) *StatsService {
	return &StatsService{
		classroomRepo:  classroomRepo,
		enrollmentRepo: enrollmentRepo,
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		logger:         logger.With().Str("component", "stats_service").Logger(),
	}
}

// GetClassroomStats returns the counters for one classroom card.
// PendingSubmissions and GradedSubmissions are reported as zero:
// per-classroom submission counting needs an assignment-to-submission
// join that has not shipped, so callers get a stable placeholder value
// rather than a partial count.
func (s *StatsService) GetClassroomStats(ctx context.Context, classroomID string) models.ClassroomStats {
	stats := models.ClassroomStats{}

	enrollments, err := s.enrollmentRepo.ListByClassroom(ctx, classroomID)
	if err != nil {
		s.logger.Warn().Err(err).Str("classroomId", classroomID).Msg("Classroom stats degraded, student count unavailable")
	} else {
		stats.TotalStudents = len(enrollments)
	}

	stats.TotalAssignments = len(s.assignmentRepo.ListByClassroom(ctx, classroomID))
	return stats
}

// GetStudentPendingAssignments returns the published assignments in the
// student's classrooms that they have not submitted yet, ordered by due
// date ascending with undated work last. Any failure degrades to empty.
func (s *StatsService) GetStudentPendingAssignments(ctx context.Context, studentID string) []models.Assignment {
	enrollments, err := s.enrollmentRepo.ListActiveByStudent(ctx, studentID)
	if err != nil {
		s.logger.Warn().Err(err).Str("studentId", studentID).Msg("Pending assignments degraded to empty")
		return []models.Assignment{}
	}
	if len(enrollments) == 0 {
		return []models.Assignment{}
	}

	classroomIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		classroomIDs = append(classroomIDs, e.ClassroomID)
	}

	published, err := s.assignmentRepo.ListPublishedByClassrooms(ctx, classroomIDs)
	if err != nil {
		s.logger.Warn().Err(err).Str("studentId", studentID).Msg("Pending assignments degraded to empty")
		return []models.Assignment{}
	}

	submissions, err := s.submissionRepo.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Warn().Err(err).Str("studentId", studentID).Msg("Pending assignments degraded to empty")
		return []models.Assignment{}
	}
	submitted := make(map[string]bool, len(submissions))
	for _, sub := range submissions {
		submitted[sub.AssignmentID] = true
	}

	pending := make([]models.Assignment, 0, len(published))
	for _, a := range published {
		if !submitted[a.ID] {
			pending = append(pending, a)
		}
	}

	sortAssignmentsByDueDateAsc(pending)
	return pending
}

// GetStudentCompletedCount counts the student's submissions that are in
// the submitted state. Once a teacher grades or returns a submission it
// leaves this count; the dashboard card tracks work awaiting review.
func (s *StatsService) GetStudentCompletedCount(ctx context.Context, studentID string) int {
	submissions, err := s.submissionRepo.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Warn().Err(err).Str("studentId", studentID).Msg("Completed count degraded to zero")
		return 0
	}
	count := 0
	for _, sub := range submissions {
		if sub.Status == models.SubmissionSubmitted {
			count++
		}
	}
	return count
}

// GetStudentDashboardStats summarizes a student's standing across all
// enrolled classrooms. Classmates counts every other active student per
// classroom, summed over classrooms; each component degrades to zero
// independently.
func (s *StatsService) GetStudentDashboardStats(ctx context.Context, studentID string) models.StudentDashboardStats {
	stats := models.StudentDashboardStats{
		PendingAssignments:   len(s.GetStudentPendingAssignments(ctx, studentID)),
		CompletedAssignments: s.GetStudentCompletedCount(ctx, studentID),
	}

	enrollments, err := s.enrollmentRepo.ListActiveByStudent(ctx, studentID)
	if err != nil {
		s.logger.Warn().Err(err).Str("studentId", studentID).Msg("Dashboard class counts degraded to zero")
		return stats
	}
	stats.TotalClasses = len(enrollments)

	for _, e := range enrollments {
		peers, err := s.enrollmentRepo.ListByClassroom(ctx, e.ClassroomID)
		if err != nil {
			s.logger.Warn().Err(err).Str("classroomId", e.ClassroomID).Msg("Classmate count skipped for classroom")
			continue
		}
		if n := len(peers) - 1; n > 0 {
			stats.TotalClassmates += n
		}
	}
	return stats
}

// ListTeacherStudents returns one roster row per active enrollment across
// all of the teacher's classrooms, deduplicated per (student, classroom)
// and sorted by student name. Degrades to empty on failure.
func (s *StatsService) ListTeacherStudents(ctx context.Context, teacherID string) []models.ClassroomStudent {
	classrooms, err := s.classroomRepo.ListByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Warn().Err(err).Str("teacherId", teacherID).Msg("Teacher roster degraded to empty")
		return []models.ClassroomStudent{}
	}
	if len(classrooms) == 0 {
		return []models.ClassroomStudent{}
	}

	names := make(map[string]string, len(classrooms))
	classroomIDs := make([]string, 0, len(classrooms))
	for _, c := range classrooms {
		names[c.ID] = c.Name
		classroomIDs = append(classroomIDs, c.ID)
	}

	seen := make(map[string]bool)
	var roster []models.ClassroomStudent
	for _, chunk := range helpers.ChunkStrings(classroomIDs, docstore.MaxInValues) {
		enrollments, err := s.enrollmentRepo.ListByClassrooms(ctx, chunk)
		if err != nil {
			s.logger.Warn().Err(err).Str("teacherId", teacherID).Msg("Teacher roster degraded to empty")
			return []models.ClassroomStudent{}
		}
		for _, e := range enrollments {
			key := e.StudentID + "/" + e.ClassroomID
			if seen[key] {
				continue
			}
			seen[key] = true
			roster = append(roster, models.ClassroomStudent{
				ID:            e.StudentID,
				Name:          e.StudentName,
				Email:         e.StudentEmail,
				ClassroomID:   e.ClassroomID,
				ClassroomName: names[e.ClassroomID],
			})
		}
	}

	sort.SliceStable(roster, func(i, j int) bool { return roster[i].Name < roster[j].Name })
	if roster == nil {
		roster = []models.ClassroomStudent{}
	}
	return roster
}

// sortAssignmentsByDueDateAsc orders soonest due first; assignments with
// no due date sink to the end.
func sortAssignmentsByDueDateAsc(assignments []models.Assignment) {
	sort.SliceStable(assignments, func(i, j int) bool {
		di, dj := assignments[i].DueDate, assignments[j].DueDate
		switch {
		case di == nil && dj == nil:
			return false
		case di == nil:
			return false
		case dj == nil:
			return true
		}
		return di.Seconds() < dj.Seconds()
	})
}
