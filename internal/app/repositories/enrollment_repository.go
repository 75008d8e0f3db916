package repositories

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/derin/classpad/internal/app/models"
	"github.com/derin/classpad/internal/docstore"
	"github.com/derin/classpad/internal/pkg/apperrors"
	"github.com/derin/classpad/internal/pkg/classcode"
)

// EnrollmentRepository handles document store operations for enrollments
type EnrollmentRepository struct {
	enrollments docstore.Collection
	classrooms  docstore.Collection
	logger      zerolog.Logger
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(store docstore.Store, logger zerolog.Logger) *EnrollmentRepository {
	return &EnrollmentRepository{
		enrollments: store.Collection(enrollmentsCollection),
		classrooms:  store.Collection(classroomsCollection),
		logger:      logger.With().Str("component", "enrollment_repository").Logger(),
	}
}

// Join enrolls a student into the active classroom matching the code.
// Returns ErrInvalidClassCode when no active classroom carries the code
// and ErrAlreadyEnrolled when the student already has an active enrollment.
// The existence check and the insert are not transactional; two concurrent
// joins by the same student can both pass the check. Accepted at this
// scale, same tradeoff as the code-uniqueness check.
func (r *EnrollmentRepository) Join(ctx context.Context, studentID, studentName, studentEmail, classCode string) (*models.Enrollment, error) {
	classroom, err := r.findClassroomByCode(ctx, classCode)
	if err != nil {
		return nil, err
	}

	existing, err := r.enrollments.Find(ctx, docstore.Query{}.
		Where("classroomId", classroom.ID).
		Where("studentId", studentID).
		Where("status", models.EnrollmentActive))
	if err != nil {
		r.logger.Error().Err(err).Str("classroomId", classroom.ID).Str("studentId", studentID).Msg("Enrollment existence check failed")
		return nil, apperrors.NewStoreUnavailableError("failed to check enrollment")
	}
	if len(existing) > 0 {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		ClassroomID:  classroom.ID,
		StudentID:    studentID,
		StudentName:  studentName,
		StudentEmail: studentEmail,
		EnrolledAt:   docstore.Now(),
		Status:       models.EnrollmentActive,
	}
	data, err := docData(enrollment)
	if err != nil {
		return nil, err
	}
	id, err := r.enrollments.Insert(ctx, data)
	if err != nil {
		r.logger.Error().Err(err).Str("classroomId", classroom.ID).Str("studentId", studentID).Msg("Failed to create enrollment")
		return nil, apperrors.NewStoreUnavailableError("failed to join classroom")
	}

	enrollment.ID = id
	return enrollment, nil
}

// ListStudentClassrooms returns the classrooms behind a student's active
// enrollments, newest classroom first. Enrollment rows pointing at a
// missing classroom are skipped rather than failing the whole listing.
func (r *EnrollmentRepository) ListStudentClassrooms(ctx context.Context, studentID string) ([]models.Classroom, error) {
	enrollments, err := r.ListActiveByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	classrooms := make([]models.Classroom, 0, len(enrollments))
	for _, enrollment := range enrollments {
		doc, err := r.classrooms.Get(ctx, enrollment.ClassroomID)
		if err != nil {
			if apperrors.Is(err, docstore.ErrNotFound) {
				r.logger.Warn().Str("classroomId", enrollment.ClassroomID).Str("enrollmentId", enrollment.ID).Msg("Enrollment points at missing classroom, skipping")
				continue
			}
			return nil, apperrors.NewStoreUnavailableError("failed to fetch enrolled classrooms")
		}
		classroom, err := decodeClassroom(doc)
		if err != nil {
			return nil, err
		}
		classrooms = append(classrooms, *classroom)
	}

	// Sorted client-side to sidestep the composite index requirement.
	sortClassroomsByCreatedAtDesc(classrooms)
	return classrooms, nil
}

// ListByClassroom returns the active enrollments of a classroom, most
// recent first, with the usual sorted-query fallback.
func (r *EnrollmentRepository) ListByClassroom(ctx context.Context, classroomID string) ([]models.Enrollment, error) {
	q := docstore.Query{}.
		Where("classroomId", classroomID).
		Where("status", models.EnrollmentActive).
		OrderByDesc("enrolledAt")

	docs, sorted, err := findWithSortFallback(ctx, r.enrollments, q, r.logger)
	if err != nil {
		r.logger.Error().Err(err).Str("classroomId", classroomID).Msg("Failed to fetch classroom enrollments")
		return nil, apperrors.NewStoreUnavailableError("failed to fetch enrollments")
	}

	enrollments, err := decodeEnrollments(docs)
	if err != nil {
		return nil, err
	}
	if !sorted {
		sort.SliceStable(enrollments, func(i, j int) bool {
			return enrollments[i].EnrolledAt.Seconds() > enrollments[j].EnrolledAt.Seconds()
		})
	}
	return enrollments, nil
}

// ListByClassrooms returns active enrollments across a set of classrooms.
// The id set is bounded by the store's in-set ceiling; callers chunk.
func (r *EnrollmentRepository) ListByClassrooms(ctx context.Context, classroomIDs []string) ([]models.Enrollment, error) {
	if len(classroomIDs) == 0 {
		return nil, nil
	}
	docs, err := r.enrollments.Find(ctx, docstore.Query{}.
		WhereIn("classroomId", classroomIDs).
		Where("status", models.EnrollmentActive))
	if err != nil {
		r.logger.Error().Err(err).Int("classrooms", len(classroomIDs)).Msg("Failed to fetch enrollments for classroom set")
		return nil, apperrors.NewStoreUnavailableError("failed to fetch enrollments")
	}
	return decodeEnrollments(docs)
}

// Deactivate marks an enrollment inactive. Part of the model's lifecycle;
// no current flow drives it.
func (r *EnrollmentRepository) Deactivate(ctx context.Context, enrollmentID string) error {
	fields := map[string]interface{}{"status": models.EnrollmentInactive}
	if err := r.enrollments.Update(ctx, enrollmentID, fields); err != nil {
		if apperrors.Is(err, docstore.ErrNotFound) {
			return apperrors.ErrEnrollmentNotFound
		}
		r.logger.Error().Err(err).Str("enrollmentId", enrollmentID).Msg("Failed to deactivate enrollment")
		return apperrors.NewStoreUnavailableError("failed to deactivate enrollment")
	}
	return nil
}

func (r *EnrollmentRepository) findClassroomByCode(ctx context.Context, classCode string) (*models.Classroom, error) {
	docs, err := r.classrooms.Find(ctx, docstore.Query{}.
		Where("classCode", classcode.Normalize(classCode)).
		Where("isActive", true))
	if err != nil {
		r.logger.Error().Err(err).Msg("Class code lookup failed")
		return nil, apperrors.NewStoreUnavailableError("failed to look up class code")
	}
	if len(docs) == 0 {
		return nil, apperrors.ErrInvalidClassCode
	}
	return decodeClassroom(&docs[0])
}

// ListActiveByStudent returns the student's active enrollments.
func (r *EnrollmentRepository) ListActiveByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	docs, err := r.enrollments.Find(ctx, docstore.Query{}.
		Where("studentId", studentID).
		Where("status", models.EnrollmentActive))
	if err != nil {
		r.logger.Error().Err(err).Str("studentId", studentID).Msg("Failed to fetch student enrollments")
		return nil, apperrors.NewStoreUnavailableError("failed to fetch enrollments")
	}
	return decodeEnrollments(docs)
}

func decodeEnrollments(docs []docstore.Document) ([]models.Enrollment, error) {
	enrollments := make([]models.Enrollment, 0, len(docs))
	for i := range docs {
		var enrollment models.Enrollment
		if err := docs[i].DataTo(&enrollment); err != nil {
			return nil, err
		}
		enrollment.ID = docs[i].ID
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, nil
}
