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

// maxCodeAttempts bounds the unique-code search. With a 36^6 code space
// exhausting 20 attempts means the store is refusing the uniqueness check,
// not that codes ran out.
const maxCodeAttempts = 20

// ClassroomRepository handles document store operations for classrooms
type ClassroomRepository struct {
	classrooms docstore.Collection
	logger     zerolog.Logger
}

// NewClassroomRepository creates a new ClassroomRepository
func NewClassroomRepository(store docstore.Store, logger zerolog.Logger) *ClassroomRepository {
	return &ClassroomRepository{
		classrooms: store.Collection(classroomsCollection),
		logger:     logger.With().Str("component", "classroom_repository").Logger(),
	}
}

// isClassCodeUnique reports whether no active classroom carries the code.
// A failed check counts as "not unique" so the caller retries with a fresh
// code instead of risking a silent collision.
func (r *ClassroomRepository) isClassCodeUnique(ctx context.Context, code string) bool {
	q := docstore.Query{}.
		Where("classCode", code).
		Where("isActive", true)

	docs, err := r.classrooms.Find(ctx, q)
	if err != nil {
		r.logger.Error().Err(err).Str("classCode", code).Msg("Class code uniqueness check failed")
		return false
	}
	return len(docs) == 0
}

// Create inserts a classroom with a freshly generated join code that no
// active classroom uses. Two concurrent creates can both pass the
// uniqueness check before either write lands; the 2.2-billion-code space
// makes that collision acceptable without a store-level constraint.
func (r *ClassroomRepository) Create(ctx context.Context, teacherID, teacherName, name, description string) (*models.Classroom, error) {
	var code string
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		candidate := classcode.Generate()
		if r.isClassCodeUnique(ctx, candidate) {
			code = candidate
			break
		}
	}
	if code == "" {
		r.logger.Error().Int("attempts", maxCodeAttempts).Msg("Exhausted class code generation attempts")
		return nil, apperrors.ErrClassCodeExhausted
	}

	now := docstore.Now()
	classroom := &models.Classroom{
		Name:        name,
		Description: description,
		TeacherID:   teacherID,
		TeacherName: teacherName,
		ClassCode:   code,
		CreatedAt:   now,
		UpdatedAt:   now,
		IsActive:    true,
	}

	data, err := docData(classroom)
	if err != nil {
		return nil, err
	}
	id, err := r.classrooms.Insert(ctx, data)
	if err != nil {
		r.logger.Error().Err(err).Str("teacherId", teacherID).Msg("Failed to create classroom")
		return nil, apperrors.NewStoreUnavailableError("failed to create classroom")
	}

	classroom.ID = id
	return classroom, nil
}

// GetByID retrieves a classroom by id.
func (r *ClassroomRepository) GetByID(ctx context.Context, id string) (*models.Classroom, error) {
	doc, err := r.classrooms.Get(ctx, id)
	if err != nil {
		if apperrors.Is(err, docstore.ErrNotFound) {
			return nil, apperrors.ErrClassroomNotFound
		}
		return nil, apperrors.NewStoreUnavailableError("failed to fetch classroom")
	}
	return decodeClassroom(doc)
}

// FindActiveByCode looks up the active classroom carrying the join code.
// Lookup is case-insensitive; the code is normalized before matching.
func (r *ClassroomRepository) FindActiveByCode(ctx context.Context, code string) (*models.Classroom, error) {
	q := docstore.Query{}.
		Where("classCode", classcode.Normalize(code)).
		Where("isActive", true)

	docs, err := r.classrooms.Find(ctx, q)
	if err != nil {
		r.logger.Error().Err(err).Msg("Class code lookup failed")
		return nil, apperrors.NewStoreUnavailableError("failed to look up class code")
	}
	if len(docs) == 0 {
		return nil, apperrors.ErrInvalidClassCode
	}
	return decodeClassroom(&docs[0])
}

// ListByTeacher returns the teacher's active classrooms, newest first.
// A missing sort index falls back to an unsorted query plus a client-side
// sort; only a total query failure surfaces to the caller.
func (r *ClassroomRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Classroom, error) {
	q := docstore.Query{}.
		Where("teacherId", teacherID).
		Where("isActive", true).
		OrderByDesc("createdAt")

	docs, sorted, err := findWithSortFallback(ctx, r.classrooms, q, r.logger)
	if err != nil {
		r.logger.Error().Err(err).Str("teacherId", teacherID).Msg("Failed to fetch teacher classrooms")
		return nil, apperrors.NewStoreUnavailableError("failed to fetch classrooms")
	}

	classrooms := make([]models.Classroom, 0, len(docs))
	for i := range docs {
		classroom, err := decodeClassroom(&docs[i])
		if err != nil {
			return nil, err
		}
		classrooms = append(classrooms, *classroom)
	}

	if !sorted {
		sortClassroomsByCreatedAtDesc(classrooms)
	}
	return classrooms, nil
}

// Update merges the mutable fields into the classroom and refreshes its
// update timestamp. Ownership is checked by the service layer.
func (r *ClassroomRepository) Update(ctx context.Context, id string, upd models.ClassroomUpdate) error {
	fields, err := docstore.DataFrom(upd)
	if err != nil {
		return err
	}
	fields["updatedAt"] = docstore.Now()

	if err := r.classrooms.Update(ctx, id, fields); err != nil {
		if apperrors.Is(err, docstore.ErrNotFound) {
			return apperrors.ErrClassroomNotFound
		}
		r.logger.Error().Err(err).Str("classroomId", id).Msg("Failed to update classroom")
		return apperrors.NewStoreUnavailableError("failed to update classroom")
	}
	return nil
}

// Archive soft-deletes a classroom by clearing its active flag. The join
// code becomes reusable by future classrooms.
func (r *ClassroomRepository) Archive(ctx context.Context, id string) error {
	fields := map[string]interface{}{
		"isActive":  false,
		"updatedAt": docstore.Now(),
	}
	if err := r.classrooms.Update(ctx, id, fields); err != nil {
		if apperrors.Is(err, docstore.ErrNotFound) {
			return apperrors.ErrClassroomNotFound
		}
		r.logger.Error().Err(err).Str("classroomId", id).Msg("Failed to archive classroom")
		return apperrors.NewStoreUnavailableError("failed to archive classroom")
	}
	return nil
}

func decodeClassroom(doc *docstore.Document) (*models.Classroom, error) {
	var classroom models.Classroom
	if err := doc.DataTo(&classroom); err != nil {
		return nil, err
	}
	classroom.ID = doc.ID
	return &classroom, nil
}

func sortClassroomsByCreatedAtDesc(classrooms []models.Classroom) {
	sort.SliceStable(classrooms, func(i, j int) bool {
		return classrooms[i].CreatedAt.Seconds() > classrooms[j].CreatedAt.Seconds()
	})
}
