package repositories

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/derin/classpad/internal/app/models"
	"github.com/derin/classpad/internal/docstore"
	"github.com/derin/classpad/internal/pkg/apperrors"
	"github.com/derin/classpad/internal/pkg/helpers"
)

// AssignmentRepository handles document store operations for assignments
type AssignmentRepository struct {
	assignments docstore.Collection
	logger      zerolog.Logger
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(store docstore.Store, logger zerolog.Logger) *AssignmentRepository {
	return &AssignmentRepository{
		assignments: store.Collection(assignmentsCollection),
		logger:      logger.With().Str("component", "assignment_repository").Logger(),
	}
}

// Create inserts an assignment for a classroom with both timestamps set.
func (r *AssignmentRepository) Create(ctx context.Context, classroomID, teacherID string, draft models.AssignmentDraft) (*models.Assignment, error) {
	now := docstore.Now()
	status := draft.Status
	if status == "" {
		status = models.AssignmentDraftStatus
	}
	materials := draft.Materials
	if materials == nil {
		materials = []models.AssignmentMaterial{}
	}

	assignment := &models.Assignment{
		ClassroomID:  classroomID,
		TeacherID:    teacherID,
		Title:        draft.Title,
		Description:  draft.Description,
		Instructions: draft.Instructions,
		DueDate:      draft.DueDate,
		MaxPoints:    draft.MaxPoints,
		Materials:    materials,
		CreatedAt:    now,
		UpdatedAt:    now,
		Status:       status,
	}

	data, err := docData(assignment)
	if err != nil {
		return nil, err
	}
	id, err := r.assignments.Insert(ctx, data)
	if err != nil {
		r.logger.Error().Err(err).Str("classroomId", classroomID).Msg("Failed to create assignment")
		return nil, apperrors.NewStoreUnavailableError("failed to create assignment")
	}

	assignment.ID = id
	return assignment, nil
}

// GetByID retrieves an assignment by id.
func (r *AssignmentRepository) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	doc, err := r.assignments.Get(ctx, id)
	if err != nil {
		if apperrors.Is(err, docstore.ErrNotFound) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, apperrors.NewStoreUnavailableError("failed to fetch assignment")
	}
	return decodeAssignment(doc)
}

// ListByClassroom returns a classroom's assignments, newest first. A
// missing sort index falls back to a client-side sort; a total query
// failure degrades to an empty list so assignment-backed pages render
// instead of erroring. That asymmetry with the classroom and enrollment
// listings is deliberate.
func (r *AssignmentRepository) ListByClassroom(ctx context.Context, classroomID string) []models.Assignment {
	q := docstore.Query{}.
		Where("classroomId", classroomID).
		OrderByDesc("createdAt")

	docs, sorted, err := findWithSortFallback(ctx, r.assignments, q, r.logger)
	if err != nil {
		r.logger.Error().Err(err).Str("classroomId", classroomID).Msg("Failed to fetch classroom assignments, returning empty list")
		return []models.Assignment{}
	}

	assignments := make([]models.Assignment, 0, len(docs))
	for i := range docs {
		assignment, err := decodeAssignment(&docs[i])
		if err != nil {
			r.logger.Error().Err(err).Str("assignmentId", docs[i].ID).Msg("Skipping undecodable assignment")
			continue
		}
		assignments = append(assignments, *assignment)
	}

	if !sorted {
		sort.SliceStable(assignments, func(i, j int) bool {
			return assignments[i].CreatedAt.Seconds() > assignments[j].CreatedAt.Seconds()
		})
	}
	return assignments
}

// ListPublishedByClassrooms returns every published assignment across the
// given classrooms, chunking the in-set filter to the store's ceiling.
func (r *AssignmentRepository) ListPublishedByClassrooms(ctx context.Context, classroomIDs []string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	for _, chunk := range helpers.ChunkStrings(classroomIDs, docstore.MaxInValues) {
		docs, err := r.assignments.Find(ctx, docstore.Query{}.
			WhereIn("classroomId", chunk).
			Where("status", models.AssignmentPublished))
		if err != nil {
			r.logger.Error().Err(err).Int("classrooms", len(chunk)).Msg("Failed to fetch published assignments")
			return nil, apperrors.NewStoreUnavailableError("failed to fetch assignments")
		}
		for i := range docs {
			assignment, err := decodeAssignment(&docs[i])
			if err != nil {
				return nil, err
			}
			assignments = append(assignments, *assignment)
		}
	}
	return assignments, nil
}

// Update merges the mutable fields into the assignment and refreshes its
// update timestamp. Identity, classroom, author and creation time are not
// representable in AssignmentUpdate, so they cannot be touched.
func (r *AssignmentRepository) Update(ctx context.Context, id string, upd models.AssignmentUpdate) error {
	fields, err := docstore.DataFrom(upd)
	if err != nil {
		return err
	}
	fields["updatedAt"] = docstore.Now()

	if err := r.assignments.Update(ctx, id, fields); err != nil {
		if apperrors.Is(err, docstore.ErrNotFound) {
			return apperrors.ErrAssignmentNotFound
		}
		r.logger.Error().Err(err).Str("assignmentId", id).Msg("Failed to update assignment")
		return apperrors.NewStoreUnavailableError("failed to update assignment")
	}
	return nil
}

func decodeAssignment(doc *docstore.Document) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := doc.DataTo(&assignment); err != nil {
		return nil, err
	}
	assignment.ID = doc.ID
	return &assignment, nil
}
