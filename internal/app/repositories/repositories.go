package repositories

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/derin/classpad/internal/docstore"
)

// Collection names in the document store.
const (
	classroomsCollection  = "classrooms"
	enrollmentsCollection = "enrollments"
	assignmentsCollection = "assignments"
	submissionsCollection = "submissions"
)

// Repositories holds all the repository instances
type Repositories struct {
	ClassroomRepository  *ClassroomRepository
	EnrollmentRepository *EnrollmentRepository
	AssignmentRepository *AssignmentRepository
	SubmissionRepository *SubmissionRepository
}

// NewRepositories initializes all repositories over one document store
func NewRepositories(store docstore.Store, logger zerolog.Logger) *Repositories {
	return &Repositories{
		ClassroomRepository:  NewClassroomRepository(store, logger),
		EnrollmentRepository: NewEnrollmentRepository(store, logger),
		AssignmentRepository: NewAssignmentRepository(store, logger),
		SubmissionRepository: NewSubmissionRepository(store, logger),
	}
}

// docData encodes a record for storage. The id never lives inside the
// document body; the store assigns and carries it.
func docData(v interface{}) (map[string]interface{}, error) {
	data, err := docstore.DataFrom(v)
	if err != nil {
		return nil, err
	}
	delete(data, "id")
	return data, nil
}

// findWithSortFallback runs a sorted query and, when the sort index is
// unavailable, re-issues the same filter without the server-side sort.
// The bool result reports whether the server applied the sort; when it is
// false the caller must sort client-side.
func findWithSortFallback(ctx context.Context, col docstore.Collection, q docstore.Query, lgr zerolog.Logger) ([]docstore.Document, bool, error) {
	docs, err := col.Find(ctx, q)
	if err == nil {
		return docs, true, nil
	}
	if !docstore.IsIndexUnavailable(err) {
		return nil, false, err
	}

	lgr.Warn().Err(err).Str("orderBy", q.OrderBy).Msg("Sort index unavailable, fetching without server-side sort")

	unsorted := q
	unsorted.OrderBy = ""
	unsorted.Descending = false
	docs, err = col.Find(ctx, unsorted)
	if err != nil {
		return nil, false, err
	}
	return docs, false, nil
}
