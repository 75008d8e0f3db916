package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/derin/classpad/internal/app/models"
	"github.com/derin/classpad/internal/docstore"
	"github.com/derin/classpad/internal/docstore/memstore"
)

func seedAssignment(t *testing.T, store *memstore.Store, a models.Assignment) string {
	t.Helper()
	data, err := docData(&a)
	if err != nil {
		t.Fatalf("encode assignment: %v", err)
	}
	id, err := store.Collection(assignmentsCollection).Insert(context.Background(), data)
	if err != nil {
		t.Fatalf("seed assignment: %v", err)
	}
	return id
}

func TestAssignmentCreateDefaultsToDraft(t *testing.T) {
	_, repos := newTestRepos(t)
	ctx := context.Background()

	assignment, err := repos.AssignmentRepository.Create(ctx, "c-1", "t-1", models.AssignmentDraft{Title: "Homework 1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if assignment.Status != models.AssignmentDraftStatus {
		t.Fatalf("status %q, want draft", assignment.Status)
	}
	if assignment.Materials == nil {
		t.Fatal("materials should be an empty slice, not nil")
	}

	got, err := repos.AssignmentRepository.GetByID(ctx, assignment.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Homework 1" || got.ClassroomID != "c-1" || got.TeacherID != "t-1" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestAssignmentListByClassroomSortFallback(t *testing.T) {
	store, repos := newTestRepos(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"Oldest", "Middle", "Newest"} {
		seedAssignment(t, store, models.Assignment{
			ClassroomID: "c-1", TeacherID: "t-1", Title: title,
			CreatedAt: docstore.At(base.Add(time.Duration(i) * time.Hour)),
			UpdatedAt: docstore.At(base.Add(time.Duration(i) * time.Hour)),
			Status:    models.AssignmentPublished,
		})
	}

	assertNewestFirst := func(t *testing.T) {
		t.Helper()
		assignments := repos.AssignmentRepository.ListByClassroom(ctx, "c-1")
		if len(assignments) != 3 {
			t.Fatalf("got %d assignments, want 3", len(assignments))
		}
		for i, want := range []string{"Newest", "Middle", "Oldest"} {
			if assignments[i].Title != want {
				t.Fatalf("position %d: got %q, want %q", i, assignments[i].Title, want)
			}
		}
	}

	t.Run("with sort index", assertNewestFirst)

	store.DisableSortIndex(assignmentsCollection, "createdAt")
	t.Run("index unavailable", assertNewestFirst)
}

func TestAssignmentListByClassroomDegradesToEmpty(t *testing.T) {
	store, repos := newTestRepos(t)

	store.InjectFailure(assignmentsCollection, errors.New("store down"))
	assignments := repos.AssignmentRepository.ListByClassroom(context.Background(), "c-1")
	if assignments == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(assignments) != 0 {
		t.Fatalf("expected no assignments, got %d", len(assignments))
	}
}

func TestListPublishedByClassroomsChunksLargeSets(t *testing.T) {
	store, repos := newTestRepos(t)
	ctx := context.Background()

	// 12 classrooms forces two in-set chunks.
	var classroomIDs []string
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("c-%d", i)
		classroomIDs = append(classroomIDs, id)
		seedAssignment(t, store, models.Assignment{
			ClassroomID: id, TeacherID: "t-1", Title: "Published " + id,
			CreatedAt: docstore.Now(), UpdatedAt: docstore.Now(),
			Status: models.AssignmentPublished,
		})
		seedAssignment(t, store, models.Assignment{
			ClassroomID: id, TeacherID: "t-1", Title: "Draft " + id,
			CreatedAt: docstore.Now(), UpdatedAt: docstore.Now(),
			Status: models.AssignmentDraftStatus,
		})
	}

	assignments, err := repos.AssignmentRepository.ListPublishedByClassrooms(ctx, classroomIDs)
	if err != nil {
		t.Fatalf("ListPublishedByClassrooms: %v", err)
	}
	if len(assignments) != 12 {
		t.Fatalf("got %d assignments, want 12", len(assignments))
	}
	for _, a := range assignments {
		if a.Status != models.AssignmentPublished {
			t.Fatalf("draft assignment %q leaked into published listing", a.Title)
		}
	}
}

func TestAssignmentUpdateLeavesImmutableFields(t *testing.T) {
	_, repos := newTestRepos(t)
	ctx := context.Background()

	created, err := repos.AssignmentRepository.Create(ctx, "c-1", "t-1", models.AssignmentDraft{
		Title: "Homework 1", Description: "Chapter 3",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "Homework 1 (revised)"
	status := models.AssignmentPublished
	err = repos.AssignmentRepository.Update(ctx, created.ID, models.AssignmentUpdate{
		Title:  &title,
		Status: &status,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repos.AssignmentRepository.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != title || got.Status != models.AssignmentPublished {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.Description != "Chapter 3" {
		t.Fatalf("untouched field changed: %q", got.Description)
	}
	if got.ClassroomID != "c-1" || got.TeacherID != "t-1" {
		t.Fatal("immutable fields changed by update")
	}
	if !got.CreatedAt.Equal(created.CreatedAt.Time) {
		t.Fatal("createdAt changed by update")
	}
}
