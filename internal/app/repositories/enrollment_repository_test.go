package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/derin/classpad/internal/app/models"
	"github.com/derin/classpad/internal/docstore"
	"github.com/derin/classpad/internal/docstore/memstore"
	"github.com/derin/classpad/internal/pkg/apperrors"
)

func seedEnrollment(t *testing.T, store *memstore.Store, e models.Enrollment) string {
	t.Helper()
	data, err := docData(&e)
	if err != nil {
		t.Fatalf("encode enrollment: %v", err)
	}
	id, err := store.Collection(enrollmentsCollection).Insert(context.Background(), data)
	if err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	return id
}

func TestJoin(t *testing.T) {
	store, repos := newTestRepos(t)
	ctx := context.Background()

	classroomID := seedClassroom(t, store, models.Classroom{
		Name: "Math", TeacherID: "t-1", ClassCode: "AB12CD",
		CreatedAt: docstore.Now(), UpdatedAt: docstore.Now(), IsActive: true,
	})

	enrollment, err := repos.EnrollmentRepository.Join(ctx, "s-1", "Deniz", "deniz@example.com", "ab12cd")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if enrollment.ClassroomID != classroomID {
		t.Fatalf("enrolled into %s, want %s", enrollment.ClassroomID, classroomID)
	}
	if enrollment.Status != models.EnrollmentActive {
		t.Fatalf("enrollment status %q, want active", enrollment.Status)
	}

	// Joining again must not create a second active enrollment.
	if _, err := repos.EnrollmentRepository.Join(ctx, "s-1", "Deniz", "deniz@example.com", "AB12CD"); !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
	if got := store.Len(enrollmentsCollection); got != 1 {
		t.Fatalf("expected 1 enrollment, got %d", got)
	}

	classrooms, err := repos.EnrollmentRepository.ListStudentClassrooms(ctx, "s-1")
	if err != nil {
		t.Fatalf("ListStudentClassrooms: %v", err)
	}
	if len(classrooms) != 1 || classrooms[0].ID != classroomID {
		t.Fatalf("student classroom listing wrong: %+v", classrooms)
	}
}

func TestJoinUnknownCode(t *testing.T) {
	_, repos := newTestRepos(t)

	_, err := repos.EnrollmentRepository.Join(context.Background(), "s-1", "Deniz", "deniz@example.com", "NOPE99")
	if !errors.Is(err, apperrors.ErrInvalidClassCode) {
		t.Fatalf("expected ErrInvalidClassCode, got %v", err)
	}
}

func TestListStudentClassroomsSkipsMissingClassroom(t *testing.T) {
	store, repos := newTestRepos(t)
	ctx := context.Background()

	classroomID := seedClassroom(t, store, models.Classroom{
		Name: "Math", TeacherID: "t-1", ClassCode: "AB12CD",
		CreatedAt: docstore.Now(), UpdatedAt: docstore.Now(), IsActive: true,
	})
	seedEnrollment(t, store, models.Enrollment{
		ClassroomID: classroomID, StudentID: "s-1", StudentName: "Deniz",
		EnrolledAt: docstore.Now(), Status: models.EnrollmentActive,
	})
	// A stale enrollment whose classroom document is gone.
	seedEnrollment(t, store, models.Enrollment{
		ClassroomID: "missing-classroom", StudentID: "s-1", StudentName: "Deniz",
		EnrolledAt: docstore.Now(), Status: models.EnrollmentActive,
	})

	classrooms, err := repos.EnrollmentRepository.ListStudentClassrooms(ctx, "s-1")
	if err != nil {
		t.Fatalf("ListStudentClassrooms: %v", err)
	}
	if len(classrooms) != 1 || classrooms[0].ID != classroomID {
		t.Fatalf("expected the surviving classroom only, got %+v", classrooms)
	}
}

func TestListByClassroomSortFallback(t *testing.T) {
	store, repos := newTestRepos(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, student := range []string{"s-old", "s-mid", "s-new"} {
		seedEnrollment(t, store, models.Enrollment{
			ClassroomID: "c-1", StudentID: student,
			EnrolledAt: docstore.At(base.Add(time.Duration(i) * time.Minute)),
			Status:     models.EnrollmentActive,
		})
	}
	seedEnrollment(t, store, models.Enrollment{
		ClassroomID: "c-1", StudentID: "s-gone",
		EnrolledAt: docstore.At(base), Status: models.EnrollmentInactive,
	})

	assertNewestFirst := func(t *testing.T) {
		t.Helper()
		enrollments, err := repos.EnrollmentRepository.ListByClassroom(ctx, "c-1")
		if err != nil {
			t.Fatalf("ListByClassroom: %v", err)
		}
		if len(enrollments) != 3 {
			t.Fatalf("got %d enrollments, want 3", len(enrollments))
		}
		for i, want := range []string{"s-new", "s-mid", "s-old"} {
			if enrollments[i].StudentID != want {
				t.Fatalf("position %d: got %q, want %q", i, enrollments[i].StudentID, want)
			}
		}
	}

	t.Run("with sort index", assertNewestFirst)

	store.DisableSortIndex(enrollmentsCollection, "enrolledAt")
	t.Run("index unavailable", assertNewestFirst)
}

func TestListByClassroomsEmptyInput(t *testing.T) {
	_, repos := newTestRepos(t)

	enrollments, err := repos.EnrollmentRepository.ListByClassrooms(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListByClassrooms: %v", err)
	}
	if len(enrollments) != 0 {
		t.Fatalf("expected empty result, got %d", len(enrollments))
	}
}

func TestDeactivateThenRejoin(t *testing.T) {
	store, repos := newTestRepos(t)
	ctx := context.Background()

	seedClassroom(t, store, models.Classroom{
		Name: "Math", TeacherID: "t-1", ClassCode: "AB12CD",
		CreatedAt: docstore.Now(), UpdatedAt: docstore.Now(), IsActive: true,
	})

	first, err := repos.EnrollmentRepository.Join(ctx, "s-1", "Deniz", "deniz@example.com", "AB12CD")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := repos.EnrollmentRepository.Deactivate(ctx, first.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	// Only active enrollments block a re-join; the inactive row stays.
	if _, err := repos.EnrollmentRepository.Join(ctx, "s-1", "Deniz", "deniz@example.com", "AB12CD"); err != nil {
		t.Fatalf("re-join after deactivate: %v", err)
	}
	if got := store.Len(enrollmentsCollection); got != 2 {
		t.Fatalf("expected 2 enrollment records, got %d", got)
	}
}
