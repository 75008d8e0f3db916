package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/derin/classpad/internal/app/models"
	"github.com/derin/classpad/internal/docstore"
	"github.com/derin/classpad/internal/docstore/memstore"
)

func seedSubmission(t *testing.T, store *memstore.Store, s models.Submission) string {
	t.Helper()
	data, err := docData(&s)
	if err != nil {
		t.Fatalf("encode submission: %v", err)
	}
	id, err := store.Collection(submissionsCollection).Insert(context.Background(), data)
	if err != nil {
		t.Fatalf("seed submission: %v", err)
	}
	return id
}

func TestSubmitAndResubmitKeepOneRecord(t *testing.T) {
	store, repos := newTestRepos(t)
	ctx := context.Background()

	first, err := repos.SubmissionRepository.Submit(ctx, "a-1", "s-1", "Deniz", models.SubmissionInput{
		Notes: "first try",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if first.Status != models.SubmissionSubmitted {
		t.Fatalf("status %q, want submitted", first.Status)
	}
	if first.Files == nil {
		t.Fatal("files should be an empty slice, not nil")
	}

	notes := "second try"
	if err := repos.SubmissionRepository.Update(ctx, first.ID, models.SubmissionUpdate{Notes: &notes}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if got := store.Len(submissionsCollection); got != 1 {
		t.Fatalf("expected 1 submission record, got %d", got)
	}

	got, err := repos.SubmissionRepository.GetStudentSubmission(ctx, "a-1", "s-1")
	if err != nil {
		t.Fatalf("GetStudentSubmission: %v", err)
	}
	if got == nil {
		t.Fatal("submission missing after update")
	}
	if got.ID != first.ID || got.Notes != "second try" {
		t.Fatalf("re-submission did not update in place: %+v", got)
	}
	if got.AssignmentID != "a-1" || got.StudentID != "s-1" {
		t.Fatal("immutable binding changed by update")
	}
}

func TestGetStudentSubmissionMissing(t *testing.T) {
	_, repos := newTestRepos(t)

	got, err := repos.SubmissionRepository.GetStudentSubmission(context.Background(), "a-1", "s-404")
	if err != nil {
		t.Fatalf("GetStudentSubmission: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil submission, got %+v", got)
	}
}

func TestGradeSubmission(t *testing.T) {
	_, repos := newTestRepos(t)
	ctx := context.Background()

	created, err := repos.SubmissionRepository.Submit(ctx, "a-1", "s-1", "Deniz", models.SubmissionInput{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	grade := 87.5
	feedback := "Good work"
	status := models.SubmissionGraded
	gradedAt := docstore.Now()
	gradedBy := "t-1"
	err = repos.SubmissionRepository.Update(ctx, created.ID, models.SubmissionUpdate{
		Grade: &grade, Feedback: &feedback, Status: &status,
		GradedAt: &gradedAt, GradedBy: &gradedBy,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repos.SubmissionRepository.GetStudentSubmission(ctx, "a-1", "s-1")
	if err != nil {
		t.Fatalf("GetStudentSubmission: %v", err)
	}
	if got.Grade == nil || *got.Grade != 87.5 {
		t.Fatalf("grade not applied: %+v", got.Grade)
	}
	if got.Status != models.SubmissionGraded || got.Feedback != "Good work" || got.GradedBy != "t-1" {
		t.Fatalf("grading fields not applied: %+v", got)
	}
}

func TestListByAssignmentNewestFirst(t *testing.T) {
	store, repos := newTestRepos(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, student := range []string{"s-old", "s-mid", "s-new"} {
		seedSubmission(t, store, models.Submission{
			AssignmentID: "a-1", StudentID: student,
			SubmittedAt: docstore.At(base.Add(time.Duration(i) * time.Minute)),
			Status:      models.SubmissionSubmitted,
		})
	}

	submissions, err := repos.SubmissionRepository.ListByAssignment(ctx, "a-1")
	if err != nil {
		t.Fatalf("ListByAssignment: %v", err)
	}
	if len(submissions) != 3 {
		t.Fatalf("got %d submissions, want 3", len(submissions))
	}
	for i, want := range []string{"s-new", "s-mid", "s-old"} {
		if submissions[i].StudentID != want {
			t.Fatalf("position %d: got %q, want %q", i, submissions[i].StudentID, want)
		}
	}
}
