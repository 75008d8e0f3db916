package services

import (
	"context"
	"errors"
	"testing"

	"github.com/derin/classpad/internal/app/models"
	"github.com/derin/classpad/internal/pkg/apperrors"
)

func TestCreateAssignmentRequiresOwnership(t *testing.T) {
	_, svcs := newTestServices(t)
	ctx := context.Background()

	classroom := mustCreateClassroom(t, svcs.ClassroomService, "t-1", "Algebra I")

	_, err := svcs.AssignmentService.CreateAssignment(ctx, "t-2", classroom.ID, models.AssignmentDraft{Title: "Homework 1"})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestCreateAssignmentRequiresTitle(t *testing.T) {
	_, svcs := newTestServices(t)
	ctx := context.Background()

	classroom := mustCreateClassroom(t, svcs.ClassroomService, "t-1", "Algebra I")

	_, err := svcs.AssignmentService.CreateAssignment(ctx, "t-1", classroom.ID, models.AssignmentDraft{Title: "   "})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestSubmitAssignmentGates(t *testing.T) {
	_, svcs := newTestServices(t)
	ctx := context.Background()

	classroom := mustCreateClassroom(t, svcs.ClassroomService, "t-1", "Algebra I")
	published := mustPublishAssignment(t, svcs.AssignmentService, "t-1", classroom.ID, "Homework 1", nil)
	draft, err := svcs.AssignmentService.CreateAssignment(ctx, "t-1", classroom.ID, models.AssignmentDraft{Title: "Draft work"})
	if err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}
	mustJoin(t, svcs.ClassroomService, "s-1", classroom.ClassCode)

	tests := []struct {
		name         string
		studentID    string
		assignmentID string
		wantErr      error
	}{
		{name: "not enrolled", studentID: "s-outsider", assignmentID: published.ID, wantErr: apperrors.ErrNotEnrolled},
		{name: "draft assignment", studentID: "s-1", assignmentID: draft.ID, wantErr: apperrors.ErrPermissionDenied},
		{name: "unknown assignment", studentID: "s-1", assignmentID: "missing", wantErr: apperrors.ErrAssignmentNotFound},
		{name: "enrolled and published", studentID: "s-1", assignmentID: published.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svcs.AssignmentService.SubmitAssignment(ctx, tt.studentID, "Student", tt.assignmentID, models.SubmissionInput{})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SubmitAssignment: %v", err)
			}
		})
	}
}

func TestResubmitUpdatesInPlace(t *testing.T) {
	store, svcs := newTestServices(t)
	ctx := context.Background()

	classroom := mustCreateClassroom(t, svcs.ClassroomService, "t-1", "Algebra I")
	assignment := mustPublishAssignment(t, svcs.AssignmentService, "t-1", classroom.ID, "Homework 1", nil)
	mustJoin(t, svcs.ClassroomService, "s-1", classroom.ClassCode)

	first, err := svcs.AssignmentService.SubmitAssignment(ctx, "s-1", "Deniz", assignment.ID, models.SubmissionInput{Notes: "first"})
	if err != nil {
		t.Fatalf("SubmitAssignment: %v", err)
	}
	second, err := svcs.AssignmentService.SubmitAssignment(ctx, "s-1", "Deniz", assignment.ID, models.SubmissionInput{Notes: "second"})
	if err != nil {
		t.Fatalf("re-SubmitAssignment: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("re-submit created a new record: %s vs %s", second.ID, first.ID)
	}
	if second.Notes != "second" {
		t.Fatalf("notes not updated, got %q", second.Notes)
	}
	if got := store.Len("submissions"); got != 1 {
		t.Fatalf("expected 1 submission record, got %d", got)
	}
}

func TestGradeSubmission(t *testing.T) {
	_, svcs := newTestServices(t)
	ctx := context.Background()

	classroom := mustCreateClassroom(t, svcs.ClassroomService, "t-1", "Algebra I")
	maxPoints := 100
	assignment, err := svcs.AssignmentService.CreateAssignment(ctx, "t-1", classroom.ID, models.AssignmentDraft{
		Title: "Homework 1", MaxPoints: &maxPoints, Status: models.AssignmentPublished,
	})
	if err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}
	mustJoin(t, svcs.ClassroomService, "s-1", classroom.ClassCode)
	submission, err := svcs.AssignmentService.SubmitAssignment(ctx, "s-1", "Deniz", assignment.ID, models.SubmissionInput{})
	if err != nil {
		t.Fatalf("SubmitAssignment: %v", err)
	}

	if _, err := svcs.AssignmentService.GradeSubmission(ctx, "t-2", submission.ID, 90, "nope"); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for non-author, got %v", err)
	}
	if _, err := svcs.AssignmentService.GradeSubmission(ctx, "t-1", submission.ID, 150, "over"); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for grade over max, got %v", err)
	}

	graded, err := svcs.AssignmentService.GradeSubmission(ctx, "t-1", submission.ID, 87.5, "Good work")
	if err != nil {
		t.Fatalf("GradeSubmission: %v", err)
	}
	if graded.Status != models.SubmissionGraded || graded.Grade == nil || *graded.Grade != 87.5 {
		t.Fatalf("grading not applied: %+v", graded)
	}
	if graded.GradedBy != "t-1" || graded.GradedAt == nil {
		t.Fatalf("grading metadata missing: %+v", graded)
	}
}

func TestListAssignmentSubmissionsRequiresAuthorship(t *testing.T) {
	_, svcs := newTestServices(t)
	ctx := context.Background()

	classroom := mustCreateClassroom(t, svcs.ClassroomService, "t-1", "Algebra I")
	assignment := mustPublishAssignment(t, svcs.AssignmentService, "t-1", classroom.ID, "Homework 1", nil)

	if _, err := svcs.AssignmentService.ListAssignmentSubmissions(ctx, "t-2", assignment.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	submissions, err := svcs.AssignmentService.ListAssignmentSubmissions(ctx, "t-1", assignment.ID)
	if err != nil {
		t.Fatalf("ListAssignmentSubmissions: %v", err)
	}
	if len(submissions) != 0 {
		t.Fatalf("expected no submissions yet, got %d", len(submissions))
	}
}
