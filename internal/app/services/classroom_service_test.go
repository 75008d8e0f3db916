package services

import (
	"context"
	"errors"
	"testing"

	"github.com/derin/classpad/internal/app/models"
	"github.com/derin/classpad/internal/pkg/apperrors"
)

func TestCreateClassroomValidatesName(t *testing.T) {
	_, svcs := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		className string
		wantErr   bool
	}{
		{name: "valid", className: "Algebra I"},
		{name: "empty", className: "", wantErr: true},
		{name: "whitespace only", className: "   ", wantErr: true},
		{name: "single char", className: "A", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svcs.ClassroomService.CreateClassroom(ctx, "t-1", "Ms. Aydin", tt.className, "")
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrValidationFailed) {
					t.Fatalf("expected ErrValidationFailed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateClassroom: %v", err)
			}
		})
	}
}

func TestUpdateClassroomRequiresOwnership(t *testing.T) {
	_, svcs := newTestServices(t)
	ctx := context.Background()

	classroom := mustCreateClassroom(t, svcs.ClassroomService, "t-1", "Algebra I")
	name := "Algebra II"

	if _, err := svcs.ClassroomService.UpdateClassroom(ctx, "t-2", classroom.ID, models.ClassroomUpdate{Name: &name}); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	updated, err := svcs.ClassroomService.UpdateClassroom(ctx, "t-1", classroom.ID, models.ClassroomUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateClassroom: %v", err)
	}
	if updated.Name != "Algebra II" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
}

func TestArchiveClassroomRequiresOwnership(t *testing.T) {
	_, svcs := newTestServices(t)
	ctx := context.Background()

	classroom := mustCreateClassroom(t, svcs.ClassroomService, "t-1", "Algebra I")

	if err := svcs.ClassroomService.ArchiveClassroom(ctx, "t-2", classroom.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if err := svcs.ClassroomService.ArchiveClassroom(ctx, "t-1", classroom.ID); err != nil {
		t.Fatalf("ArchiveClassroom: %v", err)
	}

	// The freed code no longer resolves for joins.
	if _, err := svcs.ClassroomService.JoinClassroom(ctx, "s-1", "Deniz", "deniz@example.com", classroom.ClassCode); !errors.Is(err, apperrors.ErrInvalidClassCode) {
		t.Fatalf("expected ErrInvalidClassCode after archive, got %v", err)
	}

	classrooms, err := svcs.ClassroomService.ListTeacherClassrooms(ctx, "t-1")
	if err != nil {
		t.Fatalf("ListTeacherClassrooms: %v", err)
	}
	if len(classrooms) != 0 {
		t.Fatalf("archived classroom still listed: %+v", classrooms)
	}
}

func TestJoinThenListStudentClassrooms(t *testing.T) {
	_, svcs := newTestServices(t)
	ctx := context.Background()

	classroom := mustCreateClassroom(t, svcs.ClassroomService, "t-1", "Algebra I")
	mustJoin(t, svcs.ClassroomService, "s-1", classroom.ClassCode)

	classrooms, err := svcs.ClassroomService.ListStudentClassrooms(ctx, "s-1")
	if err != nil {
		t.Fatalf("ListStudentClassrooms: %v", err)
	}
	if len(classrooms) != 1 || classrooms[0].ID != classroom.ID {
		t.Fatalf("expected exactly the joined classroom, got %+v", classrooms)
	}

	if _, err := svcs.ClassroomService.JoinClassroom(ctx, "s-1", "Deniz", "deniz@example.com", classroom.ClassCode); !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}

	classrooms, err = svcs.ClassroomService.ListStudentClassrooms(ctx, "s-1")
	if err != nil {
		t.Fatalf("ListStudentClassrooms: %v", err)
	}
	if len(classrooms) != 1 {
		t.Fatalf("duplicate join changed the listing: %+v", classrooms)
	}
}

func TestListClassroomStudentsRequiresOwnership(t *testing.T) {
	_, svcs := newTestServices(t)
	ctx := context.Background()

	classroom := mustCreateClassroom(t, svcs.ClassroomService, "t-1", "Algebra I")
	mustJoin(t, svcs.ClassroomService, "s-1", classroom.ClassCode)

	if _, err := svcs.ClassroomService.ListClassroomStudents(ctx, "t-2", classroom.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	roster, err := svcs.ClassroomService.ListClassroomStudents(ctx, "t-1", classroom.ID)
	if err != nil {
		t.Fatalf("ListClassroomStudents: %v", err)
	}
	if len(roster) != 1 || roster[0].StudentID != "s-1" {
		t.Fatalf("roster wrong: %+v", roster)
	}
}
