package models

import "github.com/derin/classpad/internal/docstore"

// Classroom is a teacher-owned class that students join by code.
// Among classrooms with IsActive=true the join code is unique.
type Classroom struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	TeacherID   string             `json:"teacherId"`
	TeacherName string             `json:"teacherName"`
	ClassCode   string             `json:"classCode"`
	CreatedAt   docstore.Timestamp `json:"createdAt"`
	UpdatedAt   docstore.Timestamp `json:"updatedAt"`
	IsActive    bool               `json:"isActive"`
}

// ClassroomUpdate carries the mutable classroom fields. Identity, owner,
// code and creation time are not updatable and have no field here.
type ClassroomUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
