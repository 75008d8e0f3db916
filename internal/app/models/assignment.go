package models

import "github.com/derin/classpad/internal/docstore"

// AssignmentStatus is the publication state of an assignment.
// Transitions run draft -> published -> closed.
type AssignmentStatus string

const (
	AssignmentDraftStatus AssignmentStatus = "draft"
	AssignmentPublished   AssignmentStatus = "published"
	AssignmentClosed      AssignmentStatus = "closed"
)

// MaterialKind classifies an attached assignment material.
type MaterialKind string

const (
	MaterialLink     MaterialKind = "link"
	MaterialFile     MaterialKind = "file"
	MaterialVideo    MaterialKind = "video"
	MaterialDocument MaterialKind = "document"
)

// AssignmentMaterial is already-uploaded reference material; only URL
// metadata travels through this layer.
type AssignmentMaterial struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Kind MaterialKind `json:"type"`
	URL  string       `json:"url"`
	Size *int64       `json:"size,omitempty"`
}

// Assignment is classroom work authored by the owning teacher. A draft
// assignment is invisible to student pending-work queries.
type Assignment struct {
	ID           string               `json:"id"`
	ClassroomID  string               `json:"classroomId"`
	TeacherID    string               `json:"teacherId"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Instructions string               `json:"instructions,omitempty"`
	DueDate      *docstore.Timestamp  `json:"dueDate,omitempty"`
	MaxPoints    *int                 `json:"maxPoints,omitempty"`
	Materials    []AssignmentMaterial `json:"materials"`
	CreatedAt    docstore.Timestamp   `json:"createdAt"`
	UpdatedAt    docstore.Timestamp   `json:"updatedAt"`
	Status       AssignmentStatus     `json:"status"`
}

// AssignmentDraft carries the caller-supplied fields for a new assignment.
type AssignmentDraft struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Instructions string               `json:"instructions,omitempty"`
	DueDate      *docstore.Timestamp  `json:"dueDate,omitempty"`
	MaxPoints    *int                 `json:"maxPoints,omitempty"`
	Materials    []AssignmentMaterial `json:"materials"`
	Status       AssignmentStatus     `json:"status"`
}

// AssignmentUpdate carries the mutable assignment fields. Identity,
// classroom, author and creation time are immutable and intentionally
// absent, so an update cannot touch them.
type AssignmentUpdate struct {
	Title        *string               `json:"title,omitempty"`
	Description  *string               `json:"description,omitempty"`
	Instructions *string               `json:"instructions,omitempty"`
	DueDate      *docstore.Timestamp   `json:"dueDate,omitempty"`
	MaxPoints    *int                  `json:"maxPoints,omitempty"`
	Materials    *[]AssignmentMaterial `json:"materials,omitempty"`
	Status       *AssignmentStatus     `json:"status,omitempty"`
}
