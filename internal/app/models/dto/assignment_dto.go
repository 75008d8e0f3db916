package dto

import (
	"github.com/derin/classpad/internal/app/models"
	"github.com/derin/classpad/internal/docstore"
)

// CreateAssignmentRequest is the payload for creating an assignment
type CreateAssignmentRequest struct {
	Title        string                      `json:"title" binding:"required,min=1,max=200" example:"Homework 1"`
	Description  string                      `json:"description" binding:"max=2000"`
	Instructions string                      `json:"instructions" binding:"max=5000"`
	DueDate      *docstore.Timestamp         `json:"dueDate,omitempty"`
	MaxPoints    *int                        `json:"maxPoints,omitempty" binding:"omitempty,min=0"`
	Materials    []models.AssignmentMaterial `json:"materials,omitempty"`
	Status       models.AssignmentStatus     `json:"status,omitempty" binding:"omitempty,oneof=draft published"`
}

// Draft converts the request into the service-layer draft type.
func (r *CreateAssignmentRequest) Draft() models.AssignmentDraft {
	return models.AssignmentDraft{
		Title:        r.Title,
		Description:  r.Description,
		Instructions: r.Instructions,
		DueDate:      r.DueDate,
		MaxPoints:    r.MaxPoints,
		Materials:    r.Materials,
		Status:       r.Status,
	}
}

// UpdateAssignmentRequest is the payload for a partial assignment update.
// Classroom, author and creation time are not accepted here.
type UpdateAssignmentRequest struct {
	Title        *string                      `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description  *string                      `json:"description,omitempty" binding:"omitempty,max=2000"`
	Instructions *string                      `json:"instructions,omitempty" binding:"omitempty,max=5000"`
	DueDate      *docstore.Timestamp          `json:"dueDate,omitempty"`
	MaxPoints    *int                         `json:"maxPoints,omitempty" binding:"omitempty,min=0"`
	Materials    *[]models.AssignmentMaterial `json:"materials,omitempty"`
	Status       *models.AssignmentStatus     `json:"status,omitempty" binding:"omitempty,oneof=draft published closed"`
}

// Update converts the request into the repository update type.
func (r *UpdateAssignmentRequest) Update() models.AssignmentUpdate {
	return models.AssignmentUpdate{
		Title:        r.Title,
		Description:  r.Description,
		Instructions: r.Instructions,
		DueDate:      r.DueDate,
		MaxPoints:    r.MaxPoints,
		Materials:    r.Materials,
		Status:       r.Status,
	}
}
