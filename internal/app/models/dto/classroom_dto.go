package dto

import "github.com/derin/classpad/internal/app/models"

// CreateClassroomRequest is the payload for creating a classroom
type CreateClassroomRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100" example:"Algebra I"`
	Description string `json:"description" binding:"max=1000" example:"First-year algebra"`
}

// UpdateClassroomRequest is the payload for a partial classroom update.
// The join code, owner and timestamps are not accepted here.
type UpdateClassroomRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
}

// Update converts the request into the repository update type.
func (r *UpdateClassroomRequest) Update() models.ClassroomUpdate {
	return models.ClassroomUpdate{
		Name:        r.Name,
		Description: r.Description,
	}
}

// JoinClassroomRequest is the payload for joining a classroom by code
type JoinClassroomRequest struct {
	ClassCode string `json:"classCode" binding:"required,len=6" example:"AB12CD"`
}
