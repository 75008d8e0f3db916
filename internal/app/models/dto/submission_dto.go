package dto

import "github.com/derin/classpad/internal/app/models"

// SubmitAssignmentRequest is the payload for submitting work. The same
// payload re-submitted replaces the previous submission.
type SubmitAssignmentRequest struct {
	Files []models.SubmissionFile `json:"files,omitempty"`
	Notes string                  `json:"textSubmission,omitempty" binding:"max=20000"`
}

// Input converts the request into the service-layer input type.
func (r *SubmitAssignmentRequest) Input() models.SubmissionInput {
	return models.SubmissionInput{
		Files: r.Files,
		Notes: r.Notes,
	}
}

// GradeSubmissionRequest is the payload for grading a submission
type GradeSubmissionRequest struct {
	Grade    float64 `json:"grade" binding:"min=0" example:"87.5"`
	Feedback string  `json:"feedback" binding:"max=5000" example:"Good work"`
}
