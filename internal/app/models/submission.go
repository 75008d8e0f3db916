package models

import "github.com/derin/classpad/internal/docstore"

// SubmissionStatus is the grading lifecycle state of a submission.
type SubmissionStatus string

const (
	SubmissionDraft     SubmissionStatus = "draft"
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
	SubmissionReturned  SubmissionStatus = "returned"
)

// SubmissionFile is uploaded-work metadata; the upload itself happens
// outside this layer.
type SubmissionFile struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	URL        string             `json:"url"`
	Size       int64              `json:"size"`
	MimeType   string             `json:"type"`
	UploadedAt docstore.Timestamp `json:"uploadedAt"`
}

// Submission is a student's work for an assignment. At most one submission
// exists per (assignmentId, studentId); re-submission updates the record.
type Submission struct {
	ID           string              `json:"id"`
	AssignmentID string              `json:"assignmentId"`
	StudentID    string              `json:"studentId"`
	StudentName  string              `json:"studentName"`
	Files        []SubmissionFile    `json:"files"`
	Notes        string              `json:"textSubmission,omitempty"`
	SubmittedAt  docstore.Timestamp  `json:"submittedAt"`
	Status       SubmissionStatus    `json:"status"`
	Grade        *float64            `json:"grade,omitempty"`
	Feedback     string              `json:"feedback,omitempty"`
	GradedAt     *docstore.Timestamp `json:"gradedAt,omitempty"`
	GradedBy     string              `json:"gradedBy,omitempty"`
}

// SubmissionInput carries the student-supplied fields of a submission.
type SubmissionInput struct {
	Files []SubmissionFile `json:"files"`
	Notes string           `json:"textSubmission,omitempty"`
}

// SubmissionUpdate carries the mutable submission fields; used both for
// student re-submission and for teacher grading. Identity and the
// (assignment, student) binding are immutable and absent.
type SubmissionUpdate struct {
	Files    *[]SubmissionFile   `json:"files,omitempty"`
	Notes    *string             `json:"textSubmission,omitempty"`
	Status   *SubmissionStatus   `json:"status,omitempty"`
	Grade    *float64            `json:"grade,omitempty"`
	Feedback *string             `json:"feedback,omitempty"`
	GradedAt *docstore.Timestamp `json:"gradedAt,omitempty"`
	GradedBy *string             `json:"gradedBy,omitempty"`
}
