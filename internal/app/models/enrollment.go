package models

import "github.com/derin/classpad/internal/docstore"

// EnrollmentStatus is the lifecycle state of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentActive   EnrollmentStatus = "active"
	EnrollmentInactive EnrollmentStatus = "inactive"
)

// Enrollment links a student to a classroom. For a given
// (classroomId, studentId) pair at most one enrollment is active.
// Enrollments are never hard-deleted.
type Enrollment struct {
	ID           string             `json:"id"`
	ClassroomID  string             `json:"classroomId"`
	StudentID    string             `json:"studentId"`
	StudentName  string             `json:"studentName"`
	StudentEmail string             `json:"studentEmail"`
	EnrolledAt   docstore.Timestamp `json:"enrolledAt"`
	Status       EnrollmentStatus   `json:"status"`
}
