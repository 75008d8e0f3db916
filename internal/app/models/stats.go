package models

// ClassroomStats are the aggregate counters shown on a classroom card.
// PendingSubmissions and GradedSubmissions are reported as zero until
// submission counting ships; see the stats service.
type ClassroomStats struct {
	TotalStudents      int `json:"totalStudents"`
	TotalAssignments   int `json:"totalAssignments"`
	PendingSubmissions int `json:"pendingSubmissions"`
	GradedSubmissions  int `json:"gradedSubmissions"`
}

// StudentDashboardStats summarize a student's standing across all of
// their enrolled classrooms.
type StudentDashboardStats struct {
	TotalClasses         int `json:"totalClasses"`
	PendingAssignments   int `json:"pendingAssignments"`
	CompletedAssignments int `json:"completedAssignments"`
	TotalClassmates      int `json:"totalClassmates"`
}

// ClassroomStudent is a deduplicated roster row across a teacher's
// classrooms.
type ClassroomStudent struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ClassroomID   string `json:"classroomId"`
	ClassroomName string `json:"classroomName"`
}
