package dto

import "time"

// AssessmentResponse is an assessment task annotated against the request instant.
type AssessmentResponse struct {
	ID            string    `json:"id"`
	SubjectCode   string    `json:"subject_code"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	DueDate       time.Time `json:"due_date"`
	Status        string    `json:"status"`
	Submitted     bool      `json:"submitted"`
	Marks         *int      `json:"marks"`
	TotalMarks    int       `json:"total_marks"`
	AttachmentURL string    `json:"attachment_url"`
	Overdue       bool      `json:"overdue"`
	Label         string    `json:"label,omitempty"`
	DaysLeft      int       `json:"days_left"`
	DaysLeftLabel string    `json:"days_left_label"`
	TimeLeftLabel string    `json:"time_left_label"`
	Urgency       string    `json:"urgency"`
}

// AssessmentQuery filters the assessment list.
type AssessmentQuery struct {
	Filter      string `validate:"omitempty,oneof=all pending submitted graded"`
	SubjectCode string `validate:"omitempty,max=32"`
}

// DeadlineResponse is an upcoming, not yet submitted task.
type DeadlineResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	SubjectCode   string    `json:"subject_code"`
	DueDate       time.Time `json:"due_date"`
	Urgency       string    `json:"urgency"`
	TimeLeftLabel string    `json:"time_left_label"`
}

// EligibilityResponse reports the hall-ticket gate.
type EligibilityResponse struct {
	Eligible          bool   `json:"eligible"`
	AttendancePercent int    `json:"attendance_percent"`
	Threshold         int    `json:"threshold"`
	Shortfall         int    `json:"shortfall"`
	Message           string `json:"message,omitempty"`
}

// SemesterResultResponse is one completed semester.
type SemesterResultResponse struct {
	Semester int     `json:"semester"`
	SGPA     float64 `json:"sgpa"`
}

// GPATrend compares the last two semesters.
type GPATrend struct {
	Latest   float64 `json:"latest"`
	Previous float64 `json:"previous"`
	Delta    float64 `json:"delta"`
}

// AcademicsOverviewResponse summarises the academics area.
type AcademicsOverviewResponse struct {
	CGPA            float64                  `json:"cgpa"`
	CurrentSemester int                      `json:"current_semester"`
	Trend           GPATrend                 `json:"trend"`
	History         []SemesterResultResponse `json:"history"`
	Eligibility     EligibilityResponse      `json:"eligibility"`
	Exams           []ExamSlotResponse       `json:"exams"`
	PendingCount    int                      `json:"pending_count"`
	OverdueCount    int                      `json:"overdue_count"`
}
