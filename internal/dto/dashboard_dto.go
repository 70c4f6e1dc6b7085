package dto

import "time"

// StudentSummary is the identity strip shown on the dashboard.
type StudentSummary struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	FirstName     string `json:"first_name"`
	StudentNumber string `json:"student_number"`
	Program       string `json:"program"`
	AvatarURL     string `json:"avatar_url"`
}

// DashboardResponse aggregates the home screen.
type DashboardResponse struct {
	Greeting           string              `json:"greeting"`
	Student            StudentSummary      `json:"student"`
	Schedule           ScheduleResponse    `json:"schedule"`
	Attendance         AttendanceSummary   `json:"attendance"`
	Deadlines          []DeadlineResponse  `json:"deadlines"`
	NewNotices         int64               `json:"new_notices"`
	PendingAssessments int                 `json:"pending_assessments"`
	FeesDue            int64               `json:"fees_due"`
	Eligibility        EligibilityResponse `json:"eligibility"`
	GeneratedAt        time.Time           `json:"generated_at"`
}
