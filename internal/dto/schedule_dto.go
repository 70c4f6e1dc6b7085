package dto

import "time"

// ClassSessionResponse is a timetable entry with its time-relative state derived for the request instant.
type ClassSessionResponse struct {
	ID               uint    `json:"id"`
	SubjectName      string  `json:"subject_name"`
	SubjectCode      string  `json:"subject_code"`
	TimeRange        string  `json:"time_range"`
	Room             string  `json:"room"`
	Instructor       string  `json:"instructor"`
	Status           string  `json:"status"`
	AttendanceMarked bool    `json:"attendance_marked"`
	Progress         float64 `json:"progress"`
	ProgressPercent  int     `json:"progress_percent"`
	RemainingLabel   string  `json:"remaining_label"`
	ValidTimeRange   bool    `json:"valid_time_range"`
}

// ScheduleResponse is today's classified timetable.
type ScheduleResponse struct {
	Date        string                 `json:"date"`
	Sessions    []ClassSessionResponse `json:"sessions"`
	Current     *ClassSessionResponse  `json:"current,omitempty"`
	Next        *ClassSessionResponse  `json:"next,omitempty"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// ExamSlotResponse is a scheduled examination.
type ExamSlotResponse struct {
	SubjectCode string `json:"subject_code"`
	SubjectName string `json:"subject_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Room        string `json:"room"`
	Building    string `json:"building"`
}

// LiveScheduleFrame is pushed over the live schedule stream.
type LiveScheduleFrame struct {
	Type     string                `json:"type"`
	Current  *ClassSessionResponse `json:"current,omitempty"`
	Schedule *ScheduleResponse     `json:"schedule,omitempty"`
	SentAt   time.Time             `json:"sent_at"`
}
