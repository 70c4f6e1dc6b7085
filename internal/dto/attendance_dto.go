package dto

import "time"

// SubjectAttendanceResponse is a subject row with its percentage and low flag.
type SubjectAttendanceResponse struct {
	SubjectName string `json:"subject_name"`
	SubjectCode string `json:"subject_code"`
	Present     int    `json:"present"`
	Absent      int    `json:"absent"`
	Pending     int    `json:"pending"`
	Leave       int    `json:"leave"`
	Event       int    `json:"event"`
	Total       int    `json:"total"`
	Percentage  int    `json:"percentage"`
	Low         bool   `json:"low"`
}

// AttendanceSummary is the overall figure folded from the per-subject table.
type AttendanceSummary struct {
	AttendedClasses int       `json:"attended_classes"`
	TotalClasses    int       `json:"total_classes"`
	PresentPercent  int       `json:"present_percent"`
	AbsentPercent   int       `json:"absent_percent"`
	RemainingSkips  int       `json:"remaining_skips"`
	Threshold       int       `json:"threshold"`
	Low             bool      `json:"low"`
	ComputedAt      time.Time `json:"computed_at"`
}

// AttendanceSummaryResult wraps a summary with its cache provenance.
type AttendanceSummaryResult struct {
	Summary  AttendanceSummary `json:"summary"`
	CacheHit bool              `json:"-"`
}

// AttendanceRecordResponse is one dated ledger entry.
type AttendanceRecordResponse struct {
	Date        string `json:"date"`
	Day         string `json:"day"`
	SubjectName string `json:"subject_name"`
	SubjectCode string `json:"subject_code"`
	Status      string `json:"status"`
}

// AttendanceRecordQuery filters the ledger.
type AttendanceRecordQuery struct {
	SubjectCode string `validate:"omitempty,max=32"`
	Status      string `validate:"omitempty,oneof=present absent leave event pending"`
}
