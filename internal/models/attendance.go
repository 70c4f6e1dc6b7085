package models

import (
	"fmt"
	"time"
)

// Attendance record states.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLeave   = "leave"
	AttendanceEvent   = "event"
	AttendancePending = "pending"
)

// SubjectAttendance holds per-subject session counts.
type SubjectAttendance struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SubjectName string `gorm:"size:255;not null" json:"subject_name"`
	SubjectCode string `gorm:"size:32;uniqueIndex;not null" json:"subject_code"`
	Present     int    `gorm:"not null" json:"present"`
	Absent      int    `gorm:"not null" json:"absent"`
	Pending     int    `gorm:"not null" json:"pending"`
	Leave       int    `gorm:"not null" json:"leave"`
	Event       int    `gorm:"not null" json:"event"`
	Total       int    `gorm:"not null" json:"total"`
}

// Validate checks that counts are non-negative and add up to the total.
func (s SubjectAttendance) Validate() error {
	for name, value := range map[string]int{
		"present": s.Present,
		"absent":  s.Absent,
		"pending": s.Pending,
		"leave":   s.Leave,
		"event":   s.Event,
		"total":   s.Total,
	} {
		if value < 0 {
			return fmt.Errorf("%s: %s count must not be negative", s.SubjectCode, name)
		}
	}

	sum := s.Present + s.Absent + s.Pending + s.Leave + s.Event
	if sum != s.Total {
		return fmt.Errorf("%s: total %d does not match session counts %d", s.SubjectCode, s.Total, sum)
	}
	return nil
}

// AttendanceRecord is one dated entry of the attendance ledger.
type AttendanceRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	SubjectName string    `gorm:"size:255" json:"subject_name"`
	SubjectCode string    `gorm:"size:32;index;not null" json:"subject_code"`
	Status      string    `gorm:"size:16;index;not null" json:"status"`
}

// IsAttendanceStatus reports whether value is a known ledger state.
func IsAttendanceStatus(value string) bool {
	switch value {
	case AttendancePresent, AttendanceAbsent, AttendanceLeave, AttendanceEvent, AttendancePending:
		return true
	default:
		return false
	}
}
