package models

import "time"

// Session lifecycle states.
const (
	SessionStatusUpcoming  = "upcoming"
	SessionStatusOngoing   = "ongoing"
	SessionStatusCompleted = "completed"
)

// ClassSession is one entry of today's timetable.
type ClassSession struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	SubjectName      string `gorm:"size:255;not null" json:"subject_name"`
	SubjectCode      string `gorm:"size:32;index;not null" json:"subject_code"`
	TimeRange        string `gorm:"size:64;not null" json:"time_range"`
	Room             string `gorm:"size:64" json:"room"`
	Instructor       string `gorm:"size:128" json:"instructor"`
	ConfiguredStatus string `gorm:"size:16" json:"configured_status"`
	AttendanceMarked bool   `gorm:"not null;default:false" json:"attendance_marked"`
	Position         int    `gorm:"not null;default:0" json:"position"`
}

// ExamSlot is a scheduled end-semester examination.
type ExamSlot struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SubjectCode string    `gorm:"size:32;index;not null" json:"subject_code"`
	SubjectName string    `gorm:"size:255" json:"subject_name"`
	Date        time.Time `gorm:"not null" json:"date"`
	Time        string    `gorm:"size:32" json:"time"`
	Room        string    `gorm:"size:32" json:"room"`
	Building    string    `gorm:"size:64" json:"building"`
}
