package service

import (
	"time"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
)

// AttendanceThreshold is the minimum attendance percentage required.
const AttendanceThreshold = 75

// Percentage returns round(part/total*100) with halves rounded up, or 0 when total is 0.
func Percentage(part, total int) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	return (part*200 + total) / (2 * total)
}

// IsLow reports whether an attendance percentage is below the threshold.
func IsLow(percentage int) bool {
	return percentage < AttendanceThreshold
}

// RemainingSkips is the number of further absences that keep
// attended/(total+skips) at or above the threshold: max(0, floor(attended/0.75 - total)).
func RemainingSkips(attended, total int) int {
	if attended < 0 || total < 0 {
		return 0
	}
	numerator := attended*100 - AttendanceThreshold*total
	if numerator <= 0 {
		return 0
	}
	return numerator / AttendanceThreshold
}

// NewSubjectAttendanceResponse annotates a subject row with its percentage and low flag.
func NewSubjectAttendanceResponse(subject models.SubjectAttendance) dto.SubjectAttendanceResponse {
	pct := Percentage(subject.Present, subject.Total)
	return dto.SubjectAttendanceResponse{
		SubjectName: subject.SubjectName,
		SubjectCode: subject.SubjectCode,
		Present:     subject.Present,
		Absent:      subject.Absent,
		Pending:     subject.Pending,
		Leave:       subject.Leave,
		Event:       subject.Event,
		Total:       subject.Total,
		Percentage:  pct,
		Low:         IsLow(pct),
	}
}

// FoldAttendance computes the overall summary strictly from the per-subject table.
func FoldAttendance(subjects []models.SubjectAttendance, now time.Time) dto.AttendanceSummary {
	var present, absent, total int
	for _, subject := range subjects {
		present += subject.Present
		absent += subject.Absent
		total += subject.Total
	}

	pct := Percentage(present, total)
	return dto.AttendanceSummary{
		AttendedClasses: present,
		TotalClasses:    total,
		PresentPercent:  pct,
		AbsentPercent:   Percentage(absent, total),
		RemainingSkips:  RemainingSkips(present, total),
		Threshold:       AttendanceThreshold,
		Low:             IsLow(pct),
		ComputedAt:      now,
	}
}
