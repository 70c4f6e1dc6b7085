package service

import (
	"fmt"
	"math"
	"time"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// Urgency tiers.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// Derived assessment states.
const (
	AssessmentStatusPending   = "pending"
	AssessmentStatusSubmitted = "submitted"
	AssessmentStatusOverdue   = "overdue"
	AssessmentStatusGraded    = "graded"
)

// OverdueLabel marks a task past its due date that was never submitted.
const OverdueLabel = "OVERDUE"

const day = 24 * time.Hour

// DeadlineAnnotation is the time-relative state of a due date at an instant.
type DeadlineAnnotation struct {
	Remaining     time.Duration
	TimeLeftLabel string
	Overdue       bool
	Label         string
	DaysLeft      int
	DaysLeftLabel string
	Urgency       string
}

// AnnotateDeadline derives every time-relative field of a due date from now.
// Urgency is computed rather than authored: overdue or under a day is high,
// under three days is medium, anything later is low.
func AnnotateDeadline(due time.Time, submitted bool, now time.Time) DeadlineAnnotation {
	remaining := due.Sub(now)
	overdue := now.After(due) && !submitted
	daysLeft := int(math.Ceil(float64(remaining) / float64(day)))

	annotation := DeadlineAnnotation{
		Remaining:     remaining,
		TimeLeftLabel: FormatTimeLeft(remaining),
		Overdue:       overdue,
		DaysLeft:      daysLeft,
		DaysLeftLabel: FormatDaysLeft(daysLeft),
		Urgency:       urgencyFor(remaining, overdue, submitted),
	}
	if overdue {
		annotation.Label = OverdueLabel
	}
	return annotation
}

// FormatTimeLeft renders whole hours under a day and whole days otherwise; negative durations render empty.
func FormatTimeLeft(remaining time.Duration) string {
	if remaining < 0 {
		return ""
	}
	if remaining < day {
		return pluralize(int(remaining/time.Hour), "hr", "hrs")
	}
	return pluralize(int(remaining/day), "day", "days")
}

// FormatDaysLeft renders a signed day count as "N days left" or "N days ago".
func FormatDaysLeft(daysLeft int) string {
	if daysLeft < 0 {
		return pluralize(-daysLeft, "day", "days") + " ago"
	}
	return pluralize(daysLeft, "day", "days") + " left"
}

func urgencyFor(remaining time.Duration, overdue, submitted bool) string {
	switch {
	case submitted:
		return UrgencyLow
	case overdue || remaining < day:
		return UrgencyHigh
	case remaining < 3*day:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// AssessmentStatus derives the status of a task; it is never stored.
func AssessmentStatus(task models.AssessmentTask, now time.Time) string {
	switch {
	case task.Marks != nil:
		return AssessmentStatusGraded
	case task.Submitted:
		return AssessmentStatusSubmitted
	case task.IsPastDue(now):
		return AssessmentStatusOverdue
	default:
		return AssessmentStatusPending
	}
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
