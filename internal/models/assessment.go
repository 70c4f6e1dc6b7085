package models

import "time"

// Assessment types.
const (
	AssessmentAssignment = "assignment"
	AssessmentLab        = "lab"
	AssessmentQuiz       = "quiz"
)

// AssessmentTask is an assignment, lab report or quiz. Status is derived at read time.
type AssessmentTask struct {
	ID            string    `gorm:"primaryKey;size:32" json:"id"`
	SubjectCode   string    `gorm:"size:32;index;not null" json:"subject_code"`
	Type          string    `gorm:"size:16;not null" json:"type"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	DueDate       time.Time `gorm:"index;not null" json:"due_date"`
	Submitted     bool      `gorm:"not null;default:false" json:"submitted"`
	Marks         *int      `json:"marks,omitempty"`
	TotalMarks    int       `gorm:"not null" json:"total_marks"`
	AttachmentURL string    `gorm:"size:512" json:"attachment_url"`
}

// IsPastDue returns true when the deadline has already passed.
func (a AssessmentTask) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}

// SemesterResult is the SGPA earned in a completed semester.
type SemesterResult struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Semester int     `gorm:"uniqueIndex;not null" json:"semester"`
	SGPA     float64 `gorm:"not null" json:"sgpa"`
}
