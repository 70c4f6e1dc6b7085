package models

import "time"

// Address is a postal address stored inline on the profile.
type Address struct {
	Line       string `gorm:"size:255" json:"line"`
	City       string `gorm:"size:128" json:"city"`
	State      string `gorm:"size:128" json:"state"`
	PostalCode string `gorm:"size:16" json:"postal_code"`
}

// StudentProfile is the single shared identity record of a student.
type StudentProfile struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	StudentNumber         string    `gorm:"size:32;uniqueIndex;not null" json:"student_number"`
	Name                  string    `gorm:"size:255;not null" json:"name"`
	Email                 string    `gorm:"size:255" json:"email"`
	Phone                 string    `gorm:"size:32" json:"phone"`
	AvatarURL             string    `gorm:"size:512" json:"avatar_url"`
	Program               string    `gorm:"size:255" json:"program"`
	Department            string    `gorm:"size:255" json:"department"`
	School                string    `gorm:"size:64" json:"school"`
	PlanCode              string    `gorm:"size:32" json:"plan_code"`
	AcademicYear          string    `gorm:"size:32" json:"academic_year"`
	Term                  string    `gorm:"size:16" json:"term"`
	Semester              string    `gorm:"size:16" json:"semester"`
	ProgramStatus         string    `gorm:"size:16" json:"program_status"`
	EffectiveDate         string    `gorm:"size:16" json:"effective_date"`
	CGPA                  float64   `json:"cgpa"`
	CurrentSemester       int       `json:"current_semester"`
	FatherName            string    `gorm:"size:255" json:"father_name"`
	FatherMobile          string    `gorm:"size:32" json:"father_mobile"`
	MotherName            string    `gorm:"size:255" json:"mother_name"`
	PermanentAddress      Address   `gorm:"embedded;embeddedPrefix:permanent_" json:"permanent_address"`
	CorrespondenceAddress Address   `gorm:"embedded;embeddedPrefix:correspondence_" json:"correspondence_address"`
	StudentPhoto          string    `gorm:"type:text" json:"student_photo,omitempty"`
	FatherPhoto           string    `gorm:"type:text" json:"father_photo,omitempty"`
	MotherPhoto           string    `gorm:"type:text" json:"mother_photo,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// FirstName returns the first word of the student's name.
func (p StudentProfile) FirstName() string {
	for i, r := range p.Name {
		if r == ' ' {
			return p.Name[:i]
		}
	}
	return p.Name
}
