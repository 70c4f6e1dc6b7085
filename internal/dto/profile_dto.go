package dto

import "time"

// AddressPayload is a postal address.
type AddressPayload struct {
	Line       string `json:"line" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=128"`
	State      string `json:"state" validate:"required,max=128"`
	PostalCode string `json:"postal_code" validate:"required,len=6,numeric"`
}

// ProfileResponse is the shared identity record.
type ProfileResponse struct {
	ID                    uint           `json:"id"`
	StudentNumber         string         `json:"student_number"`
	Name                  string         `json:"name"`
	Email                 string         `json:"email"`
	Phone                 string         `json:"phone"`
	AvatarURL             string         `json:"avatar_url"`
	Program               string         `json:"program"`
	Department            string         `json:"department"`
	School                string         `json:"school"`
	PlanCode              string         `json:"plan_code"`
	AcademicYear          string         `json:"academic_year"`
	Term                  string         `json:"term"`
	Semester              string         `json:"semester"`
	ProgramStatus         string         `json:"program_status"`
	EffectiveDate         string         `json:"effective_date"`
	CGPA                  float64        `json:"cgpa"`
	CurrentSemester       int            `json:"current_semester"`
	FatherName            string         `json:"father_name"`
	FatherMobile          string         `json:"father_mobile"`
	MotherName            string         `json:"mother_name"`
	PermanentAddress      AddressPayload `json:"permanent_address"`
	CorrespondenceAddress AddressPayload `json:"correspondence_address"`
	StudentPhoto          string         `json:"student_photo,omitempty"`
	FatherPhoto           string         `json:"father_photo,omitempty"`
	MotherPhoto           string         `json:"mother_photo,omitempty"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

// ProfileUpdateRequest is a merge update; nil fields are left untouched and
// text fields that are sent may not be blank.
type ProfileUpdateRequest struct {
	Name                  *string         `json:"name" validate:"omitnil,required,min=2,max=255"`
	Phone                 *string         `json:"phone" validate:"omitnil,required,min=10,max=15,numeric"`
	Email                 *string         `json:"email" validate:"omitnil,required,email"`
	FatherName            *string         `json:"father_name" validate:"omitnil,required,max=255"`
	FatherMobile          *string         `json:"father_mobile" validate:"omitnil,required,min=10,max=15,numeric"`
	MotherName            *string         `json:"mother_name" validate:"omitnil,required,max=255"`
	PermanentAddress      *AddressPayload `json:"permanent_address" validate:"omitempty"`
	CorrespondenceAddress *AddressPayload `json:"correspondence_address" validate:"omitempty"`
	SameAsPermanent       bool            `json:"same_as_permanent"`
	StudentPhoto          *string         `json:"student_photo" validate:"omitempty,datauri"`
	FatherPhoto           *string         `json:"father_photo" validate:"omitempty,datauri"`
	MotherPhoto           *string         `json:"mother_photo" validate:"omitempty,datauri"`
}

// ProfileUpdateResponse reports which fields changed.
type ProfileUpdateResponse struct {
	Profile       ProfileResponse `json:"profile"`
	ChangedFields []string        `json:"changed_fields"`
}

// PhotoPreviewResponse is a resized, in-memory image for the profile form.
type PhotoPreviewResponse struct {
	Kind     string `json:"kind"`
	MimeType string `json:"mime_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	DataURI  string `json:"data_uri"`
}
