package dto

// DigitalIDResponse is the student's digital identity card.
type DigitalIDResponse struct {
	Name          string `json:"name"`
	StudentNumber string `json:"student_number"`
	Program       string `json:"program"`
	Department    string `json:"department"`
	School        string `json:"school"`
	AcademicYear  string `json:"academic_year"`
	ProgramStatus string `json:"program_status"`
	AvatarURL     string `json:"avatar_url"`
	QRPayload     string `json:"qr_payload"`
}
