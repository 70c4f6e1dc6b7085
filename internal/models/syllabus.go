package models

import "gorm.io/datatypes"

// SyllabusTopic is a single topic of a module.
type SyllabusTopic struct {
	Name      string `json:"name"`
	IsCovered bool   `json:"is_covered"`
}

// SyllabusModule groups topics of a subject with an authored completion percentage.
type SyllabusModule struct {
	ID          uint                               `gorm:"primaryKey" json:"id"`
	SubjectCode string                             `gorm:"size:32;index;not null" json:"subject_code"`
	Name        string                             `gorm:"size:255;not null" json:"name"`
	Completion  int                                `gorm:"not null" json:"completion"`
	Position    int                                `gorm:"not null;default:0" json:"position"`
	Topics      datatypes.JSONSlice[SyllabusTopic] `json:"topics"`
}
