package models

// Fee categories.
const (
	FeeTuition     = "tuition"
	FeeActivity    = "activity"
	FeeExam        = "exam"
	FeeLanguage    = "language"
	FeeFine        = "fine"
	FeeScholarship = "scholarship"
)

// FeeLineItem is one component of the fee schedule. Amounts are whole rupees.
type FeeLineItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Category string `gorm:"size:32;uniqueIndex;not null" json:"category"`
	Label    string `gorm:"size:128" json:"label"`
	Amount   int64  `gorm:"not null" json:"amount"`
	Optional bool   `gorm:"not null;default:false" json:"optional"`
}
