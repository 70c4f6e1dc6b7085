package service

import (
	"fmt"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
)

// FeeSchedule holds the amount per fee category in whole rupees.
type FeeSchedule struct {
	Tuition     int64
	Activity    int64
	Exam        int64
	Language    int64
	Fine        int64
	Scholarship int64
	labels      map[string]string
}

// NewFeeSchedule builds a schedule from stored line items.
func NewFeeSchedule(items []models.FeeLineItem) FeeSchedule {
	schedule := FeeSchedule{labels: map[string]string{}}
	for _, item := range items {
		schedule.labels[item.Category] = item.Label
		switch item.Category {
		case models.FeeTuition:
			schedule.Tuition = item.Amount
		case models.FeeActivity:
			schedule.Activity = item.Amount
		case models.FeeExam:
			schedule.Exam = item.Amount
		case models.FeeLanguage:
			schedule.Language = item.Amount
		case models.FeeFine:
			schedule.Fine = item.Amount
		case models.FeeScholarship:
			schedule.Scholarship = item.Amount
		}
	}
	return schedule
}

// TuitionFor returns the full rate, or half of it when paying by installment.
func (f FeeSchedule) TuitionFor(full bool) int64 {
	if full {
		return f.Tuition
	}
	return f.Tuition / 2
}

// CalculateFees computes the payable total:
// max(0, bundle + fine - scholarship), where the bundle is tuition + activity + exam
// (+ language when elected) if selected and zero otherwise.
func CalculateFees(schedule FeeSchedule, selection dto.FeeSelection) dto.FeeQuoteResponse {
	tuition := schedule.TuitionFor(selection.FullTuition)

	var bundle int64
	if selection.Bundle {
		bundle = tuition + schedule.Activity + schedule.Exam
		if selection.Language {
			bundle += schedule.Language
		}
	}

	var fine int64
	if selection.Fine {
		fine = schedule.Fine
	}

	total := bundle + fine - schedule.Scholarship
	if total < 0 {
		total = 0
	}

	lines := []dto.FeeLineResponse{
		{Category: models.FeeTuition, Label: schedule.label(models.FeeTuition), Amount: tuition, Selected: selection.Bundle},
		{Category: models.FeeActivity, Label: schedule.label(models.FeeActivity), Amount: schedule.Activity, Selected: selection.Bundle},
		{Category: models.FeeExam, Label: schedule.label(models.FeeExam), Amount: schedule.Exam, Selected: selection.Bundle},
		{Category: models.FeeLanguage, Label: schedule.label(models.FeeLanguage), Amount: schedule.Language, Selected: selection.Bundle && selection.Language},
		{Category: models.FeeFine, Label: schedule.label(models.FeeFine), Amount: schedule.Fine, Selected: selection.Fine},
		{Category: models.FeeScholarship, Label: schedule.label(models.FeeScholarship), Amount: -schedule.Scholarship, Selected: true},
	}

	return dto.FeeQuoteResponse{
		Selection:      selection,
		Lines:          lines,
		Tuition:        tuition,
		BundleSubtotal: bundle,
		Fine:           fine,
		Scholarship:    schedule.Scholarship,
		Total:          total,
		Currency:       "INR",
	}
}

func (f FeeSchedule) label(category string) string {
	if label, ok := f.labels[category]; ok && label != "" {
		return label
	}
	return category
}

// EvaluateEligibility gates the hall ticket on the attendance threshold.
func EvaluateEligibility(attendancePercent int) dto.EligibilityResponse {
	response := dto.EligibilityResponse{
		Eligible:          attendancePercent >= AttendanceThreshold,
		AttendancePercent: attendancePercent,
		Threshold:         AttendanceThreshold,
	}
	if !response.Eligible {
		response.Shortfall = AttendanceThreshold - attendancePercent
		response.Message = fmt.Sprintf("Requires %d%% attendance. You are lagging by %d%%.", AttendanceThreshold, response.Shortfall)
	}
	return response
}
