package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

const qrCodeSize = 256

// ErrNotEligible is returned when the hall ticket is requested below the attendance threshold.
var ErrNotEligible = errors.New("not eligible for hall ticket")

// EligibilityError carries the eligibility result that blocked the hall ticket.
type EligibilityError struct {
	Eligibility dto.EligibilityResponse
}

func (e *EligibilityError) Error() string {
	return e.Eligibility.Message
}

// Unwrap lets callers match ErrNotEligible.
func (e *EligibilityError) Unwrap() error {
	return ErrNotEligible
}

// DocumentService renders the hall ticket and digital identity card.
type DocumentService interface {
	HallTicket(ctx context.Context, studentID uint) ([]byte, error)
	DigitalID(ctx context.Context, studentID uint) (dto.DigitalIDResponse, error)
	DigitalIDQR(ctx context.Context, studentID uint) ([]byte, error)
}

type documentService struct {
	profiles   repository.ProfileRepository
	schedule   repository.ScheduleRepository
	attendance AttendanceService
	logger     zerolog.Logger
	now        func() time.Time
}

// NewDocumentService builds the document renderer.
func NewDocumentService(profiles repository.ProfileRepository, schedule repository.ScheduleRepository, attendance AttendanceService, logger zerolog.Logger) DocumentService {
	return &documentService{
		profiles:   profiles,
		schedule:   schedule,
		attendance: attendance,
		logger:     logger.With().Str("component", "document_service").Logger(),
		now:        time.Now,
	}
}

func (s *documentService) HallTicket(ctx context.Context, studentID uint) ([]byte, error) {
	summary, err := s.attendance.Summary(ctx)
	if err != nil {
		return nil, err
	}

	eligibility := EvaluateEligibility(summary.Summary.PresentPercent)
	if !eligibility.Eligible {
		return nil, &EligibilityError{Eligibility: eligibility}
	}

	profile, err := s.profiles.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	exams, err := s.schedule.ListExams(ctx)
	if err != nil {
		return nil, err
	}

	return RenderHallTicket(profile, exams, eligibility, s.now())
}

func (s *documentService) DigitalID(ctx context.Context, studentID uint) (dto.DigitalIDResponse, error) {
	profile, err := s.profiles.GetByID(ctx, studentID)
	if err != nil {
		return dto.DigitalIDResponse{}, err
	}

	return dto.DigitalIDResponse{
		Name:          profile.Name,
		StudentNumber: profile.StudentNumber,
		Program:       profile.Program,
		Department:    profile.Department,
		School:        profile.School,
		AcademicYear:  profile.AcademicYear,
		ProgramStatus: profile.ProgramStatus,
		AvatarURL:     profile.AvatarURL,
		QRPayload:     profile.StudentNumber,
	}, nil
}

func (s *documentService) DigitalIDQR(ctx context.Context, studentID uint) ([]byte, error) {
	card, err := s.DigitalID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(card.QRPayload, qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// RenderHallTicket lays out the admit card with the exam datesheet.
func RenderHallTicket(profile models.StudentProfile, exams []models.ExamSlot, eligibility dto.EligibilityResponse, issuedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Hall Ticket "+profile.StudentNumber, true)
	pdf.SetAuthor(profile.School, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "End Semester Examination - Hall Ticket", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Name", profile.Name},
		{"Student ID", profile.StudentNumber},
		{"Program", profile.Program},
		{"Department", profile.Department},
		{"Semester", fmt.Sprintf("%d", profile.CurrentSemester)},
		{"Attendance", fmt.Sprintf("%d%%", eligibility.AttendancePercent)},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	widths := []float64{28, 72, 30, 30, 30}
	headers := []string{"Code", "Subject", "Date", "Time", "Room"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 236, 245)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, exam := range exams {
		cells := []string{
			exam.SubjectCode,
			exam.SubjectName,
			exam.Date.Format("02 Jan 2006"),
			exam.Time,
			exam.Room,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 8, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Issued "+issuedAt.Format("02 Jan 2006 15:04 MST"), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render hall ticket: %w", err)
	}
	return buf.Bytes(), nil
}
