package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

// ScheduleService classifies today's timetable against the wall clock.
type ScheduleService interface {
	Today(ctx context.Context) (dto.ScheduleResponse, error)
	Current(ctx context.Context) (*dto.ClassSessionResponse, error)
	Exams(ctx context.Context) ([]dto.ExamSlotResponse, error)
}

type scheduleService struct {
	repo     repository.ScheduleRepository
	location *time.Location
	logger   zerolog.Logger
	now      func() time.Time
}

// NewScheduleService builds the schedule classifier service.
func NewScheduleService(repo repository.ScheduleRepository, location *time.Location, logger zerolog.Logger) ScheduleService {
	if location == nil {
		location = time.Local
	}
	return &scheduleService{
		repo:     repo,
		location: location,
		logger:   logger.With().Str("component", "schedule_service").Logger(),
		now:      time.Now,
	}
}

func (s *scheduleService) Today(ctx context.Context) (dto.ScheduleResponse, error) {
	classes, err := s.repo.ListClasses(ctx)
	if err != nil {
		return dto.ScheduleResponse{}, err
	}
	return s.classify(classes, s.now().In(s.location)), nil
}

func (s *scheduleService) Current(ctx context.Context) (*dto.ClassSessionResponse, error) {
	schedule, err := s.Today(ctx)
	if err != nil {
		return nil, err
	}
	return schedule.Current, nil
}

func (s *scheduleService) Exams(ctx context.Context) ([]dto.ExamSlotResponse, error) {
	exams, err := s.repo.ListExams(ctx)
	if err != nil {
		return nil, err
	}
	return newExamSlotResponses(exams), nil
}

func (s *scheduleService) classify(classes []models.ClassSession, now time.Time) dto.ScheduleResponse {
	response := dto.ScheduleResponse{
		Date:        now.Format(time.DateOnly),
		Sessions:    make([]dto.ClassSessionResponse, 0, len(classes)),
		GeneratedAt: now,
	}

	for _, class := range classes {
		session := classifyClass(class, now)
		if !session.ValidTimeRange {
			s.logger.Warn().Uint("class_id", class.ID).Str("time_range", class.TimeRange).Msg("unparseable class time range")
		}
		response.Sessions = append(response.Sessions, session)
	}

	for i := range response.Sessions {
		session := &response.Sessions[i]
		if response.Current == nil && session.ValidTimeRange && session.Status == models.SessionStatusOngoing {
			response.Current = session
		}
		if response.Next == nil && session.ValidTimeRange && session.Status == models.SessionStatusUpcoming {
			response.Next = session
		}
	}

	return response
}

func classifyClass(class models.ClassSession, now time.Time) dto.ClassSessionResponse {
	timing := ClassifySession(class.TimeRange, now)
	status := timing.Status
	if !timing.Valid {
		status = class.ConfiguredStatus
	}

	return dto.ClassSessionResponse{
		ID:               class.ID,
		SubjectName:      class.SubjectName,
		SubjectCode:      class.SubjectCode,
		TimeRange:        class.TimeRange,
		Room:             class.Room,
		Instructor:       class.Instructor,
		Status:           status,
		AttendanceMarked: class.AttendanceMarked,
		Progress:         timing.Progress,
		ProgressPercent:  int(math.Round(timing.Progress * 100)),
		RemainingLabel:   timing.RemainingLabel,
		ValidTimeRange:   timing.Valid,
	}
}

func newExamSlotResponses(exams []models.ExamSlot) []dto.ExamSlotResponse {
	result := make([]dto.ExamSlotResponse, 0, len(exams))
	for _, exam := range exams {
		result = append(result, dto.ExamSlotResponse{
			SubjectCode: exam.SubjectCode,
			SubjectName: exam.SubjectName,
			Date:        exam.Date.Format(time.DateOnly),
			Time:        exam.Time,
			Room:        exam.Room,
			Building:    exam.Building,
		})
	}
	return result
}
