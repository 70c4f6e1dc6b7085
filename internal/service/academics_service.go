package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

// Assessment list filters.
const (
	AssessmentFilterAll       = "all"
	AssessmentFilterPending   = "pending"
	AssessmentFilterSubmitted = "submitted"
	AssessmentFilterGraded    = "graded"
)

// DefaultDeadlineLimit is the number of deadlines returned when no limit is given.
const DefaultDeadlineLimit = 3

// AcademicsService exposes assessments, deadlines and the semester overview.
type AcademicsService interface {
	Assessments(ctx context.Context, query dto.AssessmentQuery) ([]dto.AssessmentResponse, error)
	Deadlines(ctx context.Context, limit int) ([]dto.DeadlineResponse, error)
	Overview(ctx context.Context, studentID uint) (dto.AcademicsOverviewResponse, error)
}

type academicsService struct {
	assessments repository.AssessmentRepository
	schedule    repository.ScheduleRepository
	profiles    repository.ProfileRepository
	attendance  AttendanceService
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAcademicsService wires the academics aggregate.
func NewAcademicsService(
	assessments repository.AssessmentRepository,
	schedule repository.ScheduleRepository,
	profiles repository.ProfileRepository,
	attendance AttendanceService,
	validate *validator.Validate,
	logger zerolog.Logger,
) AcademicsService {
	return &academicsService{
		assessments: assessments,
		schedule:    schedule,
		profiles:    profiles,
		attendance:  attendance,
		validator:   validate,
		logger:      logger.With().Str("component", "academics_service").Logger(),
		now:         time.Now,
	}
}

func (s *academicsService) Assessments(ctx context.Context, query dto.AssessmentQuery) ([]dto.AssessmentResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, err
	}

	filter := repository.AssessmentFilter{SubjectCode: query.SubjectCode}
	yes, no := true, false
	switch query.Filter {
	case AssessmentFilterPending:
		filter.Submitted = &no
	case AssessmentFilterSubmitted:
		filter.Submitted = &yes
	case AssessmentFilterGraded:
		filter.Graded = &yes
	}

	tasks, err := s.assessments.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]dto.AssessmentResponse, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, NewAssessmentResponse(task, now))
	}
	return result, nil
}

func (s *academicsService) Deadlines(ctx context.Context, limit int) ([]dto.DeadlineResponse, error) {
	if limit <= 0 {
		limit = DefaultDeadlineLimit
	}

	no := false
	tasks, err := s.assessments.List(ctx, repository.AssessmentFilter{Submitted: &no})
	if err != nil {
		return nil, err
	}

	return UpcomingDeadlines(tasks, s.now(), limit), nil
}

func (s *academicsService) Overview(ctx context.Context, studentID uint) (dto.AcademicsOverviewResponse, error) {
	profile, err := s.profiles.GetByID(ctx, studentID)
	if err != nil {
		return dto.AcademicsOverviewResponse{}, err
	}

	semesters, err := s.assessments.ListSemesters(ctx)
	if err != nil {
		return dto.AcademicsOverviewResponse{}, err
	}

	exams, err := s.schedule.ListExams(ctx)
	if err != nil {
		return dto.AcademicsOverviewResponse{}, err
	}

	summary, err := s.attendance.Summary(ctx)
	if err != nil {
		return dto.AcademicsOverviewResponse{}, err
	}

	tasks, err := s.assessments.List(ctx, repository.AssessmentFilter{})
	if err != nil {
		return dto.AcademicsOverviewResponse{}, err
	}

	now := s.now()
	overview := dto.AcademicsOverviewResponse{
		CGPA:            profile.CGPA,
		CurrentSemester: profile.CurrentSemester,
		History:         make([]dto.SemesterResultResponse, 0, len(semesters)),
		Eligibility:     EvaluateEligibility(summary.Summary.PresentPercent),
		Exams:           newExamSlotResponses(exams),
	}

	for _, semester := range semesters {
		overview.History = append(overview.History, dto.SemesterResultResponse{Semester: semester.Semester, SGPA: semester.SGPA})
	}
	overview.Trend = GPATrendOf(semesters)

	for _, task := range tasks {
		switch AssessmentStatus(task, now) {
		case AssessmentStatusPending:
			overview.PendingCount++
		case AssessmentStatusOverdue:
			overview.OverdueCount++
		}
	}

	return overview, nil
}

// NewAssessmentResponse annotates a task with its derived status and deadline labels.
func NewAssessmentResponse(task models.AssessmentTask, now time.Time) dto.AssessmentResponse {
	annotation := AnnotateDeadline(task.DueDate, task.Submitted, now)
	return dto.AssessmentResponse{
		ID:            task.ID,
		SubjectCode:   task.SubjectCode,
		Type:          task.Type,
		Title:         task.Title,
		DueDate:       task.DueDate,
		Status:        AssessmentStatus(task, now),
		Submitted:     task.Submitted,
		Marks:         task.Marks,
		TotalMarks:    task.TotalMarks,
		AttachmentURL: task.AttachmentURL,
		Overdue:       annotation.Overdue,
		Label:         annotation.Label,
		DaysLeft:      annotation.DaysLeft,
		DaysLeftLabel: annotation.DaysLeftLabel,
		TimeLeftLabel: annotation.TimeLeftLabel,
		Urgency:       annotation.Urgency,
	}
}

// UpcomingDeadlines projects unsubmitted tasks that are not yet due, nearest first.
func UpcomingDeadlines(tasks []models.AssessmentTask, now time.Time, limit int) []dto.DeadlineResponse {
	upcoming := make([]models.AssessmentTask, 0, len(tasks))
	for _, task := range tasks {
		if task.Submitted || task.IsPastDue(now) {
			continue
		}
		upcoming = append(upcoming, task)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})

	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}

	result := make([]dto.DeadlineResponse, 0, len(upcoming))
	for _, task := range upcoming {
		annotation := AnnotateDeadline(task.DueDate, false, now)
		result = append(result, dto.DeadlineResponse{
			ID:            task.ID,
			Title:         task.Title,
			SubjectCode:   task.SubjectCode,
			DueDate:       task.DueDate,
			Urgency:       annotation.Urgency,
			TimeLeftLabel: annotation.TimeLeftLabel,
		})
	}
	return result
}

// GPATrendOf compares the two most recent semesters.
func GPATrendOf(semesters []models.SemesterResult) dto.GPATrend {
	if len(semesters) == 0 {
		return dto.GPATrend{}
	}

	ordered := append([]models.SemesterResult(nil), semesters...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Semester < ordered[j].Semester })

	latest := ordered[len(ordered)-1].SGPA
	trend := dto.GPATrend{Latest: latest}
	if len(ordered) > 1 {
		trend.Previous = ordered[len(ordered)-2].SGPA
		trend.Delta = math.Round((latest-trend.Previous)*100) / 100
	}
	return trend
}
