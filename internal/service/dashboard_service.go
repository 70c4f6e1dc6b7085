package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

type greetingSet struct {
	morning, afternoon, evening, night string
}

var greetings = map[string]greetingSet{
	"en": {"Good Morning", "Good Afternoon", "Good Evening", "Good Night"},
	"hi": {"सुप्रभात", "शुभ दोपहर", "शुभ संध्या", "शुभ रात्रि"},
	"fr": {"Bonjour", "Bonne Après-midi", "Bonsoir", "Bonne Nuit"},
	"es": {"Buenos Días", "Buenas Tardes", "Buenas Tardes", "Buenas Noches"},
	"zh": {"早上好", "下午好", "晚上好", "晚安"},
	"ar": {"صباح الخير", "مساء الخير", "مساء الخير", "تصبح على خير"},
}

// Greeting picks the salutation for the hour of day; unknown languages fall back to English.
func Greeting(hour int, language string) string {
	set, ok := greetings[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		set = greetings["en"]
	}

	switch {
	case hour >= 5 && hour < 12:
		return set.morning
	case hour >= 12 && hour < 17:
		return set.afternoon
	case hour >= 17 && hour < 21:
		return set.evening
	default:
		return set.night
	}
}

// DashboardService assembles the home screen.
type DashboardService interface {
	Overview(ctx context.Context, studentID uint, language string) (dto.DashboardResponse, error)
}

type dashboardService struct {
	profiles    repository.ProfileRepository
	assessments repository.AssessmentRepository
	schedule    ScheduleService
	attendance  AttendanceService
	notices     NoticeService
	fees        FeeService
	location    *time.Location
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDashboardService wires the dashboard aggregate.
func NewDashboardService(
	profiles repository.ProfileRepository,
	assessments repository.AssessmentRepository,
	schedule ScheduleService,
	attendance AttendanceService,
	notices NoticeService,
	fees FeeService,
	location *time.Location,
	logger zerolog.Logger,
) DashboardService {
	if location == nil {
		location = time.Local
	}
	return &dashboardService{
		profiles:    profiles,
		assessments: assessments,
		schedule:    schedule,
		attendance:  attendance,
		notices:     notices,
		fees:        fees,
		location:    location,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
		now:         time.Now,
	}
}

func (s *dashboardService) Overview(ctx context.Context, studentID uint, language string) (dto.DashboardResponse, error) {
	now := s.now().In(s.location)

	profile, err := s.profiles.GetByID(ctx, studentID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	schedule, err := s.schedule.Today(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	attendance, err := s.attendance.Summary(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	tasks, err := s.assessments.List(ctx, repository.AssessmentFilter{})
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	newNotices, err := s.notices.CountNew(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	quote, err := s.fees.Quote(ctx, dto.DefaultFeeSelection())
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	pending := 0
	for _, task := range tasks {
		if status := AssessmentStatus(task, now); status == AssessmentStatusPending || status == AssessmentStatusOverdue {
			pending++
		}
	}

	return dto.DashboardResponse{
		Greeting: fmt.Sprintf("%s, %s", Greeting(now.Hour(), language), profile.FirstName()),
		Student: dto.StudentSummary{
			ID:            profile.ID,
			Name:          profile.Name,
			FirstName:     profile.FirstName(),
			StudentNumber: profile.StudentNumber,
			Program:       profile.Program,
			AvatarURL:     profile.AvatarURL,
		},
		Schedule:           schedule,
		Attendance:         attendance.Summary,
		Deadlines:          UpcomingDeadlines(tasks, now, DefaultDeadlineLimit),
		NewNotices:         newNotices,
		PendingAssessments: pending,
		FeesDue:            quote.Total,
		Eligibility:        EvaluateEligibility(attendance.Summary.PresentPercent),
		GeneratedAt:        now,
	}, nil
}
