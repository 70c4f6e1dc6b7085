package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/fixtures"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the reseed tool is disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedReport counts the rows written per aggregate.
type SeedReport struct {
	StudentNumber string `json:"student_number"`
	Classes       int    `json:"classes"`
	Subjects      int    `json:"subjects"`
	Records       int    `json:"records"`
	Assessments   int    `json:"assessments"`
	Exams         int    `json:"exams"`
	Semesters     int    `json:"semesters"`
	Notices       int    `json:"notices"`
	Fees          int    `json:"fees"`
	Modules       int    `json:"modules"`
}

// SeedRepositories groups the stores written by the seeder.
type SeedRepositories struct {
	Profiles    repository.ProfileRepository
	Schedule    repository.ScheduleRepository
	Attendance  repository.AttendanceRepository
	Assessments repository.AssessmentRepository
	Notices     repository.NoticeRepository
	Fees        repository.FeeRepository
	Syllabus    repository.SyllabusRepository
}

// SeedService loads the embedded fixtures into the session store.
type SeedService interface {
	Seed(ctx context.Context) (SeedReport, error)
	Reseed(ctx context.Context, token string) (SeedReport, error)
}

type seedService struct {
	repos      SeedRepositories
	attendance AttendanceService
	token      string
	location   *time.Location
	logger     zerolog.Logger
	now        func() time.Time
	load       func(now time.Time) (fixtures.Set, error)
}

// NewSeedService constructs a seeding service. An empty token disables Reseed.
func NewSeedService(repos SeedRepositories, attendance AttendanceService, token string, location *time.Location, logger zerolog.Logger) SeedService {
	if location == nil {
		location = time.Local
	}
	return &seedService{
		repos:      repos,
		attendance: attendance,
		token:      token,
		location:   location,
		logger:     logger.With().Str("component", "seed_service").Logger(),
		now:        time.Now,
		load:       fixtures.Load,
	}
}

func (s *seedService) Seed(ctx context.Context) (SeedReport, error) {
	set, err := s.load(s.now().In(s.location))
	if err != nil {
		return SeedReport{}, fmt.Errorf("load fixtures: %w", err)
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"profile", func() error { return s.repos.Profiles.Upsert(ctx, &set.Student) }},
		{"classes", func() error { return s.repos.Schedule.ReplaceClasses(ctx, set.Classes) }},
		{"exams", func() error { return s.repos.Schedule.ReplaceExams(ctx, set.Exams) }},
		{"subjects", func() error { return s.repos.Attendance.ReplaceSubjects(ctx, set.Subjects) }},
		{"records", func() error { return s.repos.Attendance.ReplaceRecords(ctx, set.Records) }},
		{"assessments", func() error { return s.repos.Assessments.ReplaceAssessments(ctx, set.Assessments) }},
		{"semesters", func() error { return s.repos.Assessments.ReplaceSemesters(ctx, set.Semesters) }},
		{"notices", func() error { return s.repos.Notices.Replace(ctx, set.Notices) }},
		{"fees", func() error { return s.repos.Fees.Replace(ctx, set.Fees) }},
		{"syllabus", func() error { return s.repos.Syllabus.Replace(ctx, set.Syllabus) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return SeedReport{}, fmt.Errorf("seed %s: %w", step.name, err)
		}
	}

	if s.attendance != nil {
		if err := s.attendance.InvalidateSummary(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate attendance cache")
		}
	}

	report := SeedReport{
		StudentNumber: set.Student.StudentNumber,
		Classes:       len(set.Classes),
		Subjects:      len(set.Subjects),
		Records:       len(set.Records),
		Assessments:   len(set.Assessments),
		Exams:         len(set.Exams),
		Semesters:     len(set.Semesters),
		Notices:       len(set.Notices),
		Fees:          len(set.Fees),
		Modules:       len(set.Syllabus),
	}
	s.logger.Info().Interface("report", report).Msg("fixtures seeded")
	return report, nil
}

func (s *seedService) Reseed(ctx context.Context, token string) (SeedReport, error) {
	if strings.TrimSpace(s.token) == "" {
		return SeedReport{}, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return SeedReport{}, ErrSeedUnauthorized
	}
	return s.Seed(ctx)
}

func (s *seedService) validateToken(token string) bool {
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(s.token)), []byte(strings.TrimSpace(token))) == 1
}
