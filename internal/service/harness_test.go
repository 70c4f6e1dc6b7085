package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noah-isme/campus-portal-api/internal/database"
	"github.com/noah-isme/campus-portal-api/internal/events"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	"github.com/noah-isme/campus-portal-api/pkg/ai"
	"github.com/noah-isme/campus-portal-api/pkg/payment"
)

// seededAt is 11:45 IST on a Monday: Data Structures is done, Linear Algebra
// is half way through and Software Eng. is still ahead.
var seededAt = time.Date(2026, time.February, 9, 11, 45, 0, 0, ist)

type recordingPublisher struct {
	names    []string
	payloads []interface{}
}

func (r *recordingPublisher) Publish(_ context.Context, name string, payload interface{}) {
	r.names = append(r.names, name)
	r.payloads = append(r.payloads, payload)
}

type portalHarness struct {
	db        *gorm.DB
	redis     *miniredis.Miniredis
	repos     SeedRepositories
	assistant repository.AssistantRepository
	events    *recordingPublisher
	responder *ai.StaticResponder

	schedule   *scheduleService
	attendance *attendanceService
	academics  *academicsService
	fees       *feeService
	auth       *authService
	notices    *noticeService
	profiles   *profileService
	assistants *assistantService
	dashboard  *dashboardService
	syllabus   *syllabusService
	documents  *documentService
	seed       *seedService

	studentID uint
}

func newPortalHarness(t *testing.T) *portalHarness {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	log := zerolog.Nop()
	validate := validator.New()
	clock := func() time.Time { return seededAt }

	h := &portalHarness{
		db:    db,
		redis: mr,
		repos: SeedRepositories{
			Profiles:    repository.NewProfileRepository(db),
			Schedule:    repository.NewScheduleRepository(db),
			Attendance:  repository.NewAttendanceRepository(db),
			Assessments: repository.NewAssessmentRepository(db),
			Notices:     repository.NewNoticeRepository(db),
			Fees:        repository.NewFeeRepository(db),
			Syllabus:    repository.NewSyllabusRepository(db),
		},
		assistant: repository.NewAssistantRepository(db),
		events:    &recordingPublisher{},
		responder: ai.NewStaticResponder("Linear Algebra is on now in Hall B."),
	}

	h.schedule = NewScheduleService(h.repos.Schedule, ist, log).(*scheduleService)
	h.schedule.now = clock

	h.attendance = NewAttendanceService(h.repos.Attendance, validate, cache, time.Minute, log).(*attendanceService)
	h.attendance.now = clock

	h.academics = NewAcademicsService(h.repos.Assessments, h.repos.Schedule, h.repos.Profiles, h.attendance, validate, log).(*academicsService)
	h.academics.now = clock

	h.fees = NewFeeService(h.repos.Fees, h.repos.Profiles, payment.NewMockGateway(), h.events, log).(*feeService)

	h.auth = NewAuthService(h.repos.Profiles, MockVerifier{}, validate, AuthConfig{
		Secret:            "test-secret",
		TokenTTL:          time.Hour,
		ChallengeTTL:      5 * time.Minute,
		DemoStudentNumber: "2024277634",
	}, log).(*authService)
	h.auth.now = clock

	h.notices = NewNoticeService(h.repos.Notices, h.events, log).(*noticeService)
	h.profiles = NewProfileService(h.repos.Profiles, validate, h.events, log).(*profileService)

	h.assistants = NewAssistantService(h.assistant, h.repos.Profiles, h.schedule, h.responder, validate, log).(*assistantService)
	h.assistants.now = clock

	h.dashboard = NewDashboardService(h.repos.Profiles, h.repos.Assessments, h.schedule, h.attendance, h.notices, h.fees, ist, log).(*dashboardService)
	h.dashboard.now = clock

	h.syllabus = NewSyllabusService(h.repos.Syllabus, log).(*syllabusService)

	h.documents = NewDocumentService(h.repos.Profiles, h.repos.Schedule, h.attendance, log).(*documentService)
	h.documents.now = clock

	h.seed = NewSeedService(h.repos, h.attendance, "seed-token", ist, log).(*seedService)
	h.seed.now = clock

	report, err := h.seed.Seed(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2024277634", report.StudentNumber)

	profile, err := h.repos.Profiles.GetByStudentNumber(context.Background(), report.StudentNumber)
	require.NoError(t, err)
	h.studentID = profile.ID

	return h
}

var _ events.Publisher = (*recordingPublisher)(nil)
