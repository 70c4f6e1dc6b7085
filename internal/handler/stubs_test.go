package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Details json.RawMessage `json:"details"`
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}

// studentApp mounts routes under a group that behaves like an authenticated student session.
func studentApp(prefix string, register func(fiber.Router)) *fiber.App {
	app := fiber.New()
	group := app.Group(prefix, func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		c.Locals("user_role", "student")
		return c.Next()
	})
	register(group)
	return app
}

type stubSchedule struct {
	today   dto.ScheduleResponse
	current *dto.ClassSessionResponse
	exams   []dto.ExamSlotResponse
	err     error
}

func (s *stubSchedule) Today(context.Context) (dto.ScheduleResponse, error) { return s.today, s.err }
func (s *stubSchedule) Current(context.Context) (*dto.ClassSessionResponse, error) {
	return s.current, s.err
}
func (s *stubSchedule) Exams(context.Context) ([]dto.ExamSlotResponse, error) { return s.exams, s.err }

type stubAttendance struct {
	summary   dto.AttendanceSummaryResult
	subjects  []dto.SubjectAttendanceResponse
	records   []dto.AttendanceRecordResponse
	lastQuery dto.AttendanceRecordQuery
	err       error
}

func (s *stubAttendance) Subjects(context.Context) ([]dto.SubjectAttendanceResponse, error) {
	return s.subjects, s.err
}
func (s *stubAttendance) Summary(context.Context) (dto.AttendanceSummaryResult, error) {
	return s.summary, s.err
}
func (s *stubAttendance) Records(_ context.Context, query dto.AttendanceRecordQuery) ([]dto.AttendanceRecordResponse, error) {
	s.lastQuery = query
	return s.records, s.err
}
func (s *stubAttendance) InvalidateSummary(context.Context) error { return nil }

type stubAcademics struct {
	assessments []dto.AssessmentResponse
	deadlines   []dto.DeadlineResponse
	overview    dto.AcademicsOverviewResponse
	lastQuery   dto.AssessmentQuery
	lastLimit   int
	err         error
}

func (s *stubAcademics) Assessments(_ context.Context, query dto.AssessmentQuery) ([]dto.AssessmentResponse, error) {
	s.lastQuery = query
	return s.assessments, s.err
}
func (s *stubAcademics) Deadlines(_ context.Context, limit int) ([]dto.DeadlineResponse, error) {
	s.lastLimit = limit
	return s.deadlines, s.err
}
func (s *stubAcademics) Overview(context.Context, uint) (dto.AcademicsOverviewResponse, error) {
	return s.overview, s.err
}

type stubFees struct {
	lastSelection dto.FeeSelection
	checkout      dto.CheckoutResponse
	err           error
}

func (s *stubFees) Quote(_ context.Context, selection dto.FeeSelection) (dto.FeeQuoteResponse, error) {
	s.lastSelection = selection
	return dto.FeeQuoteResponse{Selection: selection, Currency: "INR"}, s.err
}
func (s *stubFees) Checkout(_ context.Context, _ uint, selection dto.FeeSelection) (dto.CheckoutResponse, error) {
	s.lastSelection = selection
	return s.checkout, s.err
}

type stubAuth struct {
	challenge dto.OTPChallengeResponse
	auth      dto.AuthResponse
	err       error
}

func (s *stubAuth) RequestOTP(context.Context, dto.OTPRequest) (dto.OTPChallengeResponse, error) {
	return s.challenge, s.err
}
func (s *stubAuth) VerifyOTP(context.Context, dto.VerifyOTPRequest) (dto.AuthResponse, error) {
	return s.auth, s.err
}
func (s *stubAuth) Back(context.Context, dto.LoginBackRequest) (dto.LoginStateResponse, error) {
	return dto.LoginStateResponse{State: dto.LoginStateIDEntry}, s.err
}

type stubNotices struct {
	list    dto.NoticeListResponse
	newOnly bool
	err     error
}

func (s *stubNotices) List(_ context.Context, newOnly bool) (dto.NoticeListResponse, error) {
	s.newOnly = newOnly
	return s.list, s.err
}
func (s *stubNotices) MarkRead(_ context.Context, id string) (dto.NoticeResponse, error) {
	return dto.NoticeResponse{ID: id}, s.err
}
func (s *stubNotices) CountNew(context.Context) (int64, error) { return s.list.NewCount, s.err }

type stubProfile struct {
	profile dto.ProfileResponse
	updated dto.ProfileUpdateResponse
	preview dto.PhotoPreviewResponse
	kind    string
	size    int
	err     error
}

func (s *stubProfile) Get(context.Context, uint) (dto.ProfileResponse, error) { return s.profile, s.err }
func (s *stubProfile) Update(context.Context, uint, dto.ProfileUpdateRequest) (dto.ProfileUpdateResponse, error) {
	return s.updated, s.err
}
func (s *stubProfile) PreviewPhoto(_ context.Context, kind string, data []byte) (dto.PhotoPreviewResponse, error) {
	s.kind = kind
	s.size = len(data)
	return s.preview, s.err
}

type stubAssistant struct {
	history  []dto.AssistantMessageResponse
	exchange dto.AssistantExchangeResponse
	err      error
}

func (s *stubAssistant) History(context.Context, uint) ([]dto.AssistantMessageResponse, error) {
	return s.history, s.err
}
func (s *stubAssistant) Send(context.Context, uint, dto.AssistantMessageRequest) (dto.AssistantExchangeResponse, error) {
	return s.exchange, s.err
}

type stubDashboard struct {
	response dto.DashboardResponse
	lang     string
	err      error
}

func (s *stubDashboard) Overview(_ context.Context, _ uint, language string) (dto.DashboardResponse, error) {
	s.lang = language
	return s.response, s.err
}

type stubSyllabus struct {
	subjects []dto.SubjectSyllabusResponse
	err      error
}

func (s *stubSyllabus) List(context.Context) ([]dto.SubjectSyllabusResponse, error) {
	return s.subjects, s.err
}
func (s *stubSyllabus) Subject(_ context.Context, code string) (dto.SubjectSyllabusResponse, error) {
	for _, subject := range s.subjects {
		if subject.SubjectCode == code {
			return subject, nil
		}
	}
	return dto.SubjectSyllabusResponse{}, service.ErrSubjectNotFound
}

type stubDocuments struct {
	pdf  []byte
	card dto.DigitalIDResponse
	qr   []byte
	err  error
}

func (s *stubDocuments) HallTicket(context.Context, uint) ([]byte, error) { return s.pdf, s.err }
func (s *stubDocuments) DigitalID(context.Context, uint) (dto.DigitalIDResponse, error) {
	return s.card, s.err
}
func (s *stubDocuments) DigitalIDQR(context.Context, uint) ([]byte, error) { return s.qr, s.err }

type stubSeed struct {
	token string
	err   error
}

func (s *stubSeed) Seed(context.Context) (service.SeedReport, error) { return service.SeedReport{}, s.err }
func (s *stubSeed) Reseed(_ context.Context, token string) (service.SeedReport, error) {
	s.token = token
	return service.SeedReport{StudentNumber: "2024277634", Classes: 3}, s.err
}

var (
	_ service.ScheduleService   = (*stubSchedule)(nil)
	_ service.AttendanceService = (*stubAttendance)(nil)
	_ service.AcademicsService  = (*stubAcademics)(nil)
	_ service.FeeService        = (*stubFees)(nil)
	_ service.AuthService       = (*stubAuth)(nil)
	_ service.NoticeService     = (*stubNotices)(nil)
	_ service.ProfileService    = (*stubProfile)(nil)
	_ service.AssistantService  = (*stubAssistant)(nil)
	_ service.DashboardService  = (*stubDashboard)(nil)
	_ service.SyllabusService   = (*stubSyllabus)(nil)
	_ service.DocumentService   = (*stubDocuments)(nil)
	_ service.SeedService       = (*stubSeed)(nil)
)
