package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/handler"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/service"
)

func compileContract(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()
	schemaPath, err := filepath.Abs(filepath.Join("testdata", "contracts", name))
	require.NoError(t, err)

	schema, err := jsonschema.NewCompiler().Compile("file://" + schemaPath)
	require.NoError(t, err)
	return schema
}

func validateContract(t *testing.T, schema *jsonschema.Schema, resp *http.Response) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
	return payload.(map[string]interface{})
}

type calculatingFees struct {
	schedule service.FeeSchedule
}

func (c calculatingFees) Quote(_ context.Context, selection dto.FeeSelection) (dto.FeeQuoteResponse, error) {
	return service.CalculateFees(c.schedule, selection), nil
}

func (c calculatingFees) Checkout(context.Context, uint, dto.FeeSelection) (dto.CheckoutResponse, error) {
	return dto.CheckoutResponse{}, nil
}

func TestFeeQuoteContract(t *testing.T) {
	schema := compileContract(t, "fee_quote.schema.json")
	fees := calculatingFees{schedule: service.NewFeeSchedule([]models.FeeLineItem{
		{Category: models.FeeTuition, Label: "Tuition Fee", Amount: 45000},
		{Category: models.FeeActivity, Label: "Student Activity Fee", Amount: 2500},
		{Category: models.FeeExam, Label: "Examination Fee", Amount: 1800},
		{Category: models.FeeLanguage, Label: "Foreign Language Elective", Amount: 3500, Optional: true},
		{Category: models.FeeFine, Label: "Library Fine", Amount: 750, Optional: true},
		{Category: models.FeeScholarship, Label: "Merit Scholarship", Amount: 5000},
	})}
	app := studentApp("/api/v1/fees", handler.NewFeeHandler(fees, zerolog.Nop()).Register)

	resp := get(t, app, "/api/v1/fees/quote")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload := validateContract(t, schema, resp)
	require.EqualValues(t, 48550, payload["data"].(map[string]interface{})["total"])

	resp = get(t, app, "/api/v1/fees/quote?bundle=false&fine=false")
	payload = validateContract(t, schema, resp)
	require.EqualValues(t, 0, payload["data"].(map[string]interface{})["total"])
}

func TestDashboardContract(t *testing.T) {
	schema := compileContract(t, "dashboard.schema.json")
	now := time.Date(2026, time.February, 9, 11, 45, 0, 0, time.UTC)
	ongoing := dto.ClassSessionResponse{SubjectName: "Linear Algebra", SubjectCode: "MA-202", TimeRange: "11:00 AM - 12:30 PM", Status: models.SessionStatusOngoing, Progress: 0.5, ProgressPercent: 50}

	svc := &stubDashboard{response: dto.DashboardResponse{
		Greeting: "Good Morning",
		Student:  dto.StudentSummary{ID: 1, Name: "Alex Johnson", FirstName: "Alex", StudentNumber: "2024277634"},
		Schedule: dto.ScheduleResponse{
			Date: "2026-02-09",
			Sessions: []dto.ClassSessionResponse{
				{SubjectName: "Data Structures", TimeRange: "09:00 AM - 10:30 AM", Status: models.SessionStatusCompleted, Progress: 1, ProgressPercent: 100},
				ongoing,
			},
			Current:     &ongoing,
			GeneratedAt: now,
		},
		Attendance:         dto.AttendanceSummary{AttendedClasses: 122, TotalClasses: 150, PresentPercent: 81, AbsentPercent: 10, RemainingSkips: 12, Threshold: 75},
		Deadlines:          []dto.DeadlineResponse{{ID: "ASKP-002", Title: "Lab Report", SubjectCode: "CS-201", DueDate: now.Add(20 * time.Hour), Urgency: service.UrgencyHigh, TimeLeftLabel: "20 hrs"}},
		NewNotices:         2,
		PendingAssessments: 3,
		FeesDue:            48550,
		Eligibility:        service.EvaluateEligibility(81),
		GeneratedAt:        now,
	}}
	app := studentApp("/api/v1/dashboard", handler.NewDashboardHandler(svc, zerolog.Nop()).Register)

	resp := get(t, app, "/api/v1/dashboard")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	validateContract(t, schema, resp)
}
