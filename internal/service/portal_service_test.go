package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/events"
	"github.com/noah-isme/campus-portal-api/internal/models"
)

func TestScheduleServiceToday(t *testing.T) {
	h := newPortalHarness(t)

	schedule, err := h.schedule.Today(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2026-02-09", schedule.Date)
	require.Len(t, schedule.Sessions, 3)

	require.Equal(t, models.SessionStatusCompleted, schedule.Sessions[0].Status)
	require.Equal(t, 100, schedule.Sessions[0].ProgressPercent)
	require.Equal(t, models.SessionStatusOngoing, schedule.Sessions[1].Status)
	require.Equal(t, 50, schedule.Sessions[1].ProgressPercent)
	require.Equal(t, "45m left", schedule.Sessions[1].RemainingLabel)
	require.Equal(t, models.SessionStatusUpcoming, schedule.Sessions[2].Status)

	require.NotNil(t, schedule.Current)
	require.Equal(t, "Linear Algebra", schedule.Current.SubjectName)
	require.NotNil(t, schedule.Next)
	require.Equal(t, "Software Eng.", schedule.Next.SubjectName)

	h.schedule.now = func() time.Time { return seededAt.Add(3 * time.Hour) }
	current, err := h.schedule.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	require.Equal(t, "CS-305", current.SubjectCode)
	require.Equal(t, "45m left", current.RemainingLabel)
}

func TestAttendanceSummaryUsesCache(t *testing.T) {
	h := newPortalHarness(t)
	ctx := context.Background()

	first, err := h.attendance.Summary(ctx)
	require.NoError(t, err)
	require.False(t, first.CacheHit)
	require.Equal(t, 81, first.Summary.PresentPercent)
	require.Equal(t, 10, first.Summary.AbsentPercent)
	require.Equal(t, 12, first.Summary.RemainingSkips)
	require.True(t, h.redis.Exists(attendanceSummaryCacheKey))

	second, err := h.attendance.Summary(ctx)
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.Summary.AttendedClasses, second.Summary.AttendedClasses)

	require.NoError(t, h.attendance.InvalidateSummary(ctx))
	require.False(t, h.redis.Exists(attendanceSummaryCacheKey))
}

func TestAttendanceSubjectsAndRecords(t *testing.T) {
	h := newPortalHarness(t)
	ctx := context.Background()

	subjects, err := h.attendance.Subjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 5)
	for _, subject := range subjects {
		require.Equal(t, subject.Total, subject.Present+subject.Absent+subject.Pending+subject.Leave+subject.Event)
		require.Equal(t, subject.Percentage < AttendanceThreshold, subject.Low)
	}

	records, err := h.attendance.Records(ctx, dto.AttendanceRecordQuery{Status: models.AttendanceAbsent})
	require.NoError(t, err)
	require.NotEmpty(t, records)
	for i, record := range records {
		require.Equal(t, models.AttendanceAbsent, record.Status)
		if i > 0 {
			require.GreaterOrEqual(t, records[i-1].Date, record.Date)
		}
	}

	_, err = h.attendance.Records(ctx, dto.AttendanceRecordQuery{Status: "late"})
	require.Error(t, err)
}

func TestAcademicsAssessmentsAndDeadlines(t *testing.T) {
	h := newPortalHarness(t)
	ctx := context.Background()

	all, err := h.academics.Assessments(ctx, dto.AssessmentQuery{Filter: AssessmentFilterAll})
	require.NoError(t, err)
	require.Len(t, all, 6)

	byID := map[string]dto.AssessmentResponse{}
	for _, item := range all {
		byID[item.ID] = item
	}
	require.Equal(t, AssessmentStatusOverdue, byID["ASKP-004"].Status)
	require.Equal(t, OverdueLabel, byID["ASKP-004"].Label)
	require.Equal(t, "2 days ago", byID["ASKP-004"].DaysLeftLabel)
	require.Equal(t, AssessmentStatusGraded, byID["ASKP-005"].Status)
	require.Equal(t, UrgencyMedium, byID["ASKP-002"].Urgency)
	require.Equal(t, UrgencyLow, byID["ASKP-001"].Urgency)

	graded, err := h.academics.Assessments(ctx, dto.AssessmentQuery{Filter: AssessmentFilterGraded})
	require.NoError(t, err)
	require.Len(t, graded, 1)

	_, err = h.academics.Assessments(ctx, dto.AssessmentQuery{Filter: "archived"})
	require.Error(t, err)

	deadlines, err := h.academics.Deadlines(ctx, 3)
	require.NoError(t, err)
	require.Len(t, deadlines, 3)
	require.Equal(t, "Project Proposal", deadlines[0].Title)
	require.Equal(t, "1 day", deadlines[0].TimeLeftLabel)
	require.Equal(t, "ASKP-002", deadlines[1].ID)
	require.Equal(t, "ASKP-001", deadlines[2].ID)

	defaulted, err := h.academics.Deadlines(ctx, 0)
	require.NoError(t, err)
	require.Len(t, defaulted, DefaultDeadlineLimit)
	require.Equal(t, deadlines, defaulted)
}

func TestAcademicsOverview(t *testing.T) {
	h := newPortalHarness(t)

	overview, err := h.academics.Overview(context.Background(), h.studentID)
	require.NoError(t, err)
	require.Equal(t, 8.4, overview.CGPA)
	require.Equal(t, 4, overview.CurrentSemester)
	require.Len(t, overview.History, 3)
	require.Equal(t, 8.5, overview.Trend.Latest)
	require.True(t, overview.Eligibility.Eligible)
	require.Equal(t, 81, overview.Eligibility.AttendancePercent)
	require.Len(t, overview.Exams, 5)
	require.Equal(t, "2026-03-10", overview.Exams[0].Date)
	require.Equal(t, 4, overview.PendingCount)
	require.Equal(t, 1, overview.OverdueCount)
}

func TestFeeQuoteAndCheckout(t *testing.T) {
	h := newPortalHarness(t)
	ctx := context.Background()

	quote, err := h.fees.Quote(ctx, dto.DefaultFeeSelection())
	require.NoError(t, err)
	require.Equal(t, int64(48550), quote.Total)

	checkout, err := h.fees.Checkout(ctx, h.studentID, dto.DefaultFeeSelection())
	require.NoError(t, err)
	require.Equal(t, "mock", checkout.Provider)
	require.Equal(t, int64(48550), checkout.Amount)
	require.Contains(t, checkout.OrderID, "FEE-2024277634-")
	require.Equal(t, "mock-"+checkout.OrderID, checkout.Token)
	require.Equal(t, []string{events.CheckoutCreated}, h.events.names)

	var itemTotal int64
	for _, item := range checkoutItems(quote) {
		itemTotal += item.Price
	}
	require.Equal(t, quote.Total, itemTotal)

	_, err = h.fees.Checkout(ctx, h.studentID, dto.FeeSelection{Fine: true})
	require.ErrorIs(t, err, ErrNothingToPay)
}

func TestNoticeMarkReadIsIdempotent(t *testing.T) {
	h := newPortalHarness(t)
	ctx := context.Background()

	list, err := h.notices.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list.Items, 4)
	require.EqualValues(t, 2, list.NewCount)
	require.Equal(t, "n1", list.Items[0].ID)

	notice, err := h.notices.MarkRead(ctx, "n1")
	require.NoError(t, err)
	require.False(t, notice.IsNew)

	notice, err = h.notices.MarkRead(ctx, "n1")
	require.NoError(t, err)
	require.False(t, notice.IsNew)
	require.Equal(t, []string{events.NoticeRead}, h.events.names)

	unread, err := h.notices.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, unread.Items, 1)
	require.EqualValues(t, 1, unread.NewCount)

	_, err = h.notices.MarkRead(ctx, "missing")
	require.ErrorIs(t, err, ErrNoticeNotFound)
}

func TestSyllabusCoverage(t *testing.T) {
	h := newPortalHarness(t)
	ctx := context.Background()

	all, err := h.syllabus.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	ds, err := h.syllabus.Subject(ctx, "cs-201")
	require.NoError(t, err)
	require.Len(t, ds.Modules, 6)
	require.Equal(t, 39, ds.OverallCompletion)
	require.Equal(t, 3, ds.Modules[1].CoveredTopics)
	require.Equal(t, 4, ds.Modules[1].TotalTopics)
	require.Equal(t, 75, ds.Modules[1].TopicCoverage)

	_, err = h.syllabus.Subject(ctx, "BIO-999")
	require.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestDashboardOverview(t *testing.T) {
	h := newPortalHarness(t)

	dashboard, err := h.dashboard.Overview(context.Background(), h.studentID, "en")
	require.NoError(t, err)
	require.Equal(t, "Good Morning, Alex", dashboard.Greeting)
	require.Equal(t, "Alex", dashboard.Student.FirstName)
	require.Equal(t, "Linear Algebra", dashboard.Schedule.Current.SubjectName)
	require.Equal(t, 81, dashboard.Attendance.PresentPercent)
	require.Len(t, dashboard.Deadlines, 3)
	require.EqualValues(t, 2, dashboard.NewNotices)
	require.Equal(t, 5, dashboard.PendingAssessments)
	require.Equal(t, int64(48550), dashboard.FeesDue)
	require.True(t, dashboard.Eligibility.Eligible)

	h.dashboard.now = func() time.Time { return seededAt.Add(10 * time.Hour) }
	late, err := h.dashboard.Overview(context.Background(), h.studentID, "fr")
	require.NoError(t, err)
	require.Equal(t, "Bonne Nuit, Alex", late.Greeting)
}

func TestSeedReseedRestoresFixtures(t *testing.T) {
	h := newPortalHarness(t)
	ctx := context.Background()

	_, err := h.notices.MarkRead(ctx, "n1")
	require.NoError(t, err)

	_, err = h.seed.Reseed(ctx, "wrong")
	require.ErrorIs(t, err, ErrSeedUnauthorized)

	report, err := h.seed.Reseed(ctx, "seed-token")
	require.NoError(t, err)
	require.Equal(t, 4, report.Notices)
	require.Equal(t, 15, report.Modules)

	count, err := h.notices.CountNew(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	profile, err := h.repos.Profiles.GetByStudentNumber(ctx, "2024277634")
	require.NoError(t, err)
	require.Equal(t, h.studentID, profile.ID)

	disabled := NewSeedService(h.repos, nil, "", ist, h.seed.logger)
	_, err = disabled.Reseed(ctx, "anything")
	require.ErrorIs(t, err, ErrSeedDisabled)
}
