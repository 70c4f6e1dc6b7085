package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.StudentProfile{},
		&models.AttendanceRecord{},
		&models.SubjectAttendance{},
		&models.AssessmentTask{},
		&models.Notice{},
		&models.SyllabusModule{},
		&models.AssistantMessage{},
	))
	return db
}

func TestNoticeRepositoryMarkReadIsIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewNoticeRepository(db)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Replace(ctx, []models.Notice{
		{ID: "n1", Title: "Exams", PublishedAt: now, IsNew: true},
		{ID: "n2", Title: "Fees", PublishedAt: now.Add(-48 * time.Hour), IsNew: true},
		{ID: "n3", Title: "Library", PublishedAt: now.Add(-96 * time.Hour), IsNew: false},
	}))

	count, err := repo.CountNew(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	changed, err := repo.MarkRead(ctx, "n1")
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = repo.MarkRead(ctx, "n1")
	require.NoError(t, err)
	require.False(t, changed)

	fresh, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	require.Equal(t, "n2", fresh[0].ID)

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Equal(t, []string{"n1", "n2", "n3"}, []string{all[0].ID, all[1].ID, all[2].ID})
}

func TestAttendanceRepositoryFilters(t *testing.T) {
	db := setupDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()
	day := time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.ReplaceRecords(ctx, []models.AttendanceRecord{
		{Date: day.AddDate(0, 0, -1), SubjectCode: "CS301", Status: models.AttendancePresent},
		{Date: day, SubjectCode: "CS301", Status: models.AttendanceAbsent},
		{Date: day, SubjectCode: "CS302", Status: models.AttendancePresent},
	}))

	records, err := repo.ListRecords(ctx, AttendanceRecordFilter{SubjectCode: "CS301"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.True(t, records[0].Date.After(records[1].Date))

	records, err = repo.ListRecords(ctx, AttendanceRecordFilter{Status: models.AttendancePresent})
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Replacing wipes the previous fixture rows.
	require.NoError(t, repo.ReplaceRecords(ctx, nil))
	records, err = repo.ListRecords(ctx, AttendanceRecordFilter{})
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestAssessmentRepositoryGradedFilter(t *testing.T) {
	db := setupDB(t)
	repo := NewAssessmentRepository(db)
	ctx := context.Background()
	now := time.Now()
	marks := 18

	require.NoError(t, repo.ReplaceAssessments(ctx, []models.AssessmentTask{
		{ID: "A1", SubjectCode: "CS-201", Title: "One", DueDate: now.Add(time.Hour), TotalMarks: 20},
		{ID: "A2", SubjectCode: "MATH-102", Title: "Two", DueDate: now.Add(-time.Hour), Submitted: true, Marks: &marks, TotalMarks: 20},
	}))

	graded := true
	tasks, err := repo.List(ctx, AssessmentFilter{Graded: &graded})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "A2", tasks[0].ID)

	submitted := false
	tasks, err = repo.List(ctx, AssessmentFilter{Submitted: &submitted, SubjectCode: "CS-201"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "A1", tasks[0].ID)
}

func TestProfileRepositoryUpsertKeepsSingleRecord(t *testing.T) {
	db := setupDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	profile := models.StudentProfile{StudentNumber: "2024277634", Name: "Alex Johnson"}
	require.NoError(t, repo.Upsert(ctx, &profile))
	require.NotZero(t, profile.ID)

	again := models.StudentProfile{StudentNumber: "2024277634", Name: "Alex J."}
	require.NoError(t, repo.Upsert(ctx, &again))

	stored, err := repo.GetByStudentNumber(ctx, "2024277634")
	require.NoError(t, err)
	require.Equal(t, "Alex J.", stored.Name)

	var total int64
	require.NoError(t, db.Model(&models.StudentProfile{}).Count(&total).Error)
	require.EqualValues(t, 1, total)
}

func TestAssistantRepositoryChronologicalHistory(t *testing.T) {
	db := setupDB(t)
	repo := NewAssistantRepository(db)
	ctx := context.Background()

	for i, text := range []string{"hi", "hello", "bye"} {
		require.NoError(t, repo.Save(ctx, &models.AssistantMessage{StudentID: 7, Role: models.AssistantRoleUser, Text: text, CreatedAt: time.Unix(int64(i), 0)}))
	}
	require.NoError(t, repo.Save(ctx, &models.AssistantMessage{StudentID: 8, Role: models.AssistantRoleUser, Text: "other"}))

	messages, err := repo.ListByStudent(ctx, 7, 0)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	require.Equal(t, "hi", messages[0].Text)
	require.Equal(t, "bye", messages[2].Text)

	count, err := repo.CountByStudent(ctx, 8)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
