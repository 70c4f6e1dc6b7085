// Package fixtures loads the demo data set that backs a portal session.
//
// Timestamps that only make sense relative to the moment the session starts
// (assessment due dates, notice publish dates) are stored as signed offsets
// and resolved against the supplied reference time.
package fixtures

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gorm.io/datatypes"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

//go:embed data/portal.json data/schema.json
var files embed.FS

const schemaURL = "schema.json"

// Set is the resolved fixture data ready to be stored.
type Set struct {
	Student     models.StudentProfile
	Classes     []models.ClassSession
	Subjects    []models.SubjectAttendance
	Records     []models.AttendanceRecord
	Assessments []models.AssessmentTask
	Exams       []models.ExamSlot
	Semesters   []models.SemesterResult
	Notices     []models.Notice
	Fees        []models.FeeLineItem
	Syllabus    []models.SyllabusModule
}

type document struct {
	Student     models.StudentProfile      `json:"student"`
	Classes     []models.ClassSession      `json:"classes"`
	Subjects    []models.SubjectAttendance `json:"subjects"`
	Records     []recordFixture            `json:"records"`
	Assessments []assessmentFixture        `json:"assessments"`
	Exams       []examFixture              `json:"exams"`
	Semesters   []models.SemesterResult    `json:"semesters"`
	Notices     []noticeFixture            `json:"notices"`
	Fees        []models.FeeLineItem       `json:"fees"`
	Syllabus    []models.SyllabusModule    `json:"syllabus"`
}

type recordFixture struct {
	Date        string `json:"date"`
	SubjectName string `json:"subject_name"`
	SubjectCode string `json:"subject_code"`
	Status      string `json:"status"`
}

type assessmentFixture struct {
	ID            string `json:"id"`
	SubjectCode   string `json:"subject_code"`
	Type          string `json:"type"`
	Title         string `json:"title"`
	DueIn         string `json:"due_in"`
	Submitted     bool   `json:"submitted"`
	Marks         *int   `json:"marks"`
	TotalMarks    int    `json:"total_marks"`
	AttachmentURL string `json:"attachment_url"`
}

type examFixture struct {
	SubjectCode string `json:"subject_code"`
	SubjectName string `json:"subject_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Room        string `json:"room"`
	Building    string `json:"building"`
}

type noticeFixture struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	PublishedAgo  string `json:"published_ago"`
	IsNew         bool   `json:"is_new"`
	HasAttachment bool   `json:"has_attachment"`
}

// Load resolves the embedded portal fixtures against now.
func Load(now time.Time) (Set, error) {
	raw, err := files.ReadFile("data/portal.json")
	if err != nil {
		return Set{}, fmt.Errorf("read fixtures: %w", err)
	}
	return Parse(raw, now)
}

// Parse validates raw against the fixture schema and resolves relative offsets
// against now. Calendar dates are kept as UTC midnight.
func Parse(raw []byte, now time.Time) (Set, error) {
	if err := validate(raw); err != nil {
		return Set{}, err
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Set{}, fmt.Errorf("decode fixtures: %w", err)
	}

	set := Set{
		Student:   doc.Student,
		Semesters: doc.Semesters,
		Fees:      doc.Fees,
	}

	for i, class := range doc.Classes {
		class.Position = i
		set.Classes = append(set.Classes, class)
	}

	for _, subject := range doc.Subjects {
		if err := subject.Validate(); err != nil {
			return Set{}, fmt.Errorf("invalid attendance fixture: %w", err)
		}
		set.Subjects = append(set.Subjects, subject)
	}

	for _, record := range doc.Records {
		date, err := time.Parse(time.DateOnly, record.Date)
		if err != nil {
			return Set{}, fmt.Errorf("attendance record %s: %w", record.SubjectCode, err)
		}
		set.Records = append(set.Records, models.AttendanceRecord{
			Date:        date,
			SubjectName: record.SubjectName,
			SubjectCode: record.SubjectCode,
			Status:      record.Status,
		})
	}

	for _, item := range doc.Assessments {
		offset, err := time.ParseDuration(item.DueIn)
		if err != nil {
			return Set{}, fmt.Errorf("assessment %s: %w", item.ID, err)
		}
		if item.Marks != nil && *item.Marks > item.TotalMarks {
			return Set{}, fmt.Errorf("assessment %s: marks exceed total", item.ID)
		}
		set.Assessments = append(set.Assessments, models.AssessmentTask{
			ID:            item.ID,
			SubjectCode:   item.SubjectCode,
			Type:          item.Type,
			Title:         item.Title,
			DueDate:       now.Add(offset),
			Submitted:     item.Submitted,
			Marks:         item.Marks,
			TotalMarks:    item.TotalMarks,
			AttachmentURL: item.AttachmentURL,
		})
	}

	for _, exam := range doc.Exams {
		date, err := time.Parse(time.DateOnly, exam.Date)
		if err != nil {
			return Set{}, fmt.Errorf("exam %s: %w", exam.SubjectCode, err)
		}
		set.Exams = append(set.Exams, models.ExamSlot{
			SubjectCode: exam.SubjectCode,
			SubjectName: exam.SubjectName,
			Date:        date,
			Time:        exam.Time,
			Room:        exam.Room,
			Building:    exam.Building,
		})
	}

	for _, notice := range doc.Notices {
		ago, err := time.ParseDuration(notice.PublishedAgo)
		if err != nil {
			return Set{}, fmt.Errorf("notice %s: %w", notice.ID, err)
		}
		set.Notices = append(set.Notices, models.Notice{
			ID:            notice.ID,
			Title:         notice.Title,
			Description:   notice.Description,
			PublishedAt:   now.Add(-ago),
			IsNew:         notice.IsNew,
			HasAttachment: notice.HasAttachment,
		})
	}

	for i, module := range doc.Syllabus {
		module.Position = i
		if module.Topics == nil {
			module.Topics = datatypes.JSONSlice[models.SyllabusTopic]{}
		}
		set.Syllabus = append(set.Syllabus, module)
	}

	return set, nil
}

func validate(raw []byte) error {
	schemaBytes, err := files.ReadFile("data/schema.json")
	if err != nil {
		return fmt.Errorf("read fixture schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaBytes)); err != nil {
		return fmt.Errorf("load fixture schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("compile fixture schema: %w", err)
	}

	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("fixtures do not match schema: %w", err)
	}
	return nil
}
