package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

// ErrSubjectNotFound is returned when no syllabus exists for a subject code.
var ErrSubjectNotFound = errors.New("subject not found")

// SyllabusService exposes module coverage per subject.
type SyllabusService interface {
	List(ctx context.Context) ([]dto.SubjectSyllabusResponse, error)
	Subject(ctx context.Context, code string) (dto.SubjectSyllabusResponse, error)
}

type syllabusService struct {
	repo   repository.SyllabusRepository
	logger zerolog.Logger
}

// NewSyllabusService builds the syllabus service.
func NewSyllabusService(repo repository.SyllabusRepository, logger zerolog.Logger) SyllabusService {
	return &syllabusService{
		repo:   repo,
		logger: logger.With().Str("component", "syllabus_service").Logger(),
	}
}

func (s *syllabusService) List(ctx context.Context) ([]dto.SubjectSyllabusResponse, error) {
	modules, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.SyllabusModule)
	codes := make([]string, 0)
	for _, module := range modules {
		if _, ok := grouped[module.SubjectCode]; !ok {
			codes = append(codes, module.SubjectCode)
		}
		grouped[module.SubjectCode] = append(grouped[module.SubjectCode], module)
	}
	sort.Strings(codes)

	result := make([]dto.SubjectSyllabusResponse, 0, len(codes))
	for _, code := range codes {
		result = append(result, NewSubjectSyllabus(code, grouped[code]))
	}
	return result, nil
}

func (s *syllabusService) Subject(ctx context.Context, code string) (dto.SubjectSyllabusResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	modules, err := s.repo.List(ctx, code)
	if err != nil {
		return dto.SubjectSyllabusResponse{}, err
	}
	if len(modules) == 0 {
		return dto.SubjectSyllabusResponse{}, ErrSubjectNotFound
	}
	return NewSubjectSyllabus(code, modules), nil
}

// NewSubjectSyllabus derives topic coverage per module and the mean authored completion.
func NewSubjectSyllabus(code string, modules []models.SyllabusModule) dto.SubjectSyllabusResponse {
	response := dto.SubjectSyllabusResponse{
		SubjectCode: code,
		Modules:     make([]dto.SyllabusModuleResponse, 0, len(modules)),
	}

	completionSum := 0
	for _, module := range modules {
		item := dto.SyllabusModuleResponse{
			Name:       module.Name,
			Completion: module.Completion,
			Topics:     make([]dto.SyllabusTopicResponse, 0, len(module.Topics)),
		}
		for _, topic := range module.Topics {
			item.Topics = append(item.Topics, dto.SyllabusTopicResponse{Name: topic.Name, IsCovered: topic.IsCovered})
			if topic.IsCovered {
				item.CoveredTopics++
			}
		}
		item.TotalTopics = len(module.Topics)
		item.TopicCoverage = Percentage(item.CoveredTopics, item.TotalTopics)

		completionSum += module.Completion
		response.Modules = append(response.Modules, item)
	}

	if len(modules) > 0 {
		response.OverallCompletion = Percentage(completionSum, 100*len(modules))
	}
	return response
}
