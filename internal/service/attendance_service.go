package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/observability"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

const attendanceSummaryCacheKey = "attendance:summary:v1"

// AttendanceService exposes the attendance ledger.
type AttendanceService interface {
	Subjects(ctx context.Context) ([]dto.SubjectAttendanceResponse, error)
	Summary(ctx context.Context) (dto.AttendanceSummaryResult, error)
	Records(ctx context.Context, query dto.AttendanceRecordQuery) ([]dto.AttendanceRecordResponse, error)
	InvalidateSummary(ctx context.Context) error
}

type attendanceService struct {
	repo      repository.AttendanceRepository
	validator *validator.Validate
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAttendanceService builds the attendance aggregator. The summary is cached when cache is non-nil.
func NewAttendanceService(repo repository.AttendanceRepository, validate *validator.Validate, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		repo:      repo,
		validator: validate,
		cache:     cache,
		cacheTTL:  ttl,
		logger:    logger.With().Str("component", "attendance_service").Logger(),
		now:       time.Now,
	}
}

func (s *attendanceService) Subjects(ctx context.Context) ([]dto.SubjectAttendanceResponse, error) {
	subjects, err := s.repo.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.SubjectAttendanceResponse, 0, len(subjects))
	for _, subject := range subjects {
		if err := subject.Validate(); err != nil {
			s.logger.Warn().Err(err).Msg("inconsistent attendance row")
		}
		result = append(result, NewSubjectAttendanceResponse(subject))
	}
	return result, nil
}

func (s *attendanceService) Summary(ctx context.Context) (dto.AttendanceSummaryResult, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, attendanceSummaryCacheKey).Result()
		if err == nil {
			var summary dto.AttendanceSummary
			if unmarshalErr := json.Unmarshal([]byte(cached), &summary); unmarshalErr == nil {
				observability.AttendanceCache().WithLabelValues("hit").Inc()
				return dto.AttendanceSummaryResult{Summary: summary, CacheHit: true}, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read attendance cache")
		}
		observability.AttendanceCache().WithLabelValues("miss").Inc()
	}

	subjects, err := s.repo.ListSubjects(ctx)
	if err != nil {
		return dto.AttendanceSummaryResult{}, err
	}

	summary := FoldAttendance(subjects, s.now())

	if s.cache != nil {
		if payload, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, attendanceSummaryCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store attendance cache")
			}
		}
	}

	return dto.AttendanceSummaryResult{Summary: summary}, nil
}

func (s *attendanceService) Records(ctx context.Context, query dto.AttendanceRecordQuery) ([]dto.AttendanceRecordResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, err
	}

	records, err := s.repo.ListRecords(ctx, repository.AttendanceRecordFilter{
		SubjectCode: query.SubjectCode,
		Status:      query.Status,
	})
	if err != nil {
		return nil, err
	}

	result := make([]dto.AttendanceRecordResponse, 0, len(records))
	for _, record := range records {
		result = append(result, dto.AttendanceRecordResponse{
			Date:        record.Date.Format(time.DateOnly),
			Day:         record.Date.Weekday().String()[:3],
			SubjectName: record.SubjectName,
			SubjectCode: record.SubjectCode,
			Status:      record.Status,
		})
	}
	return result, nil
}

// InvalidateSummary drops the cached summary so the next read re-folds the ledger.
func (s *attendanceService) InvalidateSummary(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, attendanceSummaryCacheKey).Err()
}
