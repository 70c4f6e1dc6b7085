package service

import (
	"bytes"
	"context"
	"errors"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/events"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

// ErrNoticeNotFound is returned when the notice id is unknown.
var ErrNoticeNotFound = errors.New("notice not found")

// Raw HTML in a description is dropped by the renderer and the output is sanitised again.
var noticeMarkdown = goldmark.New(goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()))

// NoticeService lists campus notices and tracks which were opened.
type NoticeService interface {
	List(ctx context.Context, newOnly bool) (dto.NoticeListResponse, error)
	MarkRead(ctx context.Context, id string) (dto.NoticeResponse, error)
	CountNew(ctx context.Context) (int64, error)
}

type noticeService struct {
	repo      repository.NoticeRepository
	publisher events.Publisher
	sanitizer *bluemonday.Policy
	rich      *bluemonday.Policy
	logger    zerolog.Logger
}

// NewNoticeService builds the notice service.
func NewNoticeService(repo repository.NoticeRepository, publisher events.Publisher, logger zerolog.Logger) NoticeService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &noticeService{
		repo:      repo,
		publisher: publisher,
		sanitizer: bluemonday.StrictPolicy(),
		rich:      bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "notice_service").Logger(),
	}
}

func (s *noticeService) List(ctx context.Context, newOnly bool) (dto.NoticeListResponse, error) {
	notices, err := s.repo.List(ctx, newOnly)
	if err != nil {
		return dto.NoticeListResponse{}, err
	}

	count, err := s.repo.CountNew(ctx)
	if err != nil {
		return dto.NoticeListResponse{}, err
	}

	items := make([]dto.NoticeResponse, 0, len(notices))
	for _, notice := range notices {
		items = append(items, s.toResponse(notice))
	}
	return dto.NoticeListResponse{Items: items, NewCount: count}, nil
}

// MarkRead clears the new flag. Opening an already read notice is a no-op.
func (s *noticeService) MarkRead(ctx context.Context, id string) (dto.NoticeResponse, error) {
	id = strings.TrimSpace(id)
	changed, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return dto.NoticeResponse{}, err
	}

	notice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NoticeResponse{}, ErrNoticeNotFound
		}
		return dto.NoticeResponse{}, err
	}

	if changed {
		s.publisher.Publish(ctx, events.NoticeRead, map[string]string{"notice_id": notice.ID})
		s.logger.Debug().Str("notice_id", notice.ID).Msg("notice marked as read")
	}

	return s.toResponse(notice), nil
}

func (s *noticeService) CountNew(ctx context.Context) (int64, error) {
	return s.repo.CountNew(ctx)
}

func (s *noticeService) toResponse(notice models.Notice) dto.NoticeResponse {
	return dto.NoticeResponse{
		ID:              notice.ID,
		Title:           strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(notice.Title))),
		Description:     strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(notice.Description))),
		DescriptionHTML: s.renderDescription(notice),
		PublishedAt:     notice.PublishedAt,
		IsNew:           notice.IsNew,
		HasAttachment:   notice.HasAttachment,
	}
}

func (s *noticeService) renderDescription(notice models.Notice) string {
	var buf bytes.Buffer
	if err := noticeMarkdown.Convert([]byte(notice.Description), &buf); err != nil {
		s.logger.Warn().Err(err).Str("notice_id", notice.ID).Msg("failed to render notice description")
		return ""
	}
	return strings.TrimSpace(s.rich.Sanitize(buf.String()))
}
