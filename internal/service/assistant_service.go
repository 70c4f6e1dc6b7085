package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/observability"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	"github.com/noah-isme/campus-portal-api/pkg/ai"
)

// Fixed replies used when the model cannot answer.
const (
	AssistantErrorFallback = "Sorry, I couldn't process that request. Please check your connection."
	AssistantEmptyFallback = "I'm having a bit of trouble connecting to the academic server right now. Please try again."
)

const assistantHistoryLimit = 200

var (
	// ErrAssistantBusy is returned while a previous message of the same student awaits its reply.
	ErrAssistantBusy = errors.New("assistant is still answering the previous message")
	// ErrEmptyAssistantMessage is returned when the text is blank after sanitising.
	ErrEmptyAssistantMessage = errors.New("message text is required")
)

// AssistantService manages the per-student assistant transcript.
type AssistantService interface {
	History(ctx context.Context, studentID uint) ([]dto.AssistantMessageResponse, error)
	Send(ctx context.Context, studentID uint, req dto.AssistantMessageRequest) (dto.AssistantExchangeResponse, error)
}

type assistantService struct {
	repo      repository.AssistantRepository
	profiles  repository.ProfileRepository
	schedule  ScheduleService
	responder ai.Responder
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time

	mu       sync.Mutex
	inFlight map[uint]struct{}
}

// NewAssistantService wires the assistant to a responder.
func NewAssistantService(
	repo repository.AssistantRepository,
	profiles repository.ProfileRepository,
	schedule ScheduleService,
	responder ai.Responder,
	validate *validator.Validate,
	logger zerolog.Logger,
) AssistantService {
	return &assistantService{
		repo:      repo,
		profiles:  profiles,
		schedule:  schedule,
		responder: responder,
		validator: validate,
		logger:    logger.With().Str("component", "assistant_service").Logger(),
		now:       time.Now,
		inFlight:  make(map[uint]struct{}),
	}
}

func (s *assistantService) History(ctx context.Context, studentID uint) ([]dto.AssistantMessageResponse, error) {
	if err := s.ensureGreeting(ctx, studentID); err != nil {
		return nil, err
	}

	messages, err := s.repo.ListByStudent(ctx, studentID, assistantHistoryLimit)
	if err != nil {
		return nil, err
	}

	result := make([]dto.AssistantMessageResponse, 0, len(messages))
	for _, message := range messages {
		result = append(result, newAssistantMessageResponse(message))
	}
	return result, nil
}

func (s *assistantService) Send(ctx context.Context, studentID uint, req dto.AssistantMessageRequest) (dto.AssistantExchangeResponse, error) {
	// The text is stored and sent exactly as typed; trimming only decides emptiness.
	if strings.TrimSpace(req.Text) == "" {
		return dto.AssistantExchangeResponse{}, ErrEmptyAssistantMessage
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.AssistantExchangeResponse{}, err
	}

	if !s.acquire(studentID) {
		return dto.AssistantExchangeResponse{}, ErrAssistantBusy
	}
	defer s.release(studentID)

	if err := s.ensureGreeting(ctx, studentID); err != nil {
		return dto.AssistantExchangeResponse{}, err
	}

	userMessage := models.AssistantMessage{
		StudentID: studentID,
		Role:      models.AssistantRoleUser,
		Text:      req.Text,
		CreatedAt: s.now(),
	}
	if err := s.repo.Save(ctx, &userMessage); err != nil {
		return dto.AssistantExchangeResponse{}, err
	}

	// The reply is appended even if the client goes away mid-request.
	detached := context.WithoutCancel(ctx)

	reply, fallback := s.reply(detached, studentID, req.Text)
	modelMessage := models.AssistantMessage{
		StudentID: studentID,
		Role:      models.AssistantRoleModel,
		Text:      reply,
		Fallback:  fallback,
		CreatedAt: s.now(),
	}
	if err := s.repo.Save(detached, &modelMessage); err != nil {
		return dto.AssistantExchangeResponse{}, err
	}

	return dto.AssistantExchangeResponse{
		UserMessage:  newAssistantMessageResponse(userMessage),
		ModelMessage: newAssistantMessageResponse(modelMessage),
	}, nil
}

func (s *assistantService) reply(ctx context.Context, studentID uint, text string) (string, bool) {
	prompt := ai.Prompt{System: s.systemPrompt(ctx, studentID), User: text}

	answer, err := s.responder.Respond(ctx, prompt)
	switch {
	case errors.Is(err, ai.ErrEmptyResponse), err == nil && strings.TrimSpace(answer) == "":
		observability.AssistantReplies().WithLabelValues("fallback").Inc()
		s.logger.Warn().Uint("student_id", studentID).Msg("assistant returned empty reply")
		return AssistantEmptyFallback, true
	case err != nil:
		observability.AssistantReplies().WithLabelValues("fallback").Inc()
		s.logger.Error().Err(err).Uint("student_id", studentID).Msg("assistant request failed")
		return AssistantErrorFallback, true
	}

	if canned, ok := s.responder.(ai.Canned); ok && canned.Canned() {
		observability.AssistantReplies().WithLabelValues("fallback").Inc()
		return strings.TrimSpace(answer), true
	}

	observability.AssistantReplies().WithLabelValues("model").Inc()
	return strings.TrimSpace(answer), false
}

func (s *assistantService) systemPrompt(ctx context.Context, studentID uint) string {
	name := "the student"
	if profile, err := s.profiles.GetByID(ctx, studentID); err == nil && profile.FirstName() != "" {
		name = profile.FirstName()
	}

	var classes []string
	if s.schedule != nil {
		if today, err := s.schedule.Today(ctx); err == nil {
			for _, session := range today.Sessions {
				classes = append(classes, fmt.Sprintf("%s (%s)", session.SubjectName, scheduleWord(session.Status)))
			}
		} else {
			s.logger.Warn().Err(err).Msg("schedule unavailable for assistant prompt")
		}
	}

	return BuildAssistantPrompt(name, classes)
}

// BuildAssistantPrompt renders the fixed assistant instruction for a student and today's classes.
func BuildAssistantPrompt(firstName string, classes []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an AI Academic Co-Pilot for a university student named %s.\n", firstName)
	b.WriteString("Your goal is to help them manage their schedule, study efficiently, and reduce stress.\n")
	b.WriteString("Keep your responses concise, encouraging, and helpful.")
	if len(classes) > 0 {
		fmt.Fprintf(&b, "\nYou have access to their schedule: %s.", strings.Join(classes, ", "))
	}
	return b.String()
}

func scheduleWord(status string) string {
	switch status {
	case models.SessionStatusCompleted:
		return "Done"
	case models.SessionStatusOngoing:
		return "Now"
	default:
		return "Later"
	}
}

func (s *assistantService) ensureGreeting(ctx context.Context, studentID uint) error {
	count, err := s.repo.CountByStudent(ctx, studentID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	name := "there"
	if profile, err := s.profiles.GetByID(ctx, studentID); err == nil && profile.FirstName() != "" {
		name = profile.FirstName()
	}

	greeting := models.AssistantMessage{
		StudentID: studentID,
		Role:      models.AssistantRoleModel,
		Text:      fmt.Sprintf("Hi %s! I'm your Academic Co-Pilot. I can help with your schedule, grades, or finding campus resources.", name),
		CreatedAt: s.now(),
	}
	return s.repo.Save(ctx, &greeting)
}

func (s *assistantService) acquire(studentID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[studentID]; busy {
		return false
	}
	s.inFlight[studentID] = struct{}{}
	return true
}

func (s *assistantService) release(studentID uint) {
	s.mu.Lock()
	delete(s.inFlight, studentID)
	s.mu.Unlock()
}

func newAssistantMessageResponse(message models.AssistantMessage) dto.AssistantMessageResponse {
	return dto.AssistantMessageResponse{
		ID:        message.ID,
		Role:      message.Role,
		Text:      message.Text,
		Fallback:  message.Fallback,
		CreatedAt: message.CreatedAt,
	}
}
