package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

var (
	// ErrChallengeNotFound is returned for unknown or expired login challenges.
	ErrChallengeNotFound = errors.New("login challenge not found or expired")
	// ErrInvalidOTP is returned when the code is rejected by the verifier.
	ErrInvalidOTP = errors.New("please enter the complete 6-digit OTP")
)

// RoleStudent is the only role issued by the portal.
const RoleStudent = "student"

var otpPattern = regexp.MustCompile(`^[0-9]{6}$`)

// Verifier checks one-time codes for a challenge.
type Verifier interface {
	Verify(ctx context.Context, challengeID, code string) error
}

// MockVerifier accepts any six digit code.
type MockVerifier struct{}

// Verify implements Verifier.
func (MockVerifier) Verify(_ context.Context, _ string, code string) error {
	if !otpPattern.MatchString(code) {
		return ErrInvalidOTP
	}
	return nil
}

// AuthConfig configures token issuance and challenge lifetime.
type AuthConfig struct {
	Secret            string
	TokenTTL          time.Duration
	ChallengeTTL      time.Duration
	DemoStudentNumber string
}

// AuthService drives the id-entry, otp-entry, authenticated login flow.
type AuthService interface {
	RequestOTP(ctx context.Context, req dto.OTPRequest) (dto.OTPChallengeResponse, error)
	VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (dto.AuthResponse, error)
	Back(ctx context.Context, req dto.LoginBackRequest) (dto.LoginStateResponse, error)
}

type challenge struct {
	profileID uint
	expiresAt time.Time
}

type authService struct {
	profiles   repository.ProfileRepository
	verifier   Verifier
	validator  *validator.Validate
	cfg        AuthConfig
	logger     zerolog.Logger
	now        func() time.Time
	mu         sync.Mutex
	challenges map[string]challenge
}

// NewAuthService constructs the login flow service.
func NewAuthService(profiles repository.ProfileRepository, verifier Verifier, validate *validator.Validate, cfg AuthConfig, logger zerolog.Logger) AuthService {
	if verifier == nil {
		verifier = MockVerifier{}
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	if cfg.ChallengeTTL <= 0 {
		cfg.ChallengeTTL = 5 * time.Minute
	}
	return &authService{
		profiles:   profiles,
		verifier:   verifier,
		validator:  validate,
		cfg:        cfg,
		logger:     logger.With().Str("component", "auth_service").Logger(),
		now:        time.Now,
		challenges: make(map[string]challenge),
	}
}

func (s *authService) RequestOTP(ctx context.Context, req dto.OTPRequest) (dto.OTPChallengeResponse, error) {
	req.StudentID = strings.TrimSpace(req.StudentID)
	if err := s.validator.Struct(req); err != nil {
		return dto.OTPChallengeResponse{}, err
	}

	profile, err := s.resolveProfile(ctx, req.StudentID)
	if err != nil {
		return dto.OTPChallengeResponse{}, err
	}

	now := s.now()
	id := uuid.NewString()
	expiresAt := now.Add(s.cfg.ChallengeTTL)

	s.mu.Lock()
	s.purgeExpiredLocked(now)
	s.challenges[id] = challenge{profileID: profile.ID, expiresAt: expiresAt}
	s.mu.Unlock()

	s.logger.Info().Str("challenge_id", id).Uint("profile_id", profile.ID).Msg("otp challenge issued")

	return dto.OTPChallengeResponse{
		State:         dto.LoginStateOTPEntry,
		ChallengeID:   id,
		MaskedContact: MaskContact(profile.Email, profile.Phone),
		ExpiresAt:     expiresAt,
	}, nil
}

func (s *authService) VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AuthResponse{}, err
	}

	now := s.now()
	s.mu.Lock()
	pending, ok := s.challenges[req.ChallengeID]
	if ok && now.After(pending.expiresAt) {
		delete(s.challenges, req.ChallengeID)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return dto.AuthResponse{}, ErrChallengeNotFound
	}

	if err := s.verifier.Verify(ctx, req.ChallengeID, req.Code); err != nil {
		return dto.AuthResponse{}, err
	}

	profile, err := s.profiles.GetByID(ctx, pending.profileID)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	expiresAt := now.Add(s.cfg.TokenTTL)
	token, err := IssueToken(s.cfg.Secret, profile, now, expiresAt)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("sign token: %w", err)
	}

	s.mu.Lock()
	delete(s.challenges, req.ChallengeID)
	s.mu.Unlock()

	s.logger.Info().Uint("profile_id", profile.ID).Msg("student authenticated")

	return dto.AuthResponse{
		State:     dto.LoginStateAuthenticated,
		Token:     token,
		ExpiresAt: expiresAt,
		StudentID: profile.ID,
		Name:      profile.Name,
	}, nil
}

func (s *authService) Back(_ context.Context, req dto.LoginBackRequest) (dto.LoginStateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginStateResponse{}, err
	}

	s.mu.Lock()
	delete(s.challenges, req.ChallengeID)
	s.mu.Unlock()

	return dto.LoginStateResponse{State: dto.LoginStateIDEntry}, nil
}

// resolveProfile binds any entered identifier to a stored profile, falling back to the demo student.
func (s *authService) resolveProfile(ctx context.Context, studentID string) (models.StudentProfile, error) {
	profile, err := s.profiles.GetByStudentNumber(ctx, studentID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.StudentProfile{}, err
	}
	return s.profiles.GetByStudentNumber(ctx, s.cfg.DemoStudentNumber)
}

func (s *authService) purgeExpiredLocked(now time.Time) {
	for id, pending := range s.challenges {
		if now.After(pending.expiresAt) {
			delete(s.challenges, id)
		}
	}
}

// IssueToken signs an HS256 token whose subject is the profile id.
func IssueToken(secret string, profile models.StudentProfile, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":            strconv.FormatUint(uint64(profile.ID), 10),
		"role":           RoleStudent,
		"student_number": profile.StudentNumber,
		"iat":            issuedAt.Unix(),
		"exp":            expiresAt.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// MaskContact hides all but the first two characters of the email local part and the last four phone digits.
func MaskContact(email, phone string) string {
	parts := make([]string, 0, 2)
	if at := strings.Index(email, "@"); at > 0 {
		local := email[:at]
		if len(local) > 2 {
			local = local[:2]
		}
		parts = append(parts, local+"***"+email[at:])
	}
	if digits := strings.TrimSpace(phone); digits != "" {
		visible := digits
		if len(digits) > 4 {
			visible = digits[len(digits)-4:]
		}
		parts = append(parts, "******"+visible)
	}
	return strings.Join(parts, " / ")
}
