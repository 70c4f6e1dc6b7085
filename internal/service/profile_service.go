package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/events"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/repository"
)

// Photo kinds accepted by PreviewPhoto.
const (
	PhotoStudent = "student"
	PhotoFather  = "father"
	PhotoMother  = "mother"
)

const (
	photoPreviewSize    = 256
	maxPhotoUploadBytes = 5 << 20
)

var (
	// ErrNoProfileChanges is returned when a merge update changes nothing.
	ErrNoProfileChanges = errors.New("no profile changes")
	// ErrUnknownPhotoKind is returned for photo kinds other than student, father or mother.
	ErrUnknownPhotoKind = errors.New("unknown photo kind")
	// ErrUnsupportedPhoto is returned when the upload is not a decodable image.
	ErrUnsupportedPhoto = errors.New("unsupported photo format")
	// ErrPhotoTooLarge is returned when the upload exceeds the preview limit.
	ErrPhotoTooLarge = errors.New("photo exceeds 5MB")
)

var allowedPhotoTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/bmp":  {},
	"image/tiff": {},
}

// ProfileService owns the shared student identity record.
type ProfileService interface {
	Get(ctx context.Context, studentID uint) (dto.ProfileResponse, error)
	Update(ctx context.Context, studentID uint, req dto.ProfileUpdateRequest) (dto.ProfileUpdateResponse, error)
	PreviewPhoto(ctx context.Context, kind string, data []byte) (dto.PhotoPreviewResponse, error)
}

type profileService struct {
	repo      repository.ProfileRepository
	validator *validator.Validate
	publisher events.Publisher
	logger    zerolog.Logger
	mu        sync.Mutex
}

// NewProfileService builds the profile store.
func NewProfileService(repo repository.ProfileRepository, validate *validator.Validate, publisher events.Publisher, logger zerolog.Logger) ProfileService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &profileService{
		repo:      repo,
		validator: validate,
		publisher: publisher,
		logger:    logger.With().Str("component", "profile_service").Logger(),
	}
}

func (s *profileService) Get(ctx context.Context, studentID uint) (dto.ProfileResponse, error) {
	profile, err := s.repo.GetByID(ctx, studentID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	return NewProfileResponse(profile), nil
}

// Update applies a merge update. Concurrent updates are serialised so each
// one reads the result of the previous.
func (s *profileService) Update(ctx context.Context, studentID uint, req dto.ProfileUpdateRequest) (dto.ProfileUpdateResponse, error) {
	req = trimProfileRequest(req)
	if err := s.validator.Struct(req); err != nil {
		return dto.ProfileUpdateResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.repo.GetByID(ctx, studentID)
	if err != nil {
		return dto.ProfileUpdateResponse{}, err
	}

	changed := MergeProfile(&profile, req)
	if len(changed) == 0 {
		return dto.ProfileUpdateResponse{}, ErrNoProfileChanges
	}

	if err := s.repo.Save(ctx, &profile); err != nil {
		return dto.ProfileUpdateResponse{}, err
	}

	s.publisher.Publish(ctx, events.ProfileUpdated, map[string]interface{}{
		"student_id":     profile.ID,
		"changed_fields": changed,
	})
	s.logger.Info().Uint("student_id", profile.ID).Strs("changed_fields", changed).Msg("profile updated")

	return dto.ProfileUpdateResponse{Profile: NewProfileResponse(profile), ChangedFields: changed}, nil
}

func (s *profileService) PreviewPhoto(_ context.Context, kind string, data []byte) (dto.PhotoPreviewResponse, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	switch kind {
	case PhotoStudent, PhotoFather, PhotoMother:
	default:
		return dto.PhotoPreviewResponse{}, ErrUnknownPhotoKind
	}

	if len(data) == 0 {
		return dto.PhotoPreviewResponse{}, ErrUnsupportedPhoto
	}
	if len(data) > maxPhotoUploadBytes {
		return dto.PhotoPreviewResponse{}, ErrPhotoTooLarge
	}

	detected := mimetype.Detect(data)
	if _, ok := allowedPhotoTypes[detected.String()]; !ok {
		return dto.PhotoPreviewResponse{}, fmt.Errorf("%w: %s", ErrUnsupportedPhoto, detected.String())
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return dto.PhotoPreviewResponse{}, fmt.Errorf("%w: %v", ErrUnsupportedPhoto, err)
	}

	thumbnail := imaging.Fit(img, photoPreviewSize, photoPreviewSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return dto.PhotoPreviewResponse{}, fmt.Errorf("encode preview: %w", err)
	}

	bounds := thumbnail.Bounds()
	return dto.PhotoPreviewResponse{
		Kind:     kind,
		MimeType: "image/jpeg",
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		DataURI:  "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

// MergeProfile applies provided fields that differ from the stored values and
// returns the human labels of what changed, in form order.
func MergeProfile(profile *models.StudentProfile, req dto.ProfileUpdateRequest) []string {
	var changed []string
	set := func(label string, target *string, value *string) {
		if value == nil {
			return
		}
		next := strings.TrimSpace(*value)
		if next == *target {
			return
		}
		*target = next
		changed = append(changed, label)
	}

	nameBefore := profile.Name
	set("Student Name", &profile.Name, req.Name)
	set("Mobile Number", &profile.Phone, req.Phone)
	set("Email Address", &profile.Email, req.Email)
	set("Student Photo", &profile.StudentPhoto, req.StudentPhoto)
	set("Father Photo", &profile.FatherPhoto, req.FatherPhoto)
	set("Mother Photo", &profile.MotherPhoto, req.MotherPhoto)
	set("Father Name", &profile.FatherName, req.FatherName)
	set("Father Mobile", &profile.FatherMobile, req.FatherMobile)
	set("Mother Name", &profile.MotherName, req.MotherName)

	if req.PermanentAddress != nil {
		changed = append(changed, mergeAddress("Permanent", &profile.PermanentAddress, *req.PermanentAddress)...)
	}

	correspondence := req.CorrespondenceAddress
	if req.SameAsPermanent {
		permanent := addressPayload(profile.PermanentAddress)
		correspondence = &permanent
	}
	if correspondence != nil {
		changed = append(changed, mergeAddress("Correspondence", &profile.CorrespondenceAddress, *correspondence)...)
	}

	if profile.Name != nameBefore && profile.StudentPhoto != "" {
		profile.AvatarURL = profile.StudentPhoto
	}

	return changed
}

// trimProfileRequest trims every provided value so blank input is validated as empty.
func trimProfileRequest(req dto.ProfileUpdateRequest) dto.ProfileUpdateRequest {
	trim := func(value *string) *string {
		if value == nil {
			return nil
		}
		trimmed := strings.TrimSpace(*value)
		return &trimmed
	}
	trimAddress := func(address *dto.AddressPayload) *dto.AddressPayload {
		if address == nil {
			return nil
		}
		return &dto.AddressPayload{
			Line:       strings.TrimSpace(address.Line),
			City:       strings.TrimSpace(address.City),
			State:      strings.TrimSpace(address.State),
			PostalCode: strings.TrimSpace(address.PostalCode),
		}
	}

	req.Name = trim(req.Name)
	req.Phone = trim(req.Phone)
	req.Email = trim(req.Email)
	req.FatherName = trim(req.FatherName)
	req.FatherMobile = trim(req.FatherMobile)
	req.MotherName = trim(req.MotherName)
	req.StudentPhoto = trim(req.StudentPhoto)
	req.FatherPhoto = trim(req.FatherPhoto)
	req.MotherPhoto = trim(req.MotherPhoto)
	req.PermanentAddress = trimAddress(req.PermanentAddress)
	req.CorrespondenceAddress = trimAddress(req.CorrespondenceAddress)
	return req
}

func mergeAddress(prefix string, target *models.Address, payload dto.AddressPayload) []string {
	var changed []string
	apply := func(label string, field *string, value string) {
		value = strings.TrimSpace(value)
		if value == *field {
			return
		}
		*field = value
		changed = append(changed, label)
	}
	apply(prefix+" Address", &target.Line, payload.Line)
	apply(prefix+" City", &target.City, payload.City)
	apply(prefix+" State", &target.State, payload.State)
	apply(prefix+" PIN Code", &target.PostalCode, payload.PostalCode)
	return changed
}

func addressPayload(address models.Address) dto.AddressPayload {
	return dto.AddressPayload{
		Line:       address.Line,
		City:       address.City,
		State:      address.State,
		PostalCode: address.PostalCode,
	}
}

// NewProfileResponse maps the stored profile to its API shape.
func NewProfileResponse(profile models.StudentProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:                    profile.ID,
		StudentNumber:         profile.StudentNumber,
		Name:                  profile.Name,
		Email:                 profile.Email,
		Phone:                 profile.Phone,
		AvatarURL:             profile.AvatarURL,
		Program:               profile.Program,
		Department:            profile.Department,
		School:                profile.School,
		PlanCode:              profile.PlanCode,
		AcademicYear:          profile.AcademicYear,
		Term:                  profile.Term,
		Semester:              profile.Semester,
		ProgramStatus:         profile.ProgramStatus,
		EffectiveDate:         profile.EffectiveDate,
		CGPA:                  profile.CGPA,
		CurrentSemester:       profile.CurrentSemester,
		FatherName:            profile.FatherName,
		FatherMobile:          profile.FatherMobile,
		MotherName:            profile.MotherName,
		PermanentAddress:      addressPayload(profile.PermanentAddress),
		CorrespondenceAddress: addressPayload(profile.CorrespondenceAddress),
		StudentPhoto:          profile.StudentPhoto,
		FatherPhoto:           profile.FatherPhoto,
		MotherPhoto:           profile.MotherPhoto,
		UpdatedAt:             profile.UpdatedAt,
	}
}
