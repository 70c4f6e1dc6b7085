package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/events"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	"github.com/noah-isme/campus-portal-api/pkg/payment"
)

// ErrNothingToPay is returned when the selected items net to zero.
var ErrNothingToPay = errors.New("nothing to pay for the current selection")

// FeeService quotes fees and opens payment sessions.
type FeeService interface {
	Quote(ctx context.Context, selection dto.FeeSelection) (dto.FeeQuoteResponse, error)
	Checkout(ctx context.Context, studentID uint, selection dto.FeeSelection) (dto.CheckoutResponse, error)
}

type feeService struct {
	fees      repository.FeeRepository
	profiles  repository.ProfileRepository
	gateway   payment.Gateway
	publisher events.Publisher
	logger    zerolog.Logger
	newID     func() string
}

// NewFeeService builds the fee calculator service.
func NewFeeService(fees repository.FeeRepository, profiles repository.ProfileRepository, gateway payment.Gateway, publisher events.Publisher, logger zerolog.Logger) FeeService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &feeService{
		fees:      fees,
		profiles:  profiles,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger.With().Str("component", "fee_service").Logger(),
		newID:     uuid.NewString,
	}
}

func (s *feeService) Quote(ctx context.Context, selection dto.FeeSelection) (dto.FeeQuoteResponse, error) {
	items, err := s.fees.List(ctx)
	if err != nil {
		return dto.FeeQuoteResponse{}, err
	}
	return CalculateFees(NewFeeSchedule(items), selection), nil
}

func (s *feeService) Checkout(ctx context.Context, studentID uint, selection dto.FeeSelection) (dto.CheckoutResponse, error) {
	quote, err := s.Quote(ctx, selection)
	if err != nil {
		return dto.CheckoutResponse{}, err
	}
	if quote.Total <= 0 {
		return dto.CheckoutResponse{}, ErrNothingToPay
	}

	profile, err := s.profiles.GetByID(ctx, studentID)
	if err != nil {
		return dto.CheckoutResponse{}, err
	}

	orderID := fmt.Sprintf("FEE-%s-%s", profile.StudentNumber, strings.ToUpper(s.newID()[:8]))
	request := payment.CheckoutRequest{
		OrderID: orderID,
		Amount:  quote.Total,
		Items:   checkoutItems(quote),
		Customer: payment.Customer{
			Name:  profile.Name,
			Email: profile.Email,
			Phone: profile.Phone,
		},
	}

	result, err := s.gateway.Checkout(ctx, request)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("checkout failed")
		return dto.CheckoutResponse{}, err
	}

	response := dto.CheckoutResponse{
		OrderID:     orderID,
		Provider:    result.Provider,
		Amount:      quote.Total,
		Token:       result.Token,
		RedirectURL: result.RedirectURL,
	}

	s.publisher.Publish(ctx, events.CheckoutCreated, response)
	s.logger.Info().Str("order_id", orderID).Int64("amount", quote.Total).Str("provider", result.Provider).Msg("checkout created")

	return response, nil
}

// checkoutItems lists selected non-zero lines; their sum equals the quote total.
func checkoutItems(quote dto.FeeQuoteResponse) []payment.Item {
	items := make([]payment.Item, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		if !line.Selected || line.Amount == 0 {
			continue
		}
		items = append(items, payment.Item{
			ID:       line.Category,
			Name:     line.Label,
			Category: line.Category,
			Price:    line.Amount,
		})
	}
	return items
}
