package payment

import (
	"context"
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MidtransConfig configures the Snap client.
type MidtransConfig struct {
	ServerKey  string
	Production bool
	Logger     zerolog.Logger
}

// MidtransGateway creates Snap payment sessions.
type MidtransGateway struct {
	client snap.Client
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewMidtransGateway builds a Snap-backed gateway.
func NewMidtransGateway(cfg MidtransConfig) (*MidtransGateway, error) {
	if cfg.ServerKey == "" {
		return nil, fmt.Errorf("midtrans server key is required")
	}

	env := midtrans.Sandbox
	if cfg.Production {
		env = midtrans.Production
	}

	gateway := &MidtransGateway{
		tracer: otel.Tracer("github.com/noah-isme/campus-portal-api/pkg/payment/midtrans"),
		logger: cfg.Logger.With().Str("component", "midtrans_gateway").Logger(),
	}
	gateway.client.New(cfg.ServerKey, env)
	return gateway, nil
}

// Checkout creates a Snap transaction for the order.
func (g *MidtransGateway) Checkout(parent context.Context, req CheckoutRequest) (CheckoutResult, error) {
	if err := validateRequest(req); err != nil {
		return CheckoutResult{}, err
	}

	_, span := g.tracer.Start(parent, "midtrans.checkout", trace.WithAttributes(
		attribute.String("order_id", req.OrderID),
		attribute.Int64("amount", req.Amount),
	))
	defer span.End()

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
	}

	items := make([]midtrans.ItemDetails, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, midtrans.ItemDetails{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
			Price:    item.Price,
			Qty:      1,
		})
	}
	if len(items) > 0 {
		snapReq.Items = &items
	}

	resp, merr := g.client.CreateTransaction(snapReq)
	if merr != nil {
		span.RecordError(merr)
		span.SetStatus(codes.Error, merr.Error())
		g.logger.Error().Err(merr).Str("order_id", req.OrderID).Msg("snap transaction failed")
		return CheckoutResult{}, fmt.Errorf("midtrans checkout: %w", merr)
	}

	return CheckoutResult{
		Provider:    "midtrans",
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}
