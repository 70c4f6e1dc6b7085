package payment

import (
	"context"
	"fmt"
)

// MockGateway accepts every checkout and returns a deterministic local session.
type MockGateway struct {
	BaseURL string
}

// NewMockGateway constructs the mock provider.
func NewMockGateway() *MockGateway {
	return &MockGateway{BaseURL: "https://pay.example.invalid/checkout"}
}

// Checkout returns a fake token for the order.
func (m *MockGateway) Checkout(_ context.Context, req CheckoutRequest) (CheckoutResult, error) {
	if err := validateRequest(req); err != nil {
		return CheckoutResult{}, err
	}
	return CheckoutResult{
		Provider:    "mock",
		Token:       "mock-" + req.OrderID,
		RedirectURL: fmt.Sprintf("%s/%s", m.BaseURL, req.OrderID),
	}, nil
}
