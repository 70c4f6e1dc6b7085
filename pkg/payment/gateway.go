package payment

import (
	"context"
	"errors"
)

// ErrInvalidAmount indicates a checkout without anything to charge.
var ErrInvalidAmount = errors.New("checkout amount must be positive")

// Item is a single charged line.
type Item struct {
	ID       string
	Name     string
	Category string
	Price    int64
}

// Customer identifies the payer.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// CheckoutRequest describes an order to be paid. Amounts are whole rupees.
type CheckoutRequest struct {
	OrderID  string
	Amount   int64
	Items    []Item
	Customer Customer
}

// CheckoutResult is the payment session returned by the provider.
type CheckoutResult struct {
	Provider    string
	Token       string
	RedirectURL string
}

// Gateway creates payment sessions.
type Gateway interface {
	Checkout(ctx context.Context, req CheckoutRequest) (CheckoutResult, error)
}

func validateRequest(req CheckoutRequest) error {
	if req.Amount <= 0 {
		return ErrInvalidAmount
	}
	if req.OrderID == "" {
		return errors.New("order id is required")
	}
	return nil
}
