package dto

// FeeSelection captures the toggles of the fee form.
type FeeSelection struct {
	Bundle      bool `json:"bundle"`
	Language    bool `json:"language"`
	Fine        bool `json:"fine"`
	FullTuition bool `json:"full_tuition"`
}

// DefaultFeeSelection mirrors the portal's initial fee form.
func DefaultFeeSelection() FeeSelection {
	return FeeSelection{Bundle: true, Language: true, Fine: true, FullTuition: true}
}

// FeeLineResponse is one line of a quote.
type FeeLineResponse struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Amount   int64  `json:"amount"`
	Selected bool   `json:"selected"`
}

// FeeQuoteResponse is the computed payable amount in whole rupees.
type FeeQuoteResponse struct {
	Selection      FeeSelection      `json:"selection"`
	Lines          []FeeLineResponse `json:"lines"`
	Tuition        int64             `json:"tuition"`
	BundleSubtotal int64             `json:"bundle_subtotal"`
	Fine           int64             `json:"fine"`
	Scholarship    int64             `json:"scholarship"`
	Total          int64             `json:"total"`
	Currency       string            `json:"currency"`
}

// CheckoutRequest starts a payment for the selected fee items.
type CheckoutRequest struct {
	Selection *FeeSelection `json:"selection"`
}

// CheckoutResponse is the payment session created by the gateway.
type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	Provider    string `json:"provider"`
	Amount      int64  `json:"amount"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}
