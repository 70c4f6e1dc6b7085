package dto

import "time"

// Login flow states.
const (
	LoginStateIDEntry       = "id-entry"
	LoginStateOTPEntry      = "otp-entry"
	LoginStateAuthenticated = "authenticated"
)

// OTPRequest submits a student identifier.
type OTPRequest struct {
	StudentID string `json:"student_id" validate:"required,max=32"`
}

// OTPChallengeResponse is returned once the OTP step is entered.
type OTPChallengeResponse struct {
	State         string    `json:"state"`
	ChallengeID   string    `json:"challenge_id"`
	MaskedContact string    `json:"masked_contact"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// VerifyOTPRequest submits the one-time code.
type VerifyOTPRequest struct {
	ChallengeID string `json:"challenge_id" validate:"required,uuid4"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
}

// LoginBackRequest abandons a pending challenge.
type LoginBackRequest struct {
	ChallengeID string `json:"challenge_id" validate:"required"`
}

// AuthResponse is returned after a successful login.
type AuthResponse struct {
	State     string    `json:"state"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	StudentID uint      `json:"student_id"`
	Name      string    `json:"name"`
}

// LoginStateResponse reports the current login state.
type LoginStateResponse struct {
	State string `json:"state"`
}
