package ai

import (
	"context"
	"strings"
)

// StaticResponder is a canned responder used when no model is configured.
type StaticResponder struct {
	Reply string
	Err   error
	// Offline marks replies as canned so callers can flag them as fallbacks.
	Offline bool
}

// NewStaticResponder returns a responder that always answers with reply.
func NewStaticResponder(reply string) *StaticResponder {
	return &StaticResponder{Reply: reply}
}

// NewOfflineResponder stands in for a missing model; its replies report as canned.
func NewOfflineResponder(reply string) *StaticResponder {
	return &StaticResponder{Reply: reply, Offline: true}
}

// Canned implements Canned.
func (s *StaticResponder) Canned() bool {
	return s.Offline
}

// Respond returns the canned reply, or the configured error.
func (s *StaticResponder) Respond(ctx context.Context, prompt Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Err != nil {
		return "", s.Err
	}
	if strings.TrimSpace(s.Reply) == "" {
		return "", ErrEmptyResponse
	}
	return s.Reply, nil
}
