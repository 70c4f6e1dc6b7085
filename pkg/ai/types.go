package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse indicates the model returned no text.
var ErrEmptyResponse = errors.New("empty response from model")

// Prompt is a single-turn request: a fixed system instruction plus the raw user text.
type Prompt struct {
	System string
	User   string
}

// Responder produces a plain-text reply for a prompt.
type Responder interface {
	Respond(ctx context.Context, prompt Prompt) (string, error)
}

// Canned is implemented by responders whose replies are not model output.
type Canned interface {
	Canned() bool
}
