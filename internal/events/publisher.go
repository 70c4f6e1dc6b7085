package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Event names emitted by the portal services.
const (
	NoticeRead      = "notice.read"
	ProfileUpdated  = "profile.updated"
	CheckoutCreated = "checkout.created"
)

// Envelope is the JSON message published for every domain event.
type Envelope struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Source        string      `json:"source"`
	CorrelationID string      `json:"correlationId,omitempty"`
	Payload       interface{} `json:"payload"`
	SentAt        time.Time   `json:"sentAt"`
}

// Publisher emits domain events. Implementations never fail the caller.
type Publisher interface {
	Publish(ctx context.Context, name string, payload interface{})
}

// Conn is the subset of *nats.Conn used by NATSPublisher.
type Conn interface {
	Publish(subject string, data []byte) error
}

var _ Conn = (*nats.Conn)(nil)

// NATSPublisher publishes envelopes to "<subject>.<name>".
type NATSPublisher struct {
	conn        Conn
	subject     string
	source      string
	logger      zerolog.Logger
	correlation func(ctx context.Context) string
	now         func() time.Time
}

// NewNATSPublisher wraps an established NATS connection.
func NewNATSPublisher(conn Conn, subject string, logger zerolog.Logger, correlation func(ctx context.Context) string) *NATSPublisher {
	subject = strings.Trim(strings.TrimSpace(subject), ".")
	if subject == "" {
		subject = "portal.events"
	}
	if correlation == nil {
		correlation = func(context.Context) string { return "" }
	}
	return &NATSPublisher{
		conn:        conn,
		subject:     subject,
		source:      uuid.NewString(),
		logger:      logger.With().Str("component", "event_publisher").Logger(),
		correlation: correlation,
		now:         time.Now,
	}
}

// Publish marshals the payload and sends it; failures are only logged.
func (p *NATSPublisher) Publish(ctx context.Context, name string, payload interface{}) {
	envelope := Envelope{
		ID:            uuid.NewString(),
		Name:          name,
		Source:        p.source,
		CorrelationID: p.correlation(ctx),
		Payload:       payload,
		SentAt:        p.now().UTC(),
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		p.logger.Warn().Err(err).Str("event", name).Msg("failed to encode event")
		return
	}

	subject := fmt.Sprintf("%s.%s", p.subject, name)
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
		return
	}

	p.logger.Debug().Str("subject", subject).Str("event_id", envelope.ID).Msg("event published")
}

// NopPublisher discards every event.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, string, interface{}) {}

// Connect dials NATS when url is set and returns nil otherwise.
func Connect(url string, name string) (*nats.Conn, error) {
	if strings.TrimSpace(url) == "" {
		return nil, nil
	}
	conn, err := nats.Connect(url, nats.Name(name), nats.MaxReconnects(-1), nats.ReconnectWait(2*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return conn, nil
}
