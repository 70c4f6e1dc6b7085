package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type recordingConn struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (r *recordingConn) Publish(subject string, data []byte) error {
	if r.err != nil {
		return r.err
	}
	r.subjects = append(r.subjects, subject)
	r.payloads = append(r.payloads, data)
	return nil
}

func TestNATSPublisherPublishesEnvelope(t *testing.T) {
	conn := &recordingConn{}
	publisher := NewNATSPublisher(conn, "portal.events.", zerolog.Nop(), func(context.Context) string { return "corr-1" })

	publisher.Publish(context.Background(), NoticeRead, map[string]string{"noticeId": "N-1"})

	require.Equal(t, []string{"portal.events.notice.read"}, conn.subjects)

	var envelope struct {
		ID            string            `json:"id"`
		Name          string            `json:"name"`
		CorrelationID string            `json:"correlationId"`
		Payload       map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(conn.payloads[0], &envelope))
	require.NotEmpty(t, envelope.ID)
	require.Equal(t, NoticeRead, envelope.Name)
	require.Equal(t, "corr-1", envelope.CorrelationID)
	require.Equal(t, "N-1", envelope.Payload["noticeId"])
}

func TestNATSPublisherSwallowsErrors(t *testing.T) {
	conn := &recordingConn{err: errors.New("disconnected")}
	publisher := NewNATSPublisher(conn, "", zerolog.Nop(), nil)

	require.NotPanics(t, func() {
		publisher.Publish(context.Background(), ProfileUpdated, nil)
	})
	require.Empty(t, conn.subjects)
}

func TestConnectWithoutURL(t *testing.T) {
	conn, err := Connect("", "portal")
	require.NoError(t, err)
	require.Nil(t, conn)
}

func TestNopPublisher(t *testing.T) {
	var publisher Publisher = NopPublisher{}
	require.NotPanics(t, func() { publisher.Publish(context.Background(), CheckoutCreated, 1) })
}
