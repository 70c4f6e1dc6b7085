package handler_test

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/handler"
	"github.com/noah-isme/campus-portal-api/internal/middleware"
)

func startFiberServer(t *testing.T, app *fiber.App) (string, func()) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		if err := app.Listener(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Logf("fiber listener stopped: %v", err)
		}
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)

	shutdown := func() {
		_ = app.Shutdown()
		_ = listener.Close()
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
	}

	return "http://" + listener.Addr().String(), shutdown
}

func TestScheduleLiveStreamPushesScheduleThenProgress(t *testing.T) {
	current := &dto.ClassSessionResponse{SubjectName: "Linear Algebra", Status: "ongoing", ProgressPercent: 40, RemainingLabel: "36m left"}
	svc := &stubSchedule{
		today:   dto.ScheduleResponse{Date: "2026-02-09", Sessions: []dto.ClassSessionResponse{*current}, Current: current},
		current: current,
	}

	app := fiber.New()
	app.Use(middleware.CorrelationID())
	live := handler.NewScheduleHandler(svc, handler.LiveConfig{ProgressInterval: 20 * time.Millisecond, ScheduleInterval: time.Hour}, zerolog.Nop())
	live.Register(app.Group("/schedule"))

	baseURL, shutdown := startFiberServer(t, app)
	defer shutdown()

	dialer := websocket.Dialer{HandshakeTimeout: 3 * time.Second}
	url := "ws" + strings.TrimPrefix(baseURL, "http") + "/schedule/live"
	conn, resp, err := dialer.Dial(url, http.Header{"X-Correlation-ID": {"live-1"}})
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var first dto.LiveScheduleFrame
	require.NoError(t, conn.ReadJSON(&first))
	require.Equal(t, handler.FrameSchedule, first.Type)
	require.NotNil(t, first.Schedule)
	require.Len(t, first.Schedule.Sessions, 1)

	var next dto.LiveScheduleFrame
	require.NoError(t, conn.ReadJSON(&next))
	require.Equal(t, handler.FrameProgress, next.Type)
	require.Nil(t, next.Schedule)
	require.NotNil(t, next.Current)
	require.Equal(t, "36m left", next.Current.RemainingLabel)
}
