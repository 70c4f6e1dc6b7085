package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/internal/observability"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/internal/utils"
)

// Live stream frame types.
const (
	FrameProgress = "progress"
	FrameSchedule = "schedule"
)

// LiveConfig sets the live stream cadence.
type LiveConfig struct {
	ProgressInterval time.Duration
	ScheduleInterval time.Duration
}

// ScheduleHandler serves today's classes, exams and the live progress stream.
type ScheduleHandler struct {
	service service.ScheduleService
	live    LiveConfig
	logger  zerolog.Logger
	now     func() time.Time
}

// NewScheduleHandler builds the schedule handler. Zero intervals default to one second and one minute.
func NewScheduleHandler(service service.ScheduleService, live LiveConfig, logger zerolog.Logger) *ScheduleHandler {
	if live.ProgressInterval <= 0 {
		live.ProgressInterval = time.Second
	}
	if live.ScheduleInterval <= 0 {
		live.ScheduleInterval = time.Minute
	}
	return &ScheduleHandler{
		service: service,
		live:    live,
		logger:  logger.With().Str("component", "schedule_handler").Logger(),
		now:     time.Now,
	}
}

// Register binds schedule routes including the websocket upgrade.
func (h *ScheduleHandler) Register(router fiber.Router) {
	router.Get("/today", h.today)
	router.Get("/current", h.current)
	router.Get("/exams", h.exams)

	router.Use("/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("request_ctx", requestContext(c))
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/live", websocket.New(h.stream))
}

func (h *ScheduleHandler) today(c *fiber.Ctx) error {
	schedule, err := h.service.Today(requestContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load schedule")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load schedule")
	}
	return utils.SendSuccess(c, "schedule retrieved", schedule)
}

func (h *ScheduleHandler) current(c *fiber.Ctx) error {
	current, err := h.service.Current(requestContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load current class")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load current class")
	}
	if current == nil {
		return utils.SendSuccess(c, "no class in progress", nil)
	}
	return utils.SendSuccess(c, "current class retrieved", current)
}

func (h *ScheduleHandler) exams(c *fiber.Ctx) error {
	exams, err := h.service.Exams(requestContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load exams")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load exams")
	}
	return utils.SendSuccess(c, "exams retrieved", exams)
}

// stream pushes the full schedule on connect and every ScheduleInterval, and
// the ongoing session's progress every ProgressInterval, until the client leaves.
func (h *ScheduleHandler) stream(conn *websocket.Conn) {
	baseCtx, _ := conn.Locals("request_ctx").(context.Context)
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	logger := h.logger.With().Str("correlation_id", middleware.CorrelationIDFromContext(ctx)).Logger()

	gauge := observability.LiveScheduleClients()
	gauge.Inc()
	defer gauge.Dec()

	logger.Info().Msg("live schedule connected")
	defer logger.Info().Msg("live schedule disconnected")

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.pushSchedule(ctx, conn); err != nil {
		logger.Warn().Err(err).Msg("initial schedule push failed")
		return
	}

	progress := time.NewTicker(h.live.ProgressInterval)
	defer progress.Stop()
	refresh := time.NewTicker(h.live.ScheduleInterval)
	defer refresh.Stop()

	for {
		var err error
		select {
		case <-ctx.Done():
			return
		case <-progress.C:
			err = h.pushProgress(ctx, conn)
		case <-refresh.C:
			err = h.pushSchedule(ctx, conn)
		}
		if err != nil {
			logger.Debug().Err(err).Msg("live schedule write stopped")
			return
		}
	}
}

func (h *ScheduleHandler) pushSchedule(ctx context.Context, conn *websocket.Conn) error {
	schedule, err := h.service.Today(ctx)
	if err != nil {
		return err
	}
	return conn.WriteJSON(dto.LiveScheduleFrame{
		Type:     FrameSchedule,
		Current:  schedule.Current,
		Schedule: &schedule,
		SentAt:   h.now(),
	})
}

func (h *ScheduleHandler) pushProgress(ctx context.Context, conn *websocket.Conn) error {
	current, err := h.service.Current(ctx)
	if err != nil {
		return err
	}
	return conn.WriteJSON(dto.LiveScheduleFrame{
		Type:    FrameProgress,
		Current: current,
		SentAt:  h.now(),
	})
}
