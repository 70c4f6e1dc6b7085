package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-portal-api/internal/config"
	"github.com/noah-isme/campus-portal-api/internal/database"
	"github.com/noah-isme/campus-portal-api/internal/events"
	"github.com/noah-isme/campus-portal-api/internal/handler"
	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/internal/repository"
	"github.com/noah-isme/campus-portal-api/internal/router"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/pkg/ai"
	"github.com/noah-isme/campus-portal-api/pkg/payment"
)

const offlineAssistantReply = "The assistant is running in offline mode. Check your schedule and deadlines on the dashboard."

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		logger.Info().Msg("redis url not set, attendance summary cache disabled")
	}

	var publisher events.Publisher = events.NopPublisher{}
	natsConn, err := events.Connect(cfg.NATSURL, cfg.AppName)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Drain()
		publisher = events.NewNATSPublisher(natsConn, cfg.EventsSubject, logger, middleware.CorrelationIDFromContext)
	}

	responder := buildResponder(cfg, logger)
	gateway := buildGateway(cfg, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	profileRepo := repository.NewProfileRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	syllabusRepo := repository.NewSyllabusRepository(db)
	assistantRepo := repository.NewAssistantRepository(db)

	scheduleService := service.NewScheduleService(scheduleRepo, cfg.Timezone, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, validate, redisClient, cfg.AttendanceCacheTTL, logger)
	academicsService := service.NewAcademicsService(assessmentRepo, scheduleRepo, profileRepo, attendanceService, validate, logger)
	feeService := service.NewFeeService(feeRepo, profileRepo, gateway, publisher, logger)
	authService := service.NewAuthService(profileRepo, service.MockVerifier{}, validate, service.AuthConfig{
		Secret:            cfg.JWTSecret,
		TokenTTL:          cfg.JWTTTL,
		ChallengeTTL:      cfg.ChallengeTTL,
		DemoStudentNumber: cfg.DemoStudentID,
	}, logger)
	noticeService := service.NewNoticeService(noticeRepo, publisher, logger)
	profileService := service.NewProfileService(profileRepo, validate, publisher, logger)
	assistantService := service.NewAssistantService(assistantRepo, profileRepo, scheduleService, responder, validate, logger)
	dashboardService := service.NewDashboardService(profileRepo, assessmentRepo, scheduleService, attendanceService, noticeService, feeService, cfg.Timezone, logger)
	syllabusService := service.NewSyllabusService(syllabusRepo, logger)
	documentService := service.NewDocumentService(profileRepo, scheduleRepo, attendanceService, logger)
	seedService := service.NewSeedService(service.SeedRepositories{
		Profiles:    profileRepo,
		Schedule:    scheduleRepo,
		Attendance:  attendanceRepo,
		Assessments: assessmentRepo,
		Notices:     noticeRepo,
		Fees:        feeRepo,
		Syllabus:    syllabusRepo,
	}, attendanceService, cfg.SeedToken, cfg.Timezone, logger)

	report, err := seedService.Seed(context.Background())
	if err != nil {
		log.Fatalf("failed to seed fixtures: %v", err)
	}
	logger.Info().Str("student_number", report.StudentNumber).Int("classes", report.Classes).Msg("fixtures loaded")

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    6 << 20,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AccessLog: cfg.AppEnv == "development"})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService, logger),
		ScheduleHandler:   handler.NewScheduleHandler(scheduleService, handler.LiveConfig{}, logger),
		AttendanceHandler: handler.NewAttendanceHandler(attendanceService, logger),
		AcademicsHandler:  handler.NewAcademicsHandler(academicsService, logger),
		FeeHandler:        handler.NewFeeHandler(feeService, logger),
		NoticeHandler:     handler.NewNoticeHandler(noticeService, logger),
		ProfileHandler:    handler.NewProfileHandler(profileService, logger),
		SyllabusHandler:   handler.NewSyllabusHandler(syllabusService, logger),
		DocumentHandler:   handler.NewDocumentHandler(documentService, logger),
		AssistantHandler:  handler.NewAssistantHandler(assistantService, cfg.AssistantRateLimit, cfg.AssistantWindow, logger),
		SeedHandler:       handler.NewSeedHandler(seedService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildResponder(cfg config.Config, logger zerolog.Logger) ai.Responder {
	if cfg.AIProvider == "openai" && cfg.OpenAIAPIKey == "" {
		logger.Warn().Msg("ai provider is openai but no api key is set, assistant replies are canned")
	}
	if cfg.AIProvider == "openai" && cfg.OpenAIAPIKey != "" {
		responder, err := ai.NewOpenAIResponder(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.AIModel,
			Logger: logger,
		})
		if err == nil {
			return responder
		}
		logger.Warn().Err(err).Msg("openai responder unavailable, falling back to offline replies")
	}
	return ai.NewOfflineResponder(offlineAssistantReply)
}

func buildGateway(cfg config.Config, logger zerolog.Logger) payment.Gateway {
	if cfg.PaymentProvider != "midtrans" {
		return payment.NewMockGateway()
	}
	gateway, err := payment.NewMidtransGateway(payment.MidtransConfig{
		ServerKey:  cfg.MidtransServerKey,
		Production: cfg.MidtransProduction,
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("failed to configure midtrans: %v", err)
	}
	return gateway
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
