package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName  string
	AppEnv   string
	AppPort  string
	Timezone *time.Location
	LogLevel string

	DatabaseDriver string
	DatabaseURL    string
	RedisURL       string

	AttendanceCacheTTL time.Duration

	JWTSecret          string
	JWTTTL             time.Duration
	DemoStudentID      string
	ChallengeTTL       time.Duration
	AssistantRateLimit int
	AssistantWindow    time.Duration

	AIProvider   string
	AIModel      string
	OpenAIAPIKey string

	NATSURL       string
	EventsSubject string

	PaymentProvider    string
	MidtransServerKey  string
	MidtransProduction bool

	SeedToken string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PORTAL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Campus Portal API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.timezone", "Asia/Kolkata")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "file::memory:?cache=shared")
	v.SetDefault("attendance.cache_ttl", "5m")
	v.SetDefault("jwt.ttl", "12h")
	v.SetDefault("auth.demo_student_id", "2024277634")
	v.SetDefault("auth.challenge_ttl", "5m")
	v.SetDefault("assistant.rate_limit", 10)
	v.SetDefault("assistant.rate_window", "1m")
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("events.subject", "portal.events")
	v.SetDefault("payment.provider", "mock")
	v.SetDefault("midtrans.production", false)

	location, err := time.LoadLocation(v.GetString("app.timezone"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid timezone: %w", err)
	}

	durations := map[string]time.Duration{}
	for _, key := range []string{"attendance.cache_ttl", "jwt.ttl", "auth.challenge_ttl", "assistant.rate_window"} {
		parsed, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", key, err)
		}
		durations[key] = parsed
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		Timezone:           location,
		LogLevel:           strings.ToLower(v.GetString("log.level")),
		DatabaseDriver:     strings.ToLower(v.GetString("database.driver")),
		DatabaseURL:        v.GetString("database.url"),
		RedisURL:           v.GetString("redis.url"),
		AttendanceCacheTTL: durations["attendance.cache_ttl"],
		JWTSecret:          v.GetString("jwt.secret"),
		JWTTTL:             durations["jwt.ttl"],
		DemoStudentID:      strings.TrimSpace(v.GetString("auth.demo_student_id")),
		ChallengeTTL:       durations["auth.challenge_ttl"],
		AssistantRateLimit: v.GetInt("assistant.rate_limit"),
		AssistantWindow:    durations["assistant.rate_window"],
		AIProvider:         strings.ToLower(v.GetString("ai.provider")),
		AIModel:            v.GetString("ai.model"),
		OpenAIAPIKey:       v.GetString("openai_api_key"),
		NATSURL:            v.GetString("nats.url"),
		EventsSubject:      v.GetString("events.subject"),
		PaymentProvider:    strings.ToLower(v.GetString("payment.provider")),
		MidtransServerKey:  v.GetString("midtrans.server_key"),
		MidtransProduction: v.GetBool("midtrans.production"),
		SeedToken:          strings.TrimSpace(v.GetString("seed.token")),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.DemoStudentID == "" {
		return Config{}, fmt.Errorf("demo student id must be provided")
	}

	if cfg.PaymentProvider == "midtrans" && cfg.MidtransServerKey == "" {
		return Config{}, fmt.Errorf("midtrans server key is required when payment provider is midtrans")
	}

	if cfg.AssistantRateLimit <= 0 {
		cfg.AssistantRateLimit = 10
	}

	return cfg, nil
}
