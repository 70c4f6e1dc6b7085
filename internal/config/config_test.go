package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORTAL_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, "Asia/Kolkata", cfg.Timezone.String())
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, 5*time.Minute, cfg.ChallengeTTL)
	require.Equal(t, 10, cfg.AssistantRateLimit)
	require.Equal(t, "mock", cfg.PaymentProvider)
	require.Empty(t, cfg.SeedToken)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORTAL_JWT_SECRET", "secret")
	t.Setenv("PORTAL_APP_PORT", ":9090")
	t.Setenv("PORTAL_ASSISTANT_RATE_WINDOW", "30s")
	t.Setenv("PORTAL_SEED_TOKEN", " reseed ")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.Equal(t, 30*time.Second, cfg.AssistantWindow)
	require.Equal(t, "reseed", cfg.SeedToken)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("PORTAL_JWT_SECRET", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("bad timezone", func(t *testing.T) {
		t.Setenv("PORTAL_JWT_SECRET", "secret")
		t.Setenv("PORTAL_APP_TIMEZONE", "Mars/Olympus")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("midtrans without key", func(t *testing.T) {
		t.Setenv("PORTAL_JWT_SECRET", "secret")
		t.Setenv("PORTAL_PAYMENT_PROVIDER", "midtrans")
		_, err := Load()
		require.Error(t, err)
	})
}
