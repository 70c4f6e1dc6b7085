package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/fixtures"
)

func TestSeedServiceTokenGuard(t *testing.T) {
	svc := NewSeedService(SeedRepositories{}, nil, " secret ", ist, zerolog.Nop()).(*seedService)

	require.True(t, svc.validateToken("secret"))
	require.True(t, svc.validateToken("  secret"))
	require.False(t, svc.validateToken("secret2"))
	require.False(t, svc.validateToken(""))

	_, err := svc.Reseed(context.Background(), "nope")
	require.ErrorIs(t, err, ErrSeedUnauthorized)
}

func TestSeedServiceWrapsFixtureErrors(t *testing.T) {
	svc := NewSeedService(SeedRepositories{}, nil, "secret", ist, zerolog.Nop()).(*seedService)
	svc.load = func(time.Time) (fixtures.Set, error) {
		return fixtures.Set{}, errors.New("bad fixture")
	}

	_, err := svc.Reseed(context.Background(), "secret")
	require.Error(t, err)
	require.Contains(t, err.Error(), "load fixtures")
}
