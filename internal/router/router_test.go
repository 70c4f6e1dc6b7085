package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/config"
	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/handler"
	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/internal/router"
)

type syllabusStub struct{}

func (syllabusStub) List(context.Context) ([]dto.SubjectSyllabusResponse, error) {
	return []dto.SubjectSyllabusResponse{{SubjectCode: "CS-201"}}, nil
}

func (syllabusStub) Subject(context.Context, string) (dto.SubjectSyllabusResponse, error) {
	return dto.SubjectSyllabusResponse{SubjectCode: "CS-201"}, nil
}

func newApp(secret string) *fiber.App {
	app := fiber.New()
	middleware.Register(app, middleware.Config{})
	router.Register(app, config.Config{AppName: "Campus Portal API", Timezone: time.UTC}, router.Dependencies{
		SyllabusHandler: handler.NewSyllabusHandler(syllabusStub{}, zerolog.Nop()),
		JWTMiddleware:   middleware.JWTProtected(secret),
	})
	return app
}

func TestHealthIsPublic(t *testing.T) {
	resp, err := newApp("s").Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Campus Portal API", resp.Header.Get("X-Application"))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newApp("s")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/syllabus", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "1",
		"role": "student",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/syllabus", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	resp, err := newApp("s").Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
