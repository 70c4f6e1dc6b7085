package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/utils"
)

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
	Meta    map[string]interface{} `json:"meta"`
	Details map[string]interface{} `json:"details"`
}

func TestOKCarriesMeta(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.OK(c, fiber.Map{"newCount": 2}, "", fiber.Map{"cache": "hit"})
	})

	resp := performRequest(t, app, "/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decode(t, resp)
	require.True(t, payload.Success)
	require.Equal(t, "success", payload.Message)
	require.Equal(t, float64(2), payload.Data["newCount"])
	require.Equal(t, "hit", payload.Meta["cache"])
}

func TestSendSuccessWithStatusCreated(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "checkout created", fiber.Map{"orderId": "ord-1"})
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	payload := decode(t, resp)
	require.Equal(t, "checkout created", payload.Message)
	require.Equal(t, "ord-1", payload.Data["orderId"])
	require.Nil(t, payload.Meta)
}

func TestFailOmitsDataAndKeepsDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.Fail(c, fiber.StatusUnprocessableEntity, "No changes detected.", fiber.Map{"field": "email"})
	})

	resp := performRequest(t, app, "/")
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	payload := decode(t, resp)
	require.False(t, payload.Success)
	require.Equal(t, "No changes detected.", payload.Message)
	require.Equal(t, "email", payload.Details["field"])
	require.Nil(t, payload.Data)
}

func TestSendErrorDefaultsMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusNotFound, "")
	})

	resp := performRequest(t, app, "/")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.Equal(t, "error", decode(t, resp).Message)
}

func performRequest(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var payload envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}
