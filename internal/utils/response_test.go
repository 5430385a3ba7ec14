package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/utils"
)

func TestSendSuccessDefaultsMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "", map[string]string{"hello": "world"})
	})

	resp := performRequest(t, app, http.MethodGet, "/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	decode(t, resp, &payload)

	require.True(t, payload.Success)
	require.Equal(t, "success", payload.Message)
	require.Equal(t, "world", payload.Data["hello"])
}

func TestFailIncludesDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.Fail(c, fiber.StatusUnprocessableEntity, "Please correct the errors in the form", map[string]string{"name": "Name is required"})
	})

	resp := performRequest(t, app, http.MethodGet, "/")
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var payload struct {
		Success bool                   `json:"success"`
		Message string                 `json:"message"`
		Details map[string]string      `json:"details"`
		Data    map[string]interface{} `json:"data"`
	}
	decode(t, resp, &payload)

	require.False(t, payload.Success)
	require.Equal(t, "Name is required", payload.Details["name"])
	require.Nil(t, payload.Data)
}

func TestStatusText(t *testing.T) {
	msg := "Post published"
	require.Equal(t, msg, utils.StatusText(&msg, "ok"))
	require.Equal(t, "ok", utils.StatusText(nil, "ok"))
}

func TestDateHelpers(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 0, 0, time.UTC)
	require.Equal(t, "09/03/2024 07:05", utils.FormatDisplay(ts))
	require.Equal(t, "09/03/2024", utils.FormatDate(ts))
	require.Equal(t, "2024-03-09T07:05:00", utils.FormatISO(ts))

	parsed, err := utils.ParseISO("2024-03-09T07:05:00")
	require.NoError(t, err)
	require.True(t, parsed.Equal(ts))

	_, err = utils.ParseISO("yesterday")
	require.Error(t, err)

	require.Equal(t, 1, utils.DaysBetween(ts, ts.Add(20*time.Hour)))
	require.Equal(t, 0, utils.DaysBetween(ts, ts.Add(time.Hour)))
	require.True(t, utils.IsToday(ts.Add(time.Hour), ts))
	require.False(t, utils.IsToday(ts.AddDate(0, 0, -1), ts))
}

func performRequest(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}
