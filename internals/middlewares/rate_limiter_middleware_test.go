package middlewares

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedApp(cfg fiber.Config, h fiber.Handler) *fiber.App {
	app := fiber.New(cfg)
	app.Post("/x", h, func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	return app
}

func post(t *testing.T, app *fiber.App, xff string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	if xff != "" {
		req.Header.Set(fiber.HeaderXForwardedFor, xff)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp.StatusCode
}

func TestIPLimiterReturns429AfterMax(t *testing.T) {
	app := limitedApp(fiber.Config{}, newIPLimiter(3, time.Minute, ""))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, post(t, app, ""))
	}
	assert.Equal(t, http.StatusTooManyRequests, post(t, app, ""))
}

func TestIPLimiterIgnoresSpoofedForwardedFor(t *testing.T) {
	// remote test bukan proxy tepercaya, jadi XFF tidak boleh jadi key
	app := limitedApp(fiber.Config{
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"10.9.9.9"},
	}, LoginRateLimiter())

	codes := make([]int, 0, 20)
	for i := 0; i < 20; i++ {
		codes = append(codes, post(t, app, fmt.Sprintf("203.0.113.%d", i+1)))
	}
	for i, code := range codes {
		if i < 5 {
			assert.Equal(t, http.StatusOK, code, "request %d", i)
		} else {
			assert.Equal(t, http.StatusTooManyRequests, code, "request %d", i)
		}
	}
}

func TestVerifyCodeRateLimiter(t *testing.T) {
	app := limitedApp(fiber.Config{}, VerifyCodeRateLimiter())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, post(t, app, fmt.Sprintf("198.51.100.%d", i)))
	}
	assert.Equal(t, http.StatusTooManyRequests, post(t, app, "198.51.100.200"))
}
