package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "itqan_backend/internals/helpers"
)

// newIPLimiter: limiter per IP klien, pesan 429 seragam (bahasa Arab).
// Key pakai c.IP(): header proxy hanya dipercaya dari TrustedProxies.
func newIPLimiter(max int, window time.Duration, message string) fiber.Handler {
	if message == "" {
		message = helper.MsgTooManyRequests
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return newIPLimiter(300, 1*time.Minute, "")
}

// Rate limiter untuk login (lebih ketat)
func LoginRateLimiter() fiber.Handler {
	return newIPLimiter(5, 1*time.Minute, "محاولات تسجيل دخول كثيرة، يرجى المحاولة بعد دقيقة")
}

// Rate limiter untuk register
func RegisterRateLimiter() fiber.Handler {
	return newIPLimiter(3, 5*time.Minute, "محاولات تسجيل كثيرة، يرجى المحاولة بعد 5 دقائق")
}

// Rate limiter untuk forgot-password & resend-code
func ForgotPasswordRateLimiter() fiber.Handler {
	return newIPLimiter(2, 10*time.Minute, "طلبات كثيرة، يرجى المحاولة بعد 10 دقائق")
}

// Rate limiter untuk verify & reset-password (tebak kode 6 digit)
func VerifyCodeRateLimiter() fiber.Handler {
	return newIPLimiter(5, 10*time.Minute, "محاولات كثيرة لإدخال الرمز، يرجى المحاولة بعد 10 دقائق")
}

// Rate limiter komentar publik situs
func CommentRateLimiter() fiber.Handler {
	return newIPLimiter(5, 1*time.Minute, "تعليقات كثيرة، يرجى المحاولة بعد دقيقة")
}
