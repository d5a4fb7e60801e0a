// helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	// AuthCookieName nama cookie sesi
	AuthCookieName = "auth-token"
	// LocRawToken raw JWT yang disimpan middleware di Locals
	LocRawToken = "auth_token"
)

// GetRawAccessToken mengembalikan token dari:
// 1) Locals (sudah diverifikasi middleware)
// 2) Authorization: Bearer <token>
// 3) cookie "auth-token"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if tok := BearerToken(c.Get(fiber.HeaderAuthorization)); tok != "" {
		return tok
	}
	return strings.TrimSpace(c.Cookies(AuthCookieName))
}

// BearerToken: toleransi spasi ganda, case-insensitive, buang kutip.
func BearerToken(header string) string {
	fields := strings.Fields(strings.TrimSpace(header))
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return ""
	}
	return strings.Trim(strings.TrimSpace(fields[1]), "\"'")
}

// ClientIP: c.IP() (X-Forwarded-For hanya dibaca kalau remote ada di TrustedProxies),
// ambil entry pertama kalau header berisi rantai proxy.
func ClientIP(c *fiber.Ctx) string {
	ip := strings.TrimSpace(strings.Split(c.IP(), ",")[0])
	if ip == "" {
		return "unknown"
	}
	return ip
}

func UserAgent(c *fiber.Ctx) string {
	if ua := strings.TrimSpace(c.Get(fiber.HeaderUserAgent)); ua != "" {
		return ua
	}
	return "Unknown"
}
