package auth

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// OptionalAuth: kalau token valid isi Locals seperti AuthMiddleware,
// kalau tidak ada / tidak valid lanjut sebagai anonymous. Tidak pernah menolak.
func OptionalAuth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractToken(c)
		if raw == "" {
			return c.Next()
		}
		claims, err := verifyToken(c, db, raw)
		if err != nil {
			return c.Next()
		}
		if err := ensureUserActive(c.UserContext(), db, claims.UserID); err != nil {
			return c.Next()
		}
		storeClaimsToLocals(c, claims, raw)
		return c.Next()
	}
}
