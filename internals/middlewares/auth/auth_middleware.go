// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"itqan_backend/internals/configs"
	helper "itqan_backend/internals/helpers"
	helperAuth "itqan_backend/internals/helpers/auth"
)

// AuthMiddleware: token wajib (Bearer atau cookie auth-token).
// Semua kegagalan token -> 401 "غير مصرح"; akun nonaktif -> 403.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractToken(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, helper.MsgUnauthorized)
		}

		claims, err := verifyToken(c, db, raw)
		if err != nil {
			zap.L().Debug("auth ditolak", zap.String("path", c.Path()), zap.Error(err))
			return fiber.NewError(fiber.StatusUnauthorized, helper.MsgUnauthorized)
		}

		if err := ensureUserActive(c.UserContext(), db, claims.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, helper.MsgUnauthorized)
			}
			if errors.Is(err, errUserInactive) {
				return fiber.NewError(fiber.StatusForbidden, "الحساب غير مفعل")
			}
			zap.L().Error("cek user aktif gagal", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, helper.MsgServerError)
		}

		storeClaimsToLocals(c, claims, raw)
		return c.Next()
	}
}

// verifyToken: blacklist -> signature & exp -> claims
func verifyToken(c *fiber.Ctx, db *gorm.DB, raw string) (*helperAuth.SessionClaims, error) {
	blacklisted, err := helperAuth.IsBlacklisted(c.UserContext(), db, raw, configs.JWTSecret)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, errTokenBlacklisted
	}
	return helperAuth.ParseSessionToken(configs.JWTSecret, raw, time.Now())
}
