package middlewares

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"itqan_backend/internals/configs"
	"itqan_backend/internals/constants"
	settingsService "itqan_backend/internals/features/system/settings/service"
	helper "itqan_backend/internals/helpers"
	helperAuth "itqan_backend/internals/helpers/auth"
)

var maintenanceBypass = []string{"/api/auth/", "/api/public/", "/health"}

// MaintenanceMiddleware: saat setting maintenance_mode=true, request /api dari non-admin -> 503.
// Role dibaca langsung dari token (tanpa query users), token invalid dianggap non-admin.
func MaintenanceMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if !strings.HasPrefix(path, "/api/") {
			return c.Next()
		}
		for _, p := range maintenanceBypass {
			if strings.HasPrefix(path, p) {
				return c.Next()
			}
		}
		if !settingsService.IsMaintenance(c.UserContext(), db) {
			return c.Next()
		}
		if isAdminToken(c) {
			return c.Next()
		}
		return helper.JsonError(c, fiber.StatusServiceUnavailable, helper.MsgMaintenance)
	}
}

func isAdminToken(c *fiber.Ctx) bool {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return false
	}
	claims, err := helperAuth.ParseSessionToken(configs.JWTSecret, raw, time.Now().UTC())
	if err != nil {
		return false
	}
	return claims.Role == constants.RoleAdmin
}
