package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "itqan_backend/internals/helpers"
)

// RoleMiddlewareWithCustomError validasi role + custom error message.
// Role tidak ada di Locals -> 401, role di luar allowedRoles -> 403.
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	forbiddenMessage := customForbiddenMessage
	if forbiddenMessage == "" {
		forbiddenMessage = helper.MsgUnauthorized
	}
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocUserRole).(string)
		if !ok || role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, helper.MsgUnauthorized)
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return fiber.NewError(fiber.StatusForbidden, forbiddenMessage)
	}
}

// Shortcut biar lebih clean pemakaian
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}

// OnlyRolesSlice versi slice (constants.ReaderAndAdmin, dst.)
func OnlyRolesSlice(message string, allowedRoles []string) fiber.Handler {
	return RoleMiddlewareWithCustomError(allowedRoles, message)
}
