// internals/middlewares/auth/claims_utils.go
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "itqan_backend/internals/helpers"
	helperAuth "itqan_backend/internals/helpers/auth"
)

var (
	errUserInactive     = errors.New("user inactive")
	errTokenBlacklisted = errors.New("token blacklisted")
)

// Locals keys (dibaca helper.GetUserIDFromToken / GetUserRole)
const (
	LocUserID    = "user_id"
	LocUserRole  = "userRole"
	LocUserEmail = "user_email"
	LocUserName  = "user_name"
)

// extractToken: Authorization: Bearer <token> dulu, lalu cookie auth-token
func extractToken(c *fiber.Ctx) string {
	if tok := helper.BearerToken(c.Get(fiber.HeaderAuthorization)); tok != "" {
		return tok
	}
	return strings.Trim(strings.TrimSpace(c.Cookies(helper.AuthCookieName)), "\"'")
}

func ensureUserActive(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	var row struct {
		IsActive bool
	}
	res := db.WithContext(ctx).Table("users").Select("is_active").Where("id = ?", userID).Limit(1).Scan(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	if !row.IsActive {
		return errUserInactive
	}
	return nil
}

func storeClaimsToLocals(c *fiber.Ctx, claims *helperAuth.SessionClaims, raw string) {
	c.Locals(LocUserID, claims.UserID.String())
	c.Locals(LocUserRole, claims.Role)
	c.Locals(LocUserEmail, claims.Email)
	c.Locals(LocUserName, claims.Name)
	c.Locals(helper.LocRawToken, raw)
}
