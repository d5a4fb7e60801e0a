// internals/features/users/auth/service/token_service.go
package service

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"itqan_backend/internals/configs"
	authModel "itqan_backend/internals/features/users/auth/model"
	authRepo "itqan_backend/internals/features/users/auth/repository"
	userModel "itqan_backend/internals/features/users/users/model"
	helper "itqan_backend/internals/helpers"
	helperAuth "itqan_backend/internals/helpers/auth"
)

func nowUTC() time.Time { return time.Now().UTC() }

// issueSession: tanda tangani JWT, simpan baris user_sessions, set cookie auth-token.
func issueSession(c *fiber.Ctx, db *gorm.DB, user *userModel.UserModel) (string, error) {
	now := nowUTC()
	token, exp, err := helperAuth.SignSessionToken(configs.JWTSecret, helperAuth.SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Name:   user.Name,
	}, now)
	if err != nil {
		return "", err
	}

	sess := &authModel.UserSessionModel{
		UserID:       user.ID,
		Token:        token,
		IPAddress:    helper.StrPtr(helper.ClientIP(c)),
		UserAgent:    helper.UserAgent(c),
		LastActiveAt: now,
		ExpiresAt:    exp,
	}
	if err := authRepo.CreateSession(c.UserContext(), db, sess); err != nil {
		// sesi tetap jalan walau tracking gagal
		zap.L().Warn("gagal menyimpan user_session", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	setAuthCookie(c, token)
	return token, nil
}

func setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     helper.AuthCookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   configs.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(helperAuth.SessionTTL / time.Second),
	})
}

func clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     helper.AuthCookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   configs.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  nowUTC().Add(-time.Hour),
		MaxAge:   -1,
	})
}

/* ==========================
   HEARTBEAT
========================== */

// Heartbeat update last_active_at sesi token saat ini; insert kalau belum ada.
func Heartbeat(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, helper.MsgUnauthorized)
	}

	now := nowUTC()
	ip := helper.StrPtr(helper.ClientIP(c))
	found, err := authRepo.TouchSession(c.UserContext(), db, raw, ip, now)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !found {
		exp, ok := helperAuth.TokenExpiry(raw)
		if !ok {
			exp = now.Add(helperAuth.SessionTTL)
		}
		if err := authRepo.CreateSession(c.UserContext(), db, &authModel.UserSessionModel{
			UserID:       userID,
			Token:        raw,
			IPAddress:    ip,
			UserAgent:    helper.UserAgent(c),
			LastActiveAt: now,
			ExpiresAt:    exp,
		}); err != nil {
			return helper.FromFiberError(c, err)
		}
	}
	return helper.JsonOK(c, "", fiber.Map{"last_active_at": now})
}

// CleanupExpired hapus user_sessions & token_blacklist yang sudah kadaluarsa.
func CleanupExpired(ctx context.Context, db *gorm.DB) (sessions int64, blacklisted int64, err error) {
	sessions, err = authRepo.CleanupExpiredSessions(ctx, db, nowUTC())
	if err != nil {
		return 0, 0, err
	}
	blacklisted, err = helperAuth.PurgeExpiredBlacklist(ctx, db)
	return sessions, blacklisted, err
}

// ActiveSessionUserIDs: user yang punya sesi aktif dalam window (mis. 5 menit)
func ActiveSessionUserIDs(ctx context.Context, db *gorm.DB, within time.Duration) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := db.WithContext(ctx).Model(&authModel.UserSessionModel{}).
		Where("last_active_at >= ? AND expires_at > ?", nowUTC().Add(-within), nowUTC()).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
