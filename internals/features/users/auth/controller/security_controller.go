package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"gorm.io/gorm"

	logService "itqan_backend/internals/features/system/activity_logs/service"
	authRepo "itqan_backend/internals/features/users/auth/repository"
	userModel "itqan_backend/internals/features/users/users/model"
	helper "itqan_backend/internals/helpers"
)

const totpIssuer = "Itqan"

type SecurityController struct {
	DB *gorm.DB
}

func NewSecurityController(db *gorm.DB) *SecurityController {
	return &SecurityController{DB: db}
}

type LockedAccount struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Role              string     `json:"role"`
	LockedAt          *time.Time `json:"locked_at"`
	FailedLoginCount  int        `json:"failed_login_count"`
	LastFailedLoginAt *time.Time `json:"last_failed_login_at"`
}

type SecurityStats struct {
	LoginsToday    int64 `json:"logins_today"`
	FailedToday    int64 `json:"failed_today"`
	FailedWeek     int64 `json:"failed_week"`
	LockedAccounts int64 `json:"locked_accounts"`
	ActiveAccounts int64 `json:"active_accounts"`
}

// 🟢 GET /api/admin/security
func (sc *SecurityController) Overview(c *fiber.Ctx) error {
	ctx := c.UserContext()
	now := time.Now().UTC()

	failed, err := logService.Recent(ctx, sc.DB, "login_failed", 50)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	recent, err := logService.Recent(ctx, sc.DB, "login_success", 30)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	locked := []LockedAccount{}
	if err := sc.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("is_locked = ?", true).
		Order("locked_at DESC").
		Find(&locked).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var st SecurityStats
	if st.LoginsToday, err = logService.CountSince(ctx, sc.DB, "login_success", now.Add(-24*time.Hour)); err != nil {
		return helper.FromFiberError(c, err)
	}
	if st.FailedToday, err = logService.CountSince(ctx, sc.DB, "login_failed", now.Add(-24*time.Hour)); err != nil {
		return helper.FromFiberError(c, err)
	}
	if st.FailedWeek, err = logService.CountSince(ctx, sc.DB, "login_failed", now.Add(-7*24*time.Hour)); err != nil {
		return helper.FromFiberError(c, err)
	}
	st.LockedAccounts = int64(len(locked))
	if err := sc.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("is_active = ?", true).Count(&st.ActiveAccounts).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "", fiber.Map{
		"failed_logins":   failed,
		"locked_accounts": locked,
		"recent_logins":   recent,
		"stats":           st,
	})
}

type lockRequest struct {
	UserID string `json:"user_id"`
	Action string `json:"action"`
}

// 🟢 PATCH /api/admin/security {user_id, action: unlock|lock}
func (sc *SecurityController) SetLock(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req lockRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	if req.UserID == "" || req.Action == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgAllFieldsRequired)
	}
	target, err := uuid.Parse(req.UserID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidID)
	}

	ctx := c.UserContext()
	if _, err := authRepo.FindUserByID(ctx, sc.DB, target); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, helper.MsgUserNotFound)
		}
		return helper.FromFiberError(c, err)
	}

	var fields map[string]any
	var action, desc string
	switch req.Action {
	case "unlock":
		fields = map[string]any{"is_locked": false, "failed_login_count": 0, "locked_at": nil}
		action, desc = "account_unlocked", "فتح الحساب يدوياً من قبل الإدارة"
	case "lock":
		fields = map[string]any{"is_locked": true, "locked_at": time.Now().UTC()}
		action, desc = "account_locked", "قفل الحساب يدوياً من قبل الإدارة"
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgUnknownAction)
	}

	if err := authRepo.UpdateUser(ctx, sc.DB, target, fields); err != nil {
		return helper.FromFiberError(c, err)
	}
	logService.Log(ctx, sc.DB, logService.Entry{
		UserID:      &adminID,
		Action:      action,
		EntityType:  "user",
		EntityID:    target.String(),
		Description: desc,
		IPAddress:   helper.ClientIP(c),
	})
	return helper.JsonUpdated(c, "", fiber.Map{"user_id": target, "action": req.Action})
}

/* ==========================
   TOTP (admin 2FA)
========================== */

// 🟢 POST /api/admin/security/totp/setup -> secret + otpauth URL (belum aktif sampai /enable)
func (sc *SecurityController) TOTPSetup(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	ctx := c.UserContext()
	user, err := authRepo.FindUserByID(ctx, sc.DB, adminID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	key, err := totp.Generate(totp.GenerateOpts{Issuer: totpIssuer, AccountName: user.Email})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := authRepo.UpdateUser(ctx, sc.DB, adminID, map[string]any{
		"totp_secret":  key.Secret(),
		"totp_enabled": false,
	}); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{"secret": key.Secret(), "otpauth_url": key.URL()})
}

type totpCodeRequest struct {
	Code string `json:"code"`
}

// 🟢 POST /api/admin/security/totp/enable {code}
func (sc *SecurityController) TOTPEnable(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req totpCodeRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgAllFieldsRequired)
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByID(ctx, sc.DB, adminID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if user.TOTPSecret == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "يجب إعداد المصادقة الثنائية أولاً")
	}
	if !totp.Validate(req.Code, *user.TOTPSecret) {
		return helper.JsonError(c, fiber.StatusBadRequest, "رمز التحقق غير صحيح")
	}
	if err := authRepo.UpdateUser(ctx, sc.DB, adminID, map[string]any{"totp_enabled": true}); err != nil {
		return helper.FromFiberError(c, err)
	}
	logService.Log(ctx, sc.DB, logService.Entry{UserID: &adminID, Action: "totp_enabled", EntityType: "user", EntityID: adminID.String()})
	return helper.JsonUpdated(c, "تم تفعيل المصادقة الثنائية", nil)
}

// 🟢 DELETE /api/admin/security/totp
func (sc *SecurityController) TOTPDisable(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	ctx := c.UserContext()
	if err := authRepo.UpdateUser(ctx, sc.DB, adminID, map[string]any{
		"totp_enabled": false,
		"totp_secret":  nil,
	}); err != nil {
		return helper.FromFiberError(c, err)
	}
	logService.Log(ctx, sc.DB, logService.Entry{UserID: &adminID, Action: "totp_disabled", EntityType: "user", EntityID: adminID.String()})
	return helper.JsonDeleted(c, "تم إيقاف المصادقة الثنائية", nil)
}
