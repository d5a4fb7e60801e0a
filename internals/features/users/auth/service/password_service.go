package service

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	logService "itqan_backend/internals/features/system/activity_logs/service"
	emailService "itqan_backend/internals/features/system/email_templates/service"
	authDto "itqan_backend/internals/features/users/auth/dto"
	authHelper "itqan_backend/internals/features/users/auth/helper"
	authRepo "itqan_backend/internals/features/users/auth/repository"
	helper "itqan_backend/internals/helpers"
)

// ========================== VERIFY EMAIL ==========================
func Verify(db *gorm.DB, c *fiber.Ctx) error {
	var input authDto.VerifyRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	email := helper.NormalizeEmail(input.Email)
	code := strings.TrimSpace(input.Code)
	if email == "" || code == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "البريد الإلكتروني وكود التحقق مطلوبان")
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByEmail(ctx, db, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, helper.MsgUserNotFound)
		}
		return helper.FromFiberError(c, err)
	}
	if user.EmailVerified {
		return helper.JsonError(c, fiber.StatusBadRequest, "الحساب مفعل بالفعل")
	}
	if user.VerificationCode == nil || *user.VerificationCode != code {
		return helper.JsonError(c, fiber.StatusBadRequest, "كود التحقق غير صحيح")
	}
	if user.VerificationCodeExpiresAt == nil || nowUTC().After(*user.VerificationCodeExpiresAt) {
		return helper.JsonError(c, fiber.StatusBadRequest, "كود التحقق منتهي الصلاحية، يرجى طلب كود جديد")
	}

	if err := authRepo.UpdateUser(ctx, db, user.ID, map[string]any{
		"email_verified":               true,
		"verification_code":            nil,
		"verification_code_expires_at": nil,
		"last_login_at":                nowUTC(),
	}); err != nil {
		return helper.FromFiberError(c, err)
	}
	user.EmailVerified = true

	emailService.SendWelcomeEmail(user.Email, user.Name)

	token, err := issueSession(c, db, user)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "تم تفعيل الحساب بنجاح", authDto.LoginResponse{
		User:  authDto.ToUserBrief(user),
		Token: token,
	})
}

// ========================== RESEND CODE ==========================
func ResendCode(db *gorm.DB, c *fiber.Ctx) error {
	var input authDto.EmailRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	email := helper.NormalizeEmail(input.Email)
	if email == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "البريد الإلكتروني مطلوب")
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByEmail(ctx, db, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, helper.MsgUserNotFound)
		}
		return helper.FromFiberError(c, err)
	}
	if user.EmailVerified {
		return helper.JsonError(c, fiber.StatusBadRequest, "الحساب مفعل بالفعل، يرجى تسجيل الدخول")
	}

	code := helper.GenerateNumericCode(6)
	exp := nowUTC().Add(VerificationCodeTTL)
	if err := authRepo.UpdateUser(ctx, db, user.ID, map[string]any{
		"verification_code":            code,
		"verification_code_expires_at": exp,
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	emailService.SendVerificationEmail(user.Email, user.Name, code)
	return helper.JsonOK(c, "تم إعادة إرسال كود التفعيل بنجاح", nil)
}

// ========================== FORGOT PASSWORD ==========================
func ForgotPassword(db *gorm.DB, c *fiber.Ctx) error {
	var input authDto.EmailRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	email := helper.NormalizeEmail(input.Email)
	if email == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "البريد الإلكتروني مطلوب")
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByEmail(ctx, db, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "هذا البريد الإلكتروني غير مسجل لدينا.")
		}
		return helper.FromFiberError(c, err)
	}

	code := helper.GenerateNumericCode(6)
	exp := nowUTC().Add(ResetCodeTTL)
	if err := authRepo.UpdateUser(ctx, db, user.ID, map[string]any{
		"reset_code":            code,
		"reset_code_expires_at": exp,
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	emailService.SendResetCodeEmail(user.Email, user.Name, code)
	return helper.JsonOK(c, "إذا كان البريد مسجلاً، فسيتم إرسال كود الاستعادة", nil)
}

// ========================== RESET PASSWORD ==========================
func ResetPassword(db *gorm.DB, c *fiber.Ctx) error {
	var input authDto.ResetPasswordRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	email := helper.NormalizeEmail(input.Email)
	code := strings.TrimSpace(input.Code)
	if email == "" || code == "" || input.NewPassword == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgAllFieldsRequired)
	}
	if !authHelper.IsPasswordLongEnough(input.NewPassword) {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgPasswordTooShort)
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByEmail(ctx, db, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, helper.MsgUserNotFound)
		}
		return helper.FromFiberError(c, err)
	}
	if user.ResetCode == nil || *user.ResetCode != code {
		return helper.JsonError(c, fiber.StatusBadRequest, "كود التحقق غير صحيح أو غير صالح")
	}
	if user.ResetCodeExpiresAt == nil || nowUTC().After(*user.ResetCodeExpiresAt) {
		return helper.JsonError(c, fiber.StatusBadRequest, "كود التحقق منتهي الصلاحية، يرجى طلب كود جديد")
	}

	hash, err := authHelper.HashPassword(input.NewPassword)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := authRepo.UpdateUser(ctx, db, user.ID, map[string]any{
		"password_hash":         hash,
		"reset_code":            nil,
		"reset_code_expires_at": nil,
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	logService.Log(ctx, db, logService.Entry{
		UserID:      &user.ID,
		Action:      "password_reset",
		Description: "إعادة تعيين كلمة المرور عبر الكود",
		IPAddress:   helper.ClientIP(c),
	})
	return helper.JsonUpdated(c, "تم تغيير كلمة المرور بنجاح", nil)
}

// ========================== CHANGE PASSWORD ==========================
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var input authDto.ChangePasswordRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgAllFieldsRequired)
	}
	if !authHelper.IsPasswordLongEnough(input.NewPassword) {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgPasswordTooShort)
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByID(ctx, db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, helper.MsgUserNotFound)
		}
		return helper.FromFiberError(c, err)
	}
	if !authHelper.CheckPasswordHash(user.PasswordHash, input.CurrentPassword) {
		return helper.JsonError(c, fiber.StatusBadRequest, "كلمة المرور الحالية غير صحيحة")
	}

	hash, err := authHelper.HashPassword(input.NewPassword)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := authRepo.UpdateUserPassword(ctx, db, userID, hash); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "تم تغيير كلمة المرور بنجاح", nil)
}
