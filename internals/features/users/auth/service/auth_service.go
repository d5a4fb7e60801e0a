package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"itqan_backend/internals/configs"
	"itqan_backend/internals/constants"
	notifDto "itqan_backend/internals/features/home/notifications/dto"
	notifService "itqan_backend/internals/features/home/notifications/service"
	logService "itqan_backend/internals/features/system/activity_logs/service"
	emailService "itqan_backend/internals/features/system/email_templates/service"
	authDto "itqan_backend/internals/features/users/auth/dto"
	authHelper "itqan_backend/internals/features/users/auth/helper"
	authRepo "itqan_backend/internals/features/users/auth/repository"
	userModel "itqan_backend/internals/features/users/users/model"
	helper "itqan_backend/internals/helpers"
	helperAuth "itqan_backend/internals/helpers/auth"
)

const (
	MaxFailedAttempts   = 5
	VerificationCodeTTL = 24 * time.Hour
	ResetCodeTTL        = time.Hour
)

/* ==========================
   Small Helpers
========================== */

func generateDummyPassword() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique")
}

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input authDto.RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	input.Normalize()

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgAllFieldsRequired)
	}
	if !authHelper.IsPasswordLongEnough(input.Password) {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgPasswordTooShort)
	}
	if input.Gender != "" && !constants.IsValidGender(input.Gender) {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidGender)
	}

	ctx := c.UserContext()
	existing, err := authRepo.FindUserByEmail(ctx, db, input.Email)
	if err == nil {
		if existing.EmailVerified {
			return helper.JsonError(c, fiber.StatusConflict, "البريد الإلكتروني مسجل ومفعل مسبقاً، يرجى تسجيل الدخول")
		}
		return helper.JsonErrorEx(c, fiber.StatusConflict, "البريد الإلكتروني مسجل ولكنه غير مفعل.", fiber.Map{
			"requires_verification": true,
			"email":                 existing.Email,
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.FromFiberError(c, err)
	}

	hash, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	code := helper.GenerateNumericCode(6)
	exp := nowUTC().Add(VerificationCodeTTL)
	user := userModel.UserModel{
		Name:                      input.Name,
		Email:                     input.Email,
		PasswordHash:              hash,
		Role:                      constants.RoleStudent,
		Gender:                    helper.StrPtr(input.Gender),
		Phone:                     helper.StrPtr(input.Phone),
		IsActive:                  true,
		ApprovalStatus:            constants.ApprovalAutoApproved,
		EmailVerified:             false,
		VerificationCode:          &code,
		VerificationCodeExpiresAt: &exp,
	}
	if err := authRepo.CreateUser(ctx, db, &user); err != nil {
		if isDuplicateErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "البريد الإلكتروني مسجل مسبقاً")
		}
		return helper.FromFiberError(c, err)
	}

	emailService.SendVerificationEmail(user.Email, user.Name, code)

	return helper.JsonCreated(c, "تم إنشاء الحساب، يرجى تفعيل بريدك الإلكتروني", fiber.Map{
		"user":                  authDto.ToUserBrief(&user),
		"requires_verification": true,
	})
}

/* ==========================
   LOGIN
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input authDto.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	email := helper.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "البريد الإلكتروني وكلمة المرور مطلوبان")
	}

	ctx := c.UserContext()
	ip := helper.ClientIP(c)

	user, err := authRepo.FindUserByEmail(ctx, db, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logService.Log(ctx, db, logService.Entry{
				Action:      "login_failed",
				Description: "محاولة دخول ببريد غير مسجل: " + email,
				IPAddress:   ip,
			})
			return helper.JsonError(c, fiber.StatusUnauthorized, "بيانات الدخول غير صحيحة")
		}
		return helper.FromFiberError(c, err)
	}

	if user.IsLocked {
		logService.Log(ctx, db, logService.Entry{
			UserID:      &user.ID,
			Action:      "login_failed",
			Description: "محاولة دخول إلى حساب مقفل",
			IPAddress:   ip,
		})
		return helper.JsonError(c, fiber.StatusForbidden, "الحساب مقفل بسبب محاولات دخول متعددة فاشلة. تواصل مع الإدارة.")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "الحساب معطل. تواصل مع الدعم.")
	}

	if !authHelper.CheckPasswordHash(user.PasswordHash, input.Password) {
		return registerFailedLogin(c, db, user, ip)
	}

	if user.Role == constants.RoleReader {
		switch user.ApprovalStatus {
		case constants.ApprovalPending:
			return helper.JsonError(c, fiber.StatusForbidden, "تم استلام طلبك، وبانتظار اعتماد الإدارة.")
		case constants.ApprovalRejected:
			return helper.JsonError(c, fiber.StatusForbidden, "تم رفض طلب التسجيل. تواصل مع الإدارة لمزيد من المعلومات.")
		}
	}

	// faktor kedua admin
	if user.Role == constants.RoleAdmin && user.TOTPEnabled && user.TOTPSecret != nil {
		otp := strings.TrimSpace(input.OTP)
		if otp == "" || !totp.Validate(otp, *user.TOTPSecret) {
			return helper.JsonErrorEx(c, fiber.StatusUnauthorized, "رمز التحقق الثنائي مطلوب أو غير صحيح", fiber.Map{"requires_otp": true})
		}
	}

	now := nowUTC()
	if err := authRepo.UpdateUser(ctx, db, user.ID, map[string]any{
		"failed_login_count": 0,
		"last_login_at":      now,
	}); err != nil {
		return helper.FromFiberError(c, err)
	}
	logService.Log(ctx, db, logService.Entry{
		UserID:      &user.ID,
		Action:      "login_success",
		Description: "تسجيل دخول ناجح",
		IPAddress:   ip,
	})

	token, err := issueSession(c, db, user)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "تم تسجيل الدخول بنجاح", authDto.LoginResponse{
		User:  authDto.ToUserBrief(user),
		Token: token,
	})
}

// registerFailedLogin menaikkan counter; mengunci akun pada percobaan ke-MaxFailedAttempts.
func registerFailedLogin(c *fiber.Ctx, db *gorm.DB, user *userModel.UserModel, ip string) error {
	ctx := c.UserContext()
	now := nowUTC()
	count := user.FailedLoginCount + 1

	fields := map[string]any{
		"failed_login_count":   count,
		"last_failed_login_at": now,
	}
	locked := count >= MaxFailedAttempts
	if locked {
		fields["is_locked"] = true
		fields["locked_at"] = now
	}
	if err := authRepo.UpdateUser(ctx, db, user.ID, fields); err != nil {
		return helper.FromFiberError(c, err)
	}

	logService.Log(ctx, db, logService.Entry{
		UserID:      &user.ID,
		Action:      "login_failed",
		Description: fmt.Sprintf("كلمة مرور خاطئة (المحاولة %d)", count),
		IPAddress:   ip,
	})

	if locked {
		logService.Log(ctx, db, logService.Entry{
			UserID:      &user.ID,
			Action:      "account_locked",
			EntityType:  "user",
			EntityID:    user.ID.String(),
			Description: "تم قفل الحساب تلقائياً بعد محاولات فاشلة",
			IPAddress:   ip,
		})
		return helper.JsonError(c, fiber.StatusForbidden,
			fmt.Sprintf("تم قفل الحساب بعد %d محاولات فاشلة. تواصل مع الإدارة.", MaxFailedAttempts))
	}
	remaining := MaxFailedAttempts - count
	return helper.JsonError(c, fiber.StatusUnauthorized,
		fmt.Sprintf("بيانات الدخول غير صحيحة. تبقى %d محاولة قبل قفل الحساب.", remaining))
}

/* ==========================
   LOGIN GOOGLE
========================== */

// touchLastLogin: gagal update last_login_at tidak membatalkan login, cukup dicatat.
func touchLastLogin(ctx context.Context, db *gorm.DB, userID uuid.UUID) {
	if err := authRepo.UpdateUser(ctx, db, userID, map[string]any{"last_login_at": nowUTC()}); err != nil {
		zap.L().Warn("update last_login_at gagal", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input authDto.GoogleLoginRequest
	if err := c.BodyParser(&input); err != nil || strings.TrimSpace(input.IDToken) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	if configs.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "تسجيل الدخول عبر Google غير مفعل")
	}

	// Verifikasi token Google
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, helper.MsgUnauthorized)
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, helper.MsgUnauthorized)
	}
	email := helper.NormalizeEmail(claimSet.Email)
	name, googleID := strings.TrimSpace(claimSet.Name), claimSet.Sub
	if name == "" {
		name = strings.Split(email, "@")[0]
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByGoogleID(ctx, db, googleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// akun email yang sama -> tautkan
		user, err = authRepo.FindUserByEmail(ctx, db, email)
		if err == nil {
			if err := authRepo.UpdateUser(ctx, db, user.ID, map[string]any{
				"google_id":      googleID,
				"email_verified": true,
			}); err != nil {
				return helper.FromFiberError(c, err)
			}
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			hash, herr := authHelper.HashPassword(generateDummyPassword())
			if herr != nil {
				return helper.FromFiberError(c, herr)
			}
			user = &userModel.UserModel{
				Name:           name,
				Email:          email,
				PasswordHash:   hash,
				Role:           constants.RoleStudent,
				GoogleID:       &googleID,
				IsActive:       true,
				ApprovalStatus: constants.ApprovalAutoApproved,
				EmailVerified:  true,
			}
			if err := authRepo.CreateUser(ctx, db, user); err != nil {
				if isDuplicateErr(err) {
					return helper.JsonError(c, fiber.StatusConflict, "البريد الإلكتروني مسجل مسبقاً")
				}
				return helper.FromFiberError(c, err)
			}
		} else {
			return helper.FromFiberError(c, err)
		}
	} else if err != nil {
		return helper.FromFiberError(c, err)
	}

	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "الحساب معطل. تواصل مع الدعم.")
	}
	if user.IsLocked {
		return helper.JsonError(c, fiber.StatusForbidden, "الحساب مقفل بسبب محاولات دخول متعددة فاشلة. تواصل مع الإدارة.")
	}

	touchLastLogin(ctx, db, user.ID)
	logService.Log(ctx, db, logService.Entry{
		UserID:      &user.ID,
		Action:      "login_success",
		Description: "تسجيل دخول عبر Google",
		IPAddress:   helper.ClientIP(c),
	})

	token, err := issueSession(c, db, user)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "تم تسجيل الدخول بنجاح", authDto.LoginResponse{
		User:  authDto.ToUserBrief(user),
		Token: token,
	})
}

/* ==========================
   LOGOUT
========================== */

// Logout idempotent: tanpa token tetap 200 + cookie dihapus.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	ctx := c.UserContext()
	raw := helper.GetRawAccessToken(c)

	if raw != "" {
		if err := authRepo.DeleteSessionByToken(ctx, db, raw); err != nil {
			zap.L().Warn("gagal menghapus user_session saat logout", zap.Error(err))
		}
		exp, ok := helperAuth.TokenExpiry(raw)
		if !ok {
			exp = nowUTC().Add(helperAuth.SessionTTL)
		}
		if err := helperAuth.Blacklist(ctx, db, raw, configs.JWTSecret, exp); err != nil {
			zap.L().Warn("gagal blacklist token", zap.Error(err))
		}
	}

	clearAuthCookie(c)
	return helper.JsonOK(c, "تم تسجيل الخروج بنجاح", nil)
}

/* ==========================
   READER REGISTER
========================== */

func ReaderRegister(db *gorm.DB, c *fiber.Ctx) error {
	var input authDto.ReaderRegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidData)
	}
	input.Normalize()

	if input.FullNameTriple == "" || input.Email == "" || input.Password == "" ||
		input.Phone == "" || input.City == "" || input.Gender == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "جميع الحقول الإلزامية مطلوبة")
	}
	if !authHelper.IsPasswordLongEnough(input.Password) {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgPasswordTooShort)
	}
	if !constants.IsValidGender(input.Gender) {
		return helper.JsonError(c, fiber.StatusBadRequest, helper.MsgInvalidGender)
	}

	ctx := c.UserContext()
	exists, err := authRepo.EmailExists(ctx, db, input.Email)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if exists {
		return helper.JsonError(c, fiber.StatusConflict, "البريد الإلكتروني مسجل مسبقاً")
	}

	hash, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	user := userModel.UserModel{
		Name:           input.FullNameTriple,
		Email:          input.Email,
		PasswordHash:   hash,
		Role:           constants.RoleReader,
		Gender:         helper.StrPtr(input.Gender),
		Phone:          helper.StrPtr(input.Phone),
		City:           helper.StrPtr(input.City),
		IsActive:       true,
		ApprovalStatus: constants.ApprovalPending,
		EmailVerified:  true,
	}
	profile := userModel.ReaderProfileModel{
		FullNameTriple:     input.FullNameTriple,
		Qualification:      helper.StrPtr(input.Qualification),
		MemorizedParts:     input.MemorizedParts,
		YearsOfExperience:  input.YearsOfExperience,
		CertificateFileURL: helper.StrPtr(strings.TrimSpace(input.CertificateFileURL)),
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		if isDuplicateErr(err) {
			return helper.JsonError(c, fiber.StatusConflict, "البريد الإلكتروني مسجل مسبقاً")
		}
		return helper.FromFiberError(c, err)
	}

	notifService.NotifyRole(ctx, db, constants.RoleAdmin, notifDto.NewNotification{
		Type:     "new_reader_application",
		Title:    "طلب تسجيل مقرئ جديد",
		Message:  fmt.Sprintf("قدّم %s طلب انضمام كمقرئ. يرجى مراجعة الطلب.", user.Name),
		Category: constants.NotifCategoryAccount,
		Link:     "/admin/reader-applications",
	})
	logService.Log(ctx, db, logService.Entry{
		UserID:      &user.ID,
		Action:      "reader_registered",
		EntityType:  "user",
		EntityID:    user.ID.String(),
		Description: "طلب تسجيل مقرئ جديد: " + user.Email,
		IPAddress:   helper.ClientIP(c),
	})

	return helper.JsonCreated(c, "تم استلام طلبك، وسيتم مراجعته من قبل الإدارة. سيتم إشعارك عند اعتماد الحساب.", fiber.Map{
		"user": authDto.ToUserBrief(&user),
	})
}
