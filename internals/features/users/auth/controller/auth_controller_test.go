package controller_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	logModel "itqan_backend/internals/features/system/activity_logs/model"
	"itqan_backend/internals/features/users/auth/controller"
	authDto "itqan_backend/internals/features/users/auth/dto"
	authHelper "itqan_backend/internals/features/users/auth/helper"
	authService "itqan_backend/internals/features/users/auth/service"
	userModel "itqan_backend/internals/features/users/users/model"
	"itqan_backend/internals/testutil"
)

// tanpa rate limiter supaya percobaan berulang tidak terpotong
func newAuthApp(db *gorm.DB) *fiber.App {
	app := testutil.NewApp()
	ctl := controller.NewAuthController(db)
	app.Post("/register", ctl.Register)
	app.Post("/verify", ctl.Verify)
	app.Post("/login", ctl.Login)
	app.Post("/logout", ctl.Logout)
	return app
}

func reload(t *testing.T, db *gorm.DB, id any) userModel.UserModel {
	t.Helper()
	var u userModel.UserModel
	require.NoError(t, db.First(&u, "id = ?", id).Error)
	return u
}

func TestRegisterVerifyLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	rec := testutil.UseMailRecorder(t)
	app := newAuthApp(db)

	code, _ := testutil.DoJSON(t, app, http.MethodPost, "/register", fiber.Map{"email": "a@b.c"}, "")
	assert.Equal(t, http.StatusBadRequest, code)

	body := fiber.Map{"name": "Fatimah", "email": " Fatimah@Example.com ", "password": "rahasia123", "gender": "female"}
	code, _ = testutil.DoJSON(t, app, http.MethodPost, "/register", body, "")
	require.Equal(t, http.StatusCreated, code)

	var u userModel.UserModel
	require.NoError(t, db.Where("email = ?", "fatimah@example.com").First(&u).Error)
	assert.Equal(t, constants.RoleStudent, u.Role)
	assert.False(t, u.EmailVerified)
	require.NotNil(t, u.VerificationCode)
	require.NotEmpty(t, rec.Messages())
	assert.Equal(t, u.Email, rec.Messages()[0].To)

	code, _ = testutil.DoJSON(t, app, http.MethodPost, "/register", body, "")
	assert.Equal(t, http.StatusConflict, code)

	code, _ = testutil.DoJSON(t, app, http.MethodPost, "/verify", fiber.Map{"email": u.Email, "code": "000000x"}, "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := testutil.DoJSON(t, app, http.MethodPost, "/verify", fiber.Map{"email": u.Email, "code": *u.VerificationCode}, "")
	require.Equal(t, http.StatusOK, code)
	var verified authDto.LoginResponse
	testutil.Decode(t, env, &verified)
	assert.NotEmpty(t, verified.Token)
	assert.True(t, reload(t, db, u.ID).EmailVerified)

	code, env = testutil.DoJSON(t, app, http.MethodPost, "/login", fiber.Map{"email": "FATIMAH@example.com", "password": "rahasia123"}, "")
	require.Equal(t, http.StatusOK, code)
	var login authDto.LoginResponse
	testutil.Decode(t, env, &login)
	assert.Equal(t, u.ID, login.User.ID)
	assert.NotNil(t, reload(t, db, u.ID).LastLoginAt)
}

func TestFailedLoginLocksAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := newAuthApp(db)

	hash, err := authHelper.HashPassword("rahasia123")
	require.NoError(t, err)
	u := testutil.CreateUser(t, db, constants.RoleStudent, testutil.WithPassword(hash))

	code, _ := testutil.DoJSON(t, app, http.MethodPost, "/login", fiber.Map{"email": "nobody@example.com", "password": "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	for i := 1; i < authService.MaxFailedAttempts; i++ {
		code, env := testutil.DoJSON(t, app, http.MethodPost, "/login", fiber.Map{"email": u.Email, "password": "salah"}, "")
		require.Equal(t, http.StatusUnauthorized, code)
		assert.True(t, strings.Contains(env.Message, "تبقى"), env.Message)
		assert.Equal(t, i, reload(t, db, u.ID).FailedLoginCount)
	}

	code, _ = testutil.DoJSON(t, app, http.MethodPost, "/login", fiber.Map{"email": u.Email, "password": "salah"}, "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.True(t, reload(t, db, u.ID).IsLocked)

	failedLogins := func() int64 {
		var n int64
		require.NoError(t, db.Model(&logModel.ActivityLogModel{}).
			Where("user_id = ? AND action = ?", u.ID, "login_failed").Count(&n).Error)
		return n
	}
	before := failedLogins()

	// password benar pun ditolak selama terkunci, tapi tetap tercatat
	code, _ = testutil.DoJSON(t, app, http.MethodPost, "/login", fiber.Map{"email": u.Email, "password": "rahasia123"}, "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, before+1, failedLogins())
}

func TestSuccessfulLoginResetsCounter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := newAuthApp(db)

	hash, err := authHelper.HashPassword("rahasia123")
	require.NoError(t, err)
	u := testutil.CreateUser(t, db, constants.RoleStudent, testutil.WithPassword(hash))

	code, _ := testutil.DoJSON(t, app, http.MethodPost, "/login", fiber.Map{"email": u.Email, "password": "salah"}, "")
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, 1, reload(t, db, u.ID).FailedLoginCount)

	code, env := testutil.DoJSON(t, app, http.MethodPost, "/login", fiber.Map{"email": u.Email, "password": "rahasia123"}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, reload(t, db, u.ID).FailedLoginCount)

	var login authDto.LoginResponse
	testutil.Decode(t, env, &login)
	code, _ = testutil.DoJSON(t, app, http.MethodPost, "/logout", nil, login.Token)
	assert.Equal(t, http.StatusOK, code)
	code, _ = testutil.DoJSON(t, app, http.MethodPost, "/logout", nil, "")
	assert.Equal(t, http.StatusOK, code)
}

func TestReaderPendingCannotLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := newAuthApp(db)

	hash, err := authHelper.HashPassword("rahasia123")
	require.NoError(t, err)
	pending := testutil.CreateUser(t, db, constants.RoleReader, testutil.WithPassword(hash), testutil.WithApproval(constants.ApprovalPending))
	inactive := testutil.CreateUser(t, db, constants.RoleStudent, testutil.WithPassword(hash), testutil.Inactive())

	code, _ := testutil.DoJSON(t, app, http.MethodPost, "/login", fiber.Map{"email": pending.Email, "password": "rahasia123"}, "")
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = testutil.DoJSON(t, app, http.MethodPost, "/login", fiber.Map{"email": inactive.Email, "password": "rahasia123"}, "")
	assert.Equal(t, http.StatusForbidden, code)
}
