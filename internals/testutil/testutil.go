// Package testutil: DB sqlite in-memory, user dummy, token sesi dan helper request untuk test.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"itqan_backend/internals/configs"
	"itqan_backend/internals/constants"
	database "itqan_backend/internals/databases"
	settingsService "itqan_backend/internals/features/system/settings/service"
	userModel "itqan_backend/internals/features/users/users/model"
	helper "itqan_backend/internals/helpers"
	helperAuth "itqan_backend/internals/helpers/auth"
	"itqan_backend/internals/helpers/mailer"
)

const TestSecret = "test-secret-itqan"

// SetupTestDB: DB in-memory per test, sudah AutoMigrate semua model.
// Satu koneksi saja supaya semua query melihat DB yang sama.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=0", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	configs.JWTSecret = TestSecret
	configs.AppBaseURL = "http://localhost:3000"
	settingsService.UseCache(settingsService.NewMemoryCache(time.Minute))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// UseMailRecorder: email dikirim sinkron ke recorder, dikembalikan setelah test.
func UseMailRecorder(t *testing.T) *mailer.Recorder {
	t.Helper()
	prev := mailer.Default()
	rec := &mailer.Recorder{}
	mailer.SetDefault(rec)
	mailer.SetAsync(false)
	t.Cleanup(func() {
		mailer.SetDefault(prev)
		mailer.SetAsync(true)
	})
	return rec
}

type UserOption func(*userModel.UserModel)

func WithGender(g string) UserOption {
	return func(u *userModel.UserModel) { u.Gender = &g }
}

func WithApproval(s string) UserOption {
	return func(u *userModel.UserModel) { u.ApprovalStatus = s }
}

func WithPassword(hash string) UserOption {
	return func(u *userModel.UserModel) { u.PasswordHash = hash }
}

func Inactive() UserOption {
	return func(u *userModel.UserModel) { u.IsActive = false }
}

// CreateUser: user aktif + terverifikasi; reader default approved.
func CreateUser(t *testing.T, db *gorm.DB, role string, opts ...UserOption) userModel.UserModel {
	t.Helper()
	id := uuid.New()
	u := userModel.UserModel{
		ID:             id,
		Name:           role + "-" + id.String()[:8],
		Email:          role + "-" + id.String()[:8] + "@example.com",
		PasswordHash:   "x",
		Role:           role,
		IsActive:       true,
		EmailVerified:  true,
		ApprovalStatus: constants.ApprovalApproved,
	}
	for _, o := range opts {
		o(&u)
	}
	require.NoError(t, db.Create(&u).Error)
	if !u.IsActive {
		require.NoError(t, db.Model(&u).Update("is_active", false).Error)
	}
	return u
}

// Token sesi valid untuk user
func Token(t *testing.T, u userModel.UserModel) string {
	t.Helper()
	tok, _, err := helperAuth.SignSessionToken(TestSecret, helperAuth.SessionClaims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Name:   u.Name,
	}, time.Now())
	require.NoError(t, err)
	return tok
}

// NewApp: fiber app dengan ErrorHandler yang sama seperti produksi
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
}

// Envelope bentuk umum respons JSON
type Envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	ErrorCode  string          `json:"error_code"`
	Data       json.RawMessage `json:"data"`
	Pagination json.RawMessage `json:"pagination"`
}

// DoJSON kirim request (body di-encode JSON kalau tidak nil) dan decode envelope.
func DoJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, Envelope) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return Do(t, app, req)
}

func Do(t *testing.T, app *fiber.App, req *http.Request) (int, Envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env Envelope
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &env)
	}
	return resp.StatusCode, env
}

// Decode isi data envelope ke dst
func Decode(t *testing.T, env Envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst))
}
