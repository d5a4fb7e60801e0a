package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	helper "itqan_backend/internals/helpers"
	helperAuth "itqan_backend/internals/helpers/auth"
	authMiddleware "itqan_backend/internals/middlewares/auth"
	"itqan_backend/internals/testutil"
)

func newProtectedApp(t *testing.T) (*fiber.App, func(role string, opts ...testutil.UserOption) string) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewApp()

	admin := app.Group("/admin", authMiddleware.AuthMiddleware(db), authMiddleware.OnlyRolesSlice("للمشرفين فقط", constants.AdminOnly))
	admin.Get("/ping", func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "", fiber.Map{"role": helper.GetUserRole(c)})
	})
	app.Get("/maybe", authMiddleware.OptionalAuth(db), func(c *fiber.Ctx) error {
		_, err := helper.GetUserIDFromToken(c)
		return helper.JsonOK(c, "", fiber.Map{"auth": err == nil})
	})
	app.Post("/logout", authMiddleware.AuthMiddleware(db), func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c)
		exp, _ := helperAuth.TokenExpiry(raw)
		if err := helperAuth.Blacklist(c.UserContext(), db, raw, testutil.TestSecret, exp); err != nil {
			return err
		}
		return helper.JsonOK(c, "", nil)
	})

	mk := func(role string, opts ...testutil.UserOption) string {
		return testutil.Token(t, testutil.CreateUser(t, db, role, opts...))
	}
	return app, mk
}

func TestAuthMiddleware(t *testing.T) {
	app, mk := newProtectedApp(t)

	code, env := testutil.DoJSON(t, app, http.MethodGet, "/admin/ping", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)

	code, _ = testutil.DoJSON(t, app, http.MethodGet, "/admin/ping", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = testutil.DoJSON(t, app, http.MethodGet, "/admin/ping", nil, mk(constants.RoleStudent))
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = testutil.DoJSON(t, app, http.MethodGet, "/admin/ping", nil, mk(constants.RoleAdmin, testutil.Inactive()))
	assert.Equal(t, http.StatusForbidden, code)

	code, env = testutil.DoJSON(t, app, http.MethodGet, "/admin/ping", nil, mk(constants.RoleAdmin))
	require.Equal(t, http.StatusOK, code)
	var data struct{ Role string }
	testutil.Decode(t, env, &data)
	assert.Equal(t, constants.RoleAdmin, data.Role)
}

func TestExpiredToken(t *testing.T) {
	app, _ := newProtectedApp(t)
	tok, _, err := helperAuth.SignSessionToken(testutil.TestSecret, helperAuth.SessionClaims{Role: constants.RoleAdmin}, time.Now().Add(-helperAuth.SessionTTL-time.Hour))
	require.NoError(t, err)
	code, _ := testutil.DoJSON(t, app, http.MethodGet, "/admin/ping", nil, tok)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestOptionalAuth(t *testing.T) {
	app, mk := newProtectedApp(t)
	var data struct{ Auth bool }

	_, env := testutil.DoJSON(t, app, http.MethodGet, "/maybe", nil, "")
	testutil.Decode(t, env, &data)
	assert.False(t, data.Auth)

	code, env := testutil.DoJSON(t, app, http.MethodGet, "/maybe", nil, "broken")
	assert.Equal(t, http.StatusOK, code)
	testutil.Decode(t, env, &data)
	assert.False(t, data.Auth)

	_, env = testutil.DoJSON(t, app, http.MethodGet, "/maybe", nil, mk(constants.RoleStudent))
	testutil.Decode(t, env, &data)
	assert.True(t, data.Auth)
}

func TestBlacklistedTokenRejected(t *testing.T) {
	app, mk := newProtectedApp(t)
	tok := mk(constants.RoleAdmin)

	code, _ := testutil.DoJSON(t, app, http.MethodPost, "/logout", nil, tok)
	require.Equal(t, http.StatusOK, code)

	code, _ = testutil.DoJSON(t, app, http.MethodGet, "/admin/ping", nil, tok)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRoleForbiddenMessageConcurrent(t *testing.T) {
	app := testutil.NewApp()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(authMiddleware.LocUserRole, c.Get("X-Role"))
		return c.Next()
	})
	app.Get("/x", authMiddleware.OnlyRoles("", constants.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			role := constants.RoleStudent
			want := http.StatusForbidden
			if i%2 == 0 {
				role, want = constants.RoleAdmin, http.StatusOK
			}
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set("X-Role", role)
			resp, err := app.Test(req, -1)
			if !assert.NoError(t, err) {
				return
			}
			_ = resp.Body.Close()
			assert.Equal(t, want, resp.StatusCode)
		}(i)
	}
	wg.Wait()

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Role", constants.RoleStudent)
	_, env := testutil.Do(t, app, req)
	assert.Equal(t, helper.MsgUnauthorized, env.Message)
}

type reqKey struct{}

func TestActiveCheckUsesRequestContext(t *testing.T) {
	db := testutil.SetupTestDB(t)
	u := testutil.CreateUser(t, db, constants.RoleStudent)

	var mu sync.Mutex
	seen := []any{}
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register("test:users_ctx", func(tx *gorm.DB) {
		if tx.Statement.Table == "users" {
			mu.Lock()
			seen = append(seen, tx.Statement.Context.Value(reqKey{}))
			mu.Unlock()
		}
	}))

	app := testutil.NewApp()
	app.Use(func(c *fiber.Ctx) error {
		c.SetUserContext(context.WithValue(c.UserContext(), reqKey{}, "req-1"))
		return c.Next()
	})
	ok := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) }
	app.Get("/strict", authMiddleware.AuthMiddleware(db), ok)
	app.Get("/maybe", authMiddleware.OptionalAuth(db), ok)

	tok := testutil.Token(t, u)
	for _, path := range []string{"/strict", "/maybe"} {
		code, _ := testutil.DoJSON(t, app, http.MethodGet, path, nil, tok)
		assert.Equal(t, http.StatusOK, code)
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	for _, v := range seen {
		assert.Equal(t, "req-1", v)
	}
}
