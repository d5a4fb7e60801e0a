package route_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/users/auth/route"
	"itqan_backend/internals/testutil"
)

func TestWrongCodesAreRateLimited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.UseMailRecorder(t)
	u := testutil.CreateUser(t, db, constants.RoleStudent)

	app := testutil.NewApp()
	route.AuthRoutes(app, db)

	cases := []struct {
		path string
		body string
	}{
		{"/api/auth/verify", `{"email":"%s","code":"000000"}`},
		{"/api/auth/reset-password", `{"email":"%s","code":"000000","new_password":"kataSandiBaru1"}`},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			for i := 0; i < 6; i++ {
				req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(fmt.Sprintf(tc.body, u.Email)))
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set(fiber.HeaderXForwardedFor, fmt.Sprintf("192.0.2.%d", i+1))
				code, _ := testutil.Do(t, app, req)
				if i < 5 {
					assert.NotEqual(t, http.StatusOK, code)
					assert.NotEqual(t, http.StatusTooManyRequests, code)
				} else {
					assert.Equal(t, http.StatusTooManyRequests, code)
				}
			}
		})
	}
}
