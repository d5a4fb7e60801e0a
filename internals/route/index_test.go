package routes_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/constants"
	routes "itqan_backend/internals/route"
	"itqan_backend/internals/testutil"
)

func TestPublicUnknownPathIs404(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewApp()
	routes.SetupRoutes(app, db)

	code, env := testutil.DoJSON(t, app, http.MethodGet, "/api/public/does-not-exist", nil, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)

	code, env = testutil.DoJSON(t, app, http.MethodGet, "/api/public/stats", nil, "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestReaderAvailabilityOpenToStudents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewApp()
	routes.SetupRoutes(app, db)

	reader := testutil.CreateUser(t, db, constants.RoleReader)
	student := testutil.CreateUser(t, db, constants.RoleStudent)
	path := "/api/readers/" + reader.ID.String() + "/availability"

	code, _ := testutil.DoJSON(t, app, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := testutil.DoJSON(t, app, http.MethodGet, path, nil, testutil.Token(t, student))
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	// pencarian student tetap khusus reader
	code, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/reader/search?q=a", nil, testutil.Token(t, student))
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/reader/search?q=a", nil, testutil.Token(t, reader))
	assert.Equal(t, http.StatusOK, code)

	code, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/admin/search?q=a", nil, testutil.Token(t, student))
	assert.Equal(t, http.StatusForbidden, code)
}
