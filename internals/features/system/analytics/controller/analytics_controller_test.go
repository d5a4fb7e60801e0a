package controller_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/features/system/analytics/model"
	analyticsRoute "itqan_backend/internals/features/system/analytics/route"
	"itqan_backend/internals/features/system/analytics/service"
	"itqan_backend/internals/testutil"
)

func TestPageViewAndSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewApp()
	analyticsRoute.AnalyticsPublicRoutes(app.Group("/api/public"), db)
	analyticsRoute.AnalyticsAdminRoutes(app.Group("/api/admin"), db)

	send := func(body, ua string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/public/analytics/page-view", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", ua)
		req.Header.Set("CF-IPCountry", "sa")
		req.Header.Set("X-Forwarded-For", "203.0.113.5")
		code, _ := testutil.Do(t, app, req)
		return code
	}

	chrome := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	bot := "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"

	assert.Equal(t, http.StatusCreated, send(`{"page_path":"/articles"}`, chrome))
	assert.Equal(t, http.StatusCreated, send(`{"page_path":"/articles"}`, bot))
	assert.Equal(t, http.StatusBadRequest, send(`{"page_path":"  "}`, chrome))

	var rows []model.PageViewModel
	require.NoError(t, db.Order("created_at").Find(&rows).Error)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Country)
	assert.Equal(t, "SA", *rows[0].Country)
	require.NotNil(t, rows[0].IPHash)
	assert.Len(t, *rows[0].IPHash, 16)

	sum, err := service.Summarize(t.Context(), db, 7, time.Now().UTC())
	require.NoError(t, err)
	assert.EqualValues(t, 1, sum.TotalViews)
	require.Len(t, sum.TopPages, 1)
	assert.Equal(t, "/articles", sum.TopPages[0].PagePath)
}
