package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/features/system/settings/model"
	settingsService "itqan_backend/internals/features/system/settings/service"
	"itqan_backend/internals/testutil"
)

func TestSetGetAndInvalidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()

	assert.Equal(t, "fallback", settingsService.GetString(ctx, db, model.KeySiteName, "fallback"))
	assert.False(t, settingsService.IsMaintenance(ctx, db))

	require.NoError(t, settingsService.Set(ctx, db, model.KeySiteName, "Itqan", "", nil))
	assert.Equal(t, "Itqan", settingsService.GetString(ctx, db, model.KeySiteName, "fallback"))

	// nilai lama sudah di cache; Set harus menghapusnya
	require.NoError(t, settingsService.Set(ctx, db, model.KeySiteName, "Itqan al-Fatiha", "", nil))
	assert.Equal(t, "Itqan al-Fatiha", settingsService.GetString(ctx, db, model.KeySiteName, "fallback"))

	var count int64
	require.NoError(t, db.Model(&model.SystemSettingModel{}).Where("setting_key = ?", model.KeySiteName).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetBoolAndMaintenance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()

	require.NoError(t, settingsService.Set(ctx, db, model.KeyMaintenanceMode, "true", "", nil))
	assert.True(t, settingsService.IsMaintenance(ctx, db))

	require.NoError(t, settingsService.Set(ctx, db, model.KeyMaintenanceMode, false, "", nil))
	assert.False(t, settingsService.IsMaintenance(ctx, db))

	require.NoError(t, settingsService.Set(ctx, db, "odd_flag", 42, "", nil))
	assert.True(t, settingsService.GetBool(ctx, db, "odd_flag", true))
}

func TestSetDefaultAndListByType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()

	require.NoError(t, settingsService.SetDefault(ctx, db, "hero_title", "Selamat datang", model.TypeHomepage, "judul hero"))
	require.NoError(t, settingsService.SetDefault(ctx, db, "hero_title", "ditimpa?", model.TypeHomepage, ""))
	require.NoError(t, settingsService.Set(ctx, db, model.KeySiteName, "Itqan", model.TypeGeneral, nil))

	home, err := settingsService.ListByType(ctx, db, model.TypeHomepage, false)
	require.NoError(t, err)
	require.Contains(t, home, "hero_title")
	assert.JSONEq(t, `"Selamat datang"`, string(home["hero_title"]))
	assert.NotContains(t, home, model.KeySiteName)

	rest, err := settingsService.ListByType(ctx, db, model.TypeHomepage, true)
	require.NoError(t, err)
	assert.Contains(t, rest, model.KeySiteName)
	assert.NotContains(t, rest, "hero_title")
}
