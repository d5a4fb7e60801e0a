package service_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/constants"
	notifModel "itqan_backend/internals/features/home/notifications/model"
	"itqan_backend/internals/features/system/maintenance/dto"
	maintenanceService "itqan_backend/internals/features/system/maintenance/service"
	"itqan_backend/internals/testutil"
)

func TestBackupWritesSnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	admin := testutil.CreateUser(t, db, constants.RoleAdmin)
	testutil.CreateUser(t, db, constants.RoleStudent)
	dir := t.TempDir()
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	out, err := maintenanceService.Run(t.Context(), db, admin.ID, dto.ActionBackup, dir, "127.0.0.1", now)
	require.NoError(t, err)
	res, ok := out.(*dto.BackupResult)
	require.True(t, ok)
	assert.Equal(t, "itqan-backup-20250310-093000.json", res.FileName)
	assert.Equal(t, 2, res.Counts["users"])

	raw, err := os.ReadFile(filepath.Join(dir, res.FileName))
	require.NoError(t, err)
	var file dto.BackupFile
	require.NoError(t, json.Unmarshal(raw, &file))
	assert.Equal(t, "1.0", file.Version)
	assert.NotContains(t, string(raw), "password_hash")

	var logs int64
	require.NoError(t, db.Table("activity_logs").Where("action = ?", "maintenance_backup").Count(&logs).Error)
	assert.EqualValues(t, 1, logs)
}

func TestClearNotificationsKeepsUnreadAndRecent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	admin := testutil.CreateUser(t, db, constants.RoleAdmin)
	u := testutil.CreateUser(t, db, constants.RoleStudent)
	now := time.Now().UTC()
	old := now.Add(-60 * 24 * time.Hour)

	rows := []notifModel.NotificationModel{
		{UserID: u.ID, Type: "x", Title: "lama dibaca", Category: "general", IsRead: true, CreatedAt: old},
		{UserID: u.ID, Type: "x", Title: "lama belum dibaca", Category: "general", CreatedAt: old},
		{UserID: u.ID, Type: "x", Title: "baru dibaca", Category: "general", IsRead: true, CreatedAt: now},
	}
	require.NoError(t, db.Create(&rows).Error)

	out, err := maintenanceService.Run(t.Context(), db, admin.ID, dto.ActionClearNotifications, "", "", now)
	require.NoError(t, err)
	assert.Equal(t, dto.PurgeResult{Deleted: 1}, out)

	var left int64
	require.NoError(t, db.Model(&notifModel.NotificationModel{}).Count(&left).Error)
	assert.EqualValues(t, 2, left)
}

func TestRunUnknownAction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	admin := testutil.CreateUser(t, db, constants.RoleAdmin)

	out, err := maintenanceService.Run(t.Context(), db, admin.ID, dto.ActionClearCache, "", "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, fiber.Map{"cache": "memory"}, out)

	_, err = maintenanceService.Run(t.Context(), db, admin.ID, "drop-everything", "", "", time.Now())
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}
