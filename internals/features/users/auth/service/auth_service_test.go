package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"itqan_backend/internals/constants"
	userModel "itqan_backend/internals/features/users/users/model"
	"itqan_backend/internals/testutil"
)

func TestTouchLastLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	u := testutil.CreateUser(t, db, constants.RoleStudent)

	core, logs := observer.New(zapcore.WarnLevel)
	prev := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	touchLastLogin(t.Context(), db, u.ID)
	var got userModel.UserModel
	require.NoError(t, db.First(&got, "id = ?", u.ID).Error)
	assert.NotNil(t, got.LastLoginAt)
	assert.Zero(t, logs.Len())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	touchLastLogin(t.Context(), db, u.ID)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "update last_login_at gagal", entry.Message)
	assert.Equal(t, u.ID.String(), entry.ContextMap()["user_id"])
}
