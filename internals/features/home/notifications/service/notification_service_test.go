package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/home/notifications/dto"
	notifService "itqan_backend/internals/features/home/notifications/service"
	"itqan_backend/internals/testutil"
)

func TestNotifyRoleAndRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()

	r1 := testutil.CreateUser(t, db, constants.RoleReader)
	r2 := testutil.CreateUser(t, db, constants.RoleReader)
	testutil.CreateUser(t, db, constants.RoleReader, testutil.Inactive())
	student := testutil.CreateUser(t, db, constants.RoleStudent)

	notifService.NotifyRole(ctx, db, constants.RoleReader, dto.NewNotification{
		Type: "new_recitation", Title: "تلاوة جديدة", Message: "بانتظار المراجعة",
	})

	for _, id := range []uuid.UUID{r1.ID, r2.ID} {
		n, err := notifService.CountUnread(ctx, db, id)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	}
	n, err := notifService.CountUnread(ctx, db, student.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := notifService.ListForUser(ctx, db, r1.ID)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	note := list.Notifications[0]
	assert.Equal(t, "general", note.Category)
	assert.EqualValues(t, 1, list.UnreadCount)

	// milik orang lain tidak bisa ditandai
	ok, err := notifService.MarkRead(ctx, db, r2.ID, note.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = notifService.MarkRead(ctx, db, r1.ID, note.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	n, err = notifService.CountUnread(ctx, db, r1.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	affected, err := notifService.MarkAllRead(ctx, db, r2.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
}

func TestCreateIgnoresNilUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	u := testutil.CreateUser(t, db, constants.RoleStudent)

	notifService.Create(ctx, db, dto.NewNotification{Type: "x", Title: "y"})
	notifService.Create(ctx, nil, dto.NewNotification{UserID: u.ID, Type: "x", Title: "y"})
	notifService.Create(ctx, db, dto.NewNotification{UserID: u.ID, Type: "x", Title: "y", Link: "/student/bookings"})

	list, err := notifService.ListForUser(ctx, db, u.ID)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	require.NotNil(t, list.Notifications[0].Link)
	assert.Equal(t, "/student/bookings", *list.Notifications[0].Link)
}
