package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/home/announcements/dto"
	"itqan_backend/internals/features/home/announcements/model"
	"itqan_backend/internals/features/home/announcements/service"
	notifModel "itqan_backend/internals/features/home/notifications/model"
	"itqan_backend/internals/testutil"
)

func TestAudienceForRole(t *testing.T) {
	assert.ElementsMatch(t, []string{model.AudienceAll, model.AudienceStudents}, service.AudienceForRole(constants.RoleStudent))
	assert.ElementsMatch(t, []string{model.AudienceAll, model.AudienceReaders}, service.AudienceForRole(constants.RoleReader))
	assert.ElementsMatch(t, model.Audiences, service.AudienceForRole(constants.RoleAdmin))
}

func TestListForRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	admin := testutil.CreateUser(t, db, constants.RoleAdmin)

	mk := func(title, audience, priority string, published bool, expires string) {
		_, err := service.Create(ctx, db, admin.ID, dto.CreateAnnouncementRequest{
			Title: title, Content: "<p>isi</p>", TargetAudience: audience,
			Priority: priority, IsPublished: published, ExpiresAt: expires,
		}, "")
		require.NoError(t, err)
	}
	mk("untuk semua", model.AudienceAll, "", true, "")
	mk("untuk reader", model.AudienceReaders, "", true, "")
	mk("penting siswa", model.AudienceStudents, model.PriorityHigh, true, "")
	mk("draft", model.AudienceAll, "", false, "")
	mk("kedaluwarsa", model.AudienceAll, "", true, "2000-01-01T00:00:00Z")

	now := time.Now().UTC()
	items, err := service.ListForRole(ctx, db, constants.RoleStudent, now)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "penting siswa", items[0].Title)
	assert.Equal(t, "untuk semua", items[1].Title)

	items, err = service.ListForRole(ctx, db, constants.RoleReader, now)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	all, err := service.AdminList(ctx, db, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	drafts, err := service.AdminList(ctx, db, "", "false")
	require.NoError(t, err)
	assert.Len(t, drafts, 1)
}

func TestPublishNotifiesOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	admin := testutil.CreateUser(t, db, constants.RoleAdmin)
	student := testutil.CreateUser(t, db, constants.RoleStudent)
	reader := testutil.CreateUser(t, db, constants.RoleReader)

	a, err := service.Create(ctx, db, admin.ID, dto.CreateAnnouncementRequest{
		Title: "jadwal baru", Content: "isi", TargetAudience: model.AudienceStudents,
	}, "")
	require.NoError(t, err)

	count := func(userID any) int64 {
		var n int64
		require.NoError(t, db.Model(&notifModel.NotificationModel{}).Where("user_id = ?", userID).Count(&n).Error)
		return n
	}
	assert.EqualValues(t, 0, count(student.ID))

	pub := true
	_, err = service.Update(ctx, db, admin.ID, a.ID, dto.UpdateAnnouncementRequest{IsPublished: &pub}, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count(student.ID))
	assert.EqualValues(t, 0, count(reader.ID))

	unpub := false
	_, err = service.Update(ctx, db, admin.ID, a.ID, dto.UpdateAnnouncementRequest{IsPublished: &unpub}, "")
	require.NoError(t, err)
	_, err = service.Update(ctx, db, admin.ID, a.ID, dto.UpdateAnnouncementRequest{IsPublished: &pub}, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count(student.ID))

	_, err = service.Update(ctx, db, admin.ID, a.ID, dto.UpdateAnnouncementRequest{}, "")
	assert.Error(t, err)
}
