package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	bookingModel "itqan_backend/internals/features/bookings/bookings/model"
	recModel "itqan_backend/internals/features/recitations/recitations/model"
	"itqan_backend/internals/features/users/users/service"
	"itqan_backend/internals/testutil"
)

func rename(t *testing.T, db *gorm.DB, id uuid.UUID, name string) {
	t.Helper()
	require.NoError(t, db.Table("users").Where("id = ?", id).Update("name", name).Error)
}

func recite(t *testing.T, db *gorm.DB, studentID uuid.UUID, status string, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&recModel.RecitationModel{
		StudentID:   studentID,
		AudioURL:    "/uploads/audios/a.mp3",
		SurahName:   "الفاتحة",
		SurahNumber: 1,
		AyahFrom:    1,
		AyahTo:      7,
		Qiraah:      "حفص عن عاصم",
		Status:      status,
		CreatedAt:   at,
	}).Error)
}

func TestSearchStudents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()

	ahmad := testutil.CreateUser(t, db, constants.RoleStudent)
	rename(t, db, ahmad.ID, "Ahmad Fauzi")
	amina := testutil.CreateUser(t, db, constants.RoleStudent)
	rename(t, db, amina.ID, "Aminah")
	reader := testutil.CreateUser(t, db, constants.RoleReader)
	rename(t, db, reader.ID, "Ahmad Reader")

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	recite(t, db, ahmad.ID, constants.RecitationPending, base)
	recite(t, db, ahmad.ID, constants.RecitationMastered, base.Add(48*time.Hour))

	out, err := service.SearchStudents(ctx, db, "   ")
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	// reader tidak ikut, huruf besar/kecil diabaikan
	out, err = service.SearchStudents(ctx, db, "AHMAD")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, ahmad.ID, out[0].ID)
	require.NotNil(t, out[0].LastRecitationAt)
	assert.True(t, out[0].LastRecitationAt.Equal(base.Add(48*time.Hour)))
	require.NotNil(t, out[0].LastRecitationStatus)
	assert.Equal(t, constants.RecitationMastered, *out[0].LastRecitationStatus)

	// cari lewat email, tanpa bacaan
	out, err = service.SearchStudents(ctx, db, amina.Email)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].LastRecitationAt)
	assert.Nil(t, out[0].LastRecitationStatus)
}

func TestSearchStudentsLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	for i := 0; i < 12; i++ {
		testutil.CreateUser(t, db, constants.RoleStudent)
	}
	out, err := service.SearchStudents(t.Context(), db, "student-")
	require.NoError(t, err)
	assert.Len(t, out, 10)
}

func TestQuickSearch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()

	student := testutil.CreateUser(t, db, constants.RoleStudent)
	rename(t, db, student.ID, "Yusuf Student")
	reader := testutil.CreateUser(t, db, constants.RoleReader)
	rename(t, db, reader.ID, "Yusuf Reader")
	testutil.CreateUser(t, db, constants.RoleAdmin)

	now := time.Now()
	recite(t, db, student.ID, constants.RecitationPending, now)
	recite(t, db, student.ID, constants.RecitationNeedsSession, now)
	for _, st := range []string{constants.BookingCompleted, constants.BookingCompleted, constants.BookingCancelled} {
		require.NoError(t, db.Create(&bookingModel.BookingModel{
			StudentID: student.ID, ReaderID: reader.ID,
			SlotStart: now, SlotEnd: now.Add(30 * time.Minute),
			DurationMinutes: 30, Status: st, Platform: bookingModel.DefaultPlatform,
		}).Error)
	}

	out, err := service.QuickSearch(ctx, db, "")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = service.QuickSearch(ctx, db, "yusuf")
	require.NoError(t, err)
	require.Len(t, out, 2)

	byID := map[uuid.UUID]int{}
	for i, u := range out {
		byID[u.ID] = i
	}
	s := out[byID[student.ID]]
	assert.Equal(t, constants.RoleStudent, s.Role)
	assert.EqualValues(t, 2, s.TotalRecitations)
	assert.EqualValues(t, 2, s.TotalSessions)

	r := out[byID[reader.ID]]
	assert.EqualValues(t, 0, r.TotalRecitations)
	assert.EqualValues(t, 2, r.TotalSessions)
}
