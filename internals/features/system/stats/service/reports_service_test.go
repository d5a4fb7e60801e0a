package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/constants"
	bookingModel "itqan_backend/internals/features/bookings/bookings/model"
	recModel "itqan_backend/internals/features/recitations/recitations/model"
	logService "itqan_backend/internals/features/system/activity_logs/service"
	"itqan_backend/internals/helpers/dbtime"
	"itqan_backend/internals/testutil"
)

func TestMonthlyBuckets(t *testing.T) {
	loc := dbtime.AppLocation()
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, loc)
	rows := []createdStatus{
		{CreatedAt: time.Date(2025, 1, 5, 10, 0, 0, 0, loc), Status: constants.RecitationMastered},
		{CreatedAt: time.Date(2025, 1, 20, 10, 0, 0, 0, loc), Status: constants.RecitationPending},
		{CreatedAt: time.Date(2025, 3, 1, 0, 30, 0, 0, loc), Status: constants.RecitationMastered},
		{CreatedAt: time.Date(2024, 12, 31, 23, 0, 0, 0, loc), Status: constants.RecitationMastered},
	}
	out := monthlyBuckets(rows, first, 3)
	require.Len(t, out, 3)
	assert.Equal(t, "2025-01", out[0].Month)
	assert.Equal(t, "2025-03", out[2].Month)
	assert.EqualValues(t, 2, out[0].Total)
	assert.EqualValues(t, 1, out[0].Mastered)
	assert.EqualValues(t, 0, out[1].Total)
	assert.EqualValues(t, 1, out[2].Mastered)
}

func TestMasteryTrendBuckets(t *testing.T) {
	loc := dbtime.AppLocation()
	now := time.Date(2025, 3, 12, 15, 0, 0, 0, loc) // Rabu
	rows := []createdStatus{
		{CreatedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, loc), Status: constants.RecitationMastered},
		{CreatedAt: time.Date(2025, 3, 11, 9, 0, 0, 0, loc), Status: constants.RecitationNeedsSession},
		{CreatedAt: time.Date(2025, 3, 3, 9, 0, 0, 0, loc), Status: constants.RecitationMastered},
		{CreatedAt: time.Date(2025, 1, 1, 9, 0, 0, 0, loc), Status: constants.RecitationMastered},
	}
	out := masteryTrendBuckets(rows, now, 4)
	require.Len(t, out, 4)
	assert.Equal(t, "2025-03-10", out[3].WeekStart)
	assert.Equal(t, "03/10", out[3].Week)
	assert.Equal(t, 50.0, out[3].MasteryRate)
	assert.EqualValues(t, 2, out[3].Total)
	assert.Equal(t, 100.0, out[2].MasteryRate)
	assert.Equal(t, 0.0, out[0].MasteryRate)
	assert.EqualValues(t, 0, out[0].Total)
}

func TestReports(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()

	reader := testutil.CreateUser(t, db, constants.RoleReader)
	s1 := testutil.CreateUser(t, db, constants.RoleStudent, testutil.WithGender("male"))
	s2 := testutil.CreateUser(t, db, constants.RoleStudent, testutil.WithGender("female"))

	now := time.Now().UTC()
	old := now.AddDate(0, -2, 0)
	for _, rec := range []recModel.RecitationModel{
		{StudentID: s1.ID, Status: constants.RecitationMastered, CreatedAt: now},
		{StudentID: s1.ID, Status: constants.RecitationPending, CreatedAt: now},
		{StudentID: s2.ID, Status: constants.RecitationNeedsSession, CreatedAt: old},
	} {
		rec.AudioURL, rec.SurahName, rec.SurahNumber, rec.AyahFrom, rec.AyahTo, rec.Qiraah =
			"/uploads/audios/a.mp3", "الفاتحة", 1, 1, 7, "حفص عن عاصم"
		require.NoError(t, db.Create(&rec).Error)
	}
	for _, b := range []struct {
		status   string
		duration int
	}{
		{constants.BookingCompleted, 30},
		{constants.BookingCompleted, 45},
		{constants.BookingCancelled, 30},
	} {
		require.NoError(t, db.Create(&bookingModel.BookingModel{
			StudentID: s1.ID, ReaderID: reader.ID,
			SlotStart: now, SlotEnd: now.Add(time.Duration(b.duration) * time.Minute),
			DurationMinutes: b.duration, Status: b.status, Platform: bookingModel.DefaultPlatform,
		}).Error)
	}
	logService.Log(ctx, db, logService.Entry{Action: "email_welcome"})
	logService.Log(ctx, db, logService.Entry{Action: "login"})

	out, err := Reports(ctx, db, ReportFilter{}, now)
	require.NoError(t, err)

	assert.EqualValues(t, 3, out.Recitations.Total)
	assert.EqualValues(t, 1, out.Recitations.Mastered)
	assert.Equal(t, 33.3, out.Recitations.MasteryRate)
	assert.Len(t, out.Recitations.ByMonth, reportMonths)
	assert.EqualValues(t, 2, out.Recitations.ByMonth[reportMonths-1].Total)
	assert.Len(t, out.MasteryTrend, reportWeeks)

	assert.EqualValues(t, 3, out.Sessions.Total)
	assert.EqualValues(t, 2, out.Sessions.Completed)
	assert.EqualValues(t, 38, out.Sessions.AvgDuration)

	assert.EqualValues(t, 2, out.Users.TotalStudents)
	assert.EqualValues(t, 1, out.Users.TotalReaders)
	assert.Len(t, out.Users.Gender, 2)

	require.NotEmpty(t, out.TopSessionReaders)
	assert.Equal(t, reader.ID, out.TopSessionReaders[0].ID)
	assert.EqualValues(t, 2, out.TopSessionReaders[0].CompletedSessions)
	require.NotEmpty(t, out.TopStudents)
	assert.Equal(t, s1.ID, out.TopStudents[0].ID)
	assert.EqualValues(t, 2, out.TopStudents[0].Recitations)
	assert.EqualValues(t, 3, out.TopStudents[0].Bookings)
	assert.EqualValues(t, 1, out.EmailsSent)

	// filter tanggal: hanya bacaan bulan ini
	from := now.In(dbtime.AppLocation()).AddDate(0, 0, -1).Format(dbtime.DateLayout)
	to := now.In(dbtime.AppLocation()).Format(dbtime.DateLayout)
	out, err = Reports(ctx, db, ReportFilter{DateFrom: from, DateTo: to}, now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.Recitations.Total)
	assert.Equal(t, 50.0, out.Recitations.MasteryRate)

	// tanggal tidak valid -> filter diabaikan
	out, err = Reports(ctx, db, ReportFilter{DateFrom: "kemarin", DateTo: to}, now)
	require.NoError(t, err)
	assert.EqualValues(t, 3, out.Recitations.Total)
}

func TestPublicStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s1 := testutil.CreateUser(t, db, constants.RoleStudent)
	testutil.CreateUser(t, db, constants.RoleStudent)
	testutil.CreateUser(t, db, constants.RoleReader)

	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&recModel.RecitationModel{
			StudentID: s1.ID, AudioURL: "/uploads/audios/a.mp3", SurahName: "الفاتحة",
			SurahNumber: 1, AyahFrom: 1, AyahTo: 7, Qiraah: "حفص عن عاصم",
			Status: constants.RecitationMastered,
		}).Error)
	}

	got := Public(t.Context(), db)
	assert.EqualValues(t, 1, got.MasteredStudents)
	assert.EqualValues(t, 2, got.TotalStudents)
}
