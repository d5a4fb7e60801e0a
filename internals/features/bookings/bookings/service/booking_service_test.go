package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/bookings/bookings/dto"
	"itqan_backend/internals/features/bookings/bookings/service"
	notifModel "itqan_backend/internals/features/home/notifications/model"
	recModel "itqan_backend/internals/features/recitations/recitations/model"
	"itqan_backend/internals/testutil"
)

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return 0
}

var slot = dto.CreateBookingRequest{SlotStart: "2030-05-06T07:00:00Z", SlotEnd: "2030-05-06T07:30:00Z"}

func TestCreateAssignsFreeReader(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()

	r1 := testutil.CreateUser(t, db, constants.RoleReader, testutil.WithGender("male"))
	r2 := testutil.CreateUser(t, db, constants.RoleReader, testutil.WithGender("male"))
	testutil.CreateUser(t, db, constants.RoleReader, testutil.WithGender("female"))
	testutil.CreateUser(t, db, constants.RoleReader, testutil.WithGender("male"), testutil.WithApproval(constants.ApprovalPending))

	s1 := testutil.CreateUser(t, db, constants.RoleStudent, testutil.WithGender("male"))
	s2 := testutil.CreateUser(t, db, constants.RoleStudent, testutil.WithGender("male"))
	s3 := testutil.CreateUser(t, db, constants.RoleStudent, testutil.WithGender("male"))

	b1, err := service.Create(ctx, db, s1.ID, slot)
	require.NoError(t, err)
	assert.Equal(t, constants.BookingConfirmed, b1.Status)
	assert.Equal(t, 30, b1.DurationMinutes)
	assert.Contains(t, []string{r1.ID.String(), r2.ID.String()}, b1.ReaderID.String())

	b2, err := service.Create(ctx, db, s2.ID, slot)
	require.NoError(t, err)
	assert.NotEqual(t, b1.ReaderID, b2.ReaderID)
	assert.Contains(t, []string{r1.ID.String(), r2.ID.String()}, b2.ReaderID.String())

	// dua reader laki-laki sudah terisi di jam ini
	_, err = service.Create(ctx, db, s3.ID, slot)
	assert.Equal(t, fiber.StatusConflict, statusOf(err))

	// jam lain masih bisa
	_, err = service.Create(ctx, db, s3.ID, dto.CreateBookingRequest{SlotStart: "2030-05-06T08:00:00Z"})
	assert.NoError(t, err)

	// notifikasi ke student dan reader
	var n int64
	require.NoError(t, db.Model(&notifModel.NotificationModel{}).Where("user_id = ?", s1.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
	require.NoError(t, db.Model(&notifModel.NotificationModel{}).Where("user_id = ?", b1.ReaderID).Count(&n).Error)
	assert.GreaterOrEqual(t, n, int64(1))
}

func TestCreateLinksPendingRecitation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	testutil.CreateUser(t, db, constants.RoleReader)
	student := testutil.CreateUser(t, db, constants.RoleStudent)

	rec := recModel.RecitationModel{
		StudentID:   student.ID,
		AudioURL:    "/uploads/audios/a.mp3",
		SurahName:   "الفاتحة",
		SurahNumber: 1,
		AyahFrom:    1,
		AyahTo:      7,
		Qiraah:      "حفص عن عاصم",
		Status:      constants.RecitationNeedsSession,
	}
	require.NoError(t, db.Create(&rec).Error)
	recID := rec.ID.String()

	b, err := service.Create(ctx, db, student.ID, slot)
	require.NoError(t, err)
	require.NotNil(t, b.RecitationID)
	assert.Equal(t, recID, b.RecitationID.String())

	var status string
	require.NoError(t, db.Table("recitations").Select("status").Where("id = ?", recID).Scan(&status).Error)
	assert.Equal(t, constants.RecitationSessionBooked, status)
}

func TestUpdateStatusPermissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	reader := testutil.CreateUser(t, db, constants.RoleReader)
	student := testutil.CreateUser(t, db, constants.RoleStudent)
	stranger := testutil.CreateUser(t, db, constants.RoleStudent)

	b, err := service.Create(ctx, db, student.ID, slot)
	require.NoError(t, err)

	sv := service.Viewer{ID: student.ID, Role: constants.RoleStudent}
	rv := service.Viewer{ID: reader.ID, Role: constants.RoleReader}

	_, err = service.UpdateStatus(ctx, db, sv, b.ID, dto.UpdateBookingRequest{Status: constants.BookingCompleted}, "")
	assert.Equal(t, fiber.StatusForbidden, statusOf(err))

	_, err = service.UpdateStatus(ctx, db, service.Viewer{ID: stranger.ID, Role: constants.RoleStudent}, b.ID, dto.UpdateBookingRequest{Status: constants.BookingCancelled}, "")
	assert.Equal(t, fiber.StatusForbidden, statusOf(err))

	_, err = service.UpdateStatus(ctx, db, rv, b.ID, dto.UpdateBookingRequest{Status: "bogus"}, "")
	assert.Equal(t, fiber.StatusBadRequest, statusOf(err))

	got, err := service.UpdateStatus(ctx, db, sv, b.ID, dto.UpdateBookingRequest{Status: constants.BookingCancelled, CancelReason: "sakit"}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, constants.BookingCancelled, got.Status)
	require.NotNil(t, got.CancelledBy)
	assert.Equal(t, student.ID, *got.CancelledBy)
	require.NotNil(t, got.CancelReason)
	assert.Equal(t, "sakit", *got.CancelReason)

	// slot bebas lagi setelah dibatalkan
	other := testutil.CreateUser(t, db, constants.RoleStudent)
	b2, err := service.Create(ctx, db, other.ID, slot)
	require.NoError(t, err)
	assert.Equal(t, reader.ID, b2.ReaderID)
}

func TestRescheduleFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()
	reader := testutil.CreateUser(t, db, constants.RoleReader)
	student := testutil.CreateUser(t, db, constants.RoleStudent)

	b, err := service.Create(ctx, db, student.ID, slot)
	require.NoError(t, err)
	sv := service.Viewer{ID: student.ID, Role: constants.RoleStudent}
	rv := service.Viewer{ID: reader.ID, Role: constants.RoleReader}

	first, err := service.RequestReschedule(ctx, db, sv, b.ID, dto.RescheduleRequest{ProposedStart: "2030-05-07T07:00:00Z"})
	require.NoError(t, err)
	second, err := service.RequestReschedule(ctx, db, sv, b.ID, dto.RescheduleRequest{ProposedStart: "2030-05-08T07:00:00Z"})
	require.NoError(t, err)

	// usulan lama otomatis ditolak
	_, err = service.DecideReschedule(ctx, db, rv, b.ID, first.ID, dto.RescheduleDecision{Action: service.ActionAccept})
	assert.Equal(t, fiber.StatusNotFound, statusOf(err))

	_, err = service.DecideReschedule(ctx, db, sv, b.ID, second.ID, dto.RescheduleDecision{Action: service.ActionAccept})
	assert.Equal(t, fiber.StatusForbidden, statusOf(err))

	_, err = service.DecideReschedule(ctx, db, rv, b.ID, second.ID, dto.RescheduleDecision{Action: "maybe"})
	assert.Equal(t, fiber.StatusBadRequest, statusOf(err))

	rr, err := service.DecideReschedule(ctx, db, rv, b.ID, second.ID, dto.RescheduleDecision{Action: service.ActionAccept})
	require.NoError(t, err)
	assert.Equal(t, constants.RescheduleAccepted, rr.Status)

	item, err := service.Get(ctx, db, sv, b.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 5, 8, 7, 0, 0, 0, time.UTC), item.SlotStart.UTC())
	assert.Equal(t, 30, item.DurationMinutes)

	hist, err := service.ListReschedules(ctx, db, rv, b.ID)
	require.NoError(t, err)
	assert.Len(t, hist, 2)
}
