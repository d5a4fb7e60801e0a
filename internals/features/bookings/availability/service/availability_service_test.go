package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/bookings/availability/dto"
	"itqan_backend/internals/features/bookings/availability/service"
	bookingModel "itqan_backend/internals/features/bookings/bookings/model"
	"itqan_backend/internals/helpers/dbtime"
	"itqan_backend/internals/testutil"
)

func day(d int) *int { return &d }

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return 0
}

func TestCreateSlotConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	reader := testutil.CreateUser(t, db, constants.RoleReader)
	ctx := t.Context()

	s, err := service.CreateSlot(ctx, db, reader.ID, dto.SlotRequest{DayOfWeek: day(1), StartTime: "9:00", EndTime: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, "09:00", s.StartTime)
	assert.Equal(t, 30, s.SlotDurationMinutes)
	assert.True(t, s.IsRecurring)

	_, err = service.CreateSlot(ctx, db, reader.ID, dto.SlotRequest{DayOfWeek: day(1), StartTime: "09:30", EndTime: "10:30"})
	assert.Equal(t, fiber.StatusConflict, statusOf(err))

	// tanggal spesifik hari Senin bentrok dengan slot recurring Senin
	_, err = service.CreateSlot(ctx, db, reader.ID, dto.SlotRequest{SpecificDate: "2025-03-10", StartTime: "09:15", EndTime: "09:45"})
	assert.Equal(t, fiber.StatusConflict, statusOf(err))

	_, err = service.CreateSlot(ctx, db, reader.ID, dto.SlotRequest{DayOfWeek: day(1), StartTime: "10:00", EndTime: "11:00"})
	assert.NoError(t, err)

	_, err = service.CreateSlot(ctx, db, reader.ID, dto.SlotRequest{DayOfWeek: day(7), StartTime: "10:00", EndTime: "11:00"})
	assert.Equal(t, fiber.StatusBadRequest, statusOf(err))

	_, err = service.CreateSlot(ctx, db, reader.ID, dto.SlotRequest{DayOfWeek: day(2), StartTime: "11:00", EndTime: "10:00"})
	assert.Equal(t, fiber.StatusBadRequest, statusOf(err))

	other := testutil.CreateUser(t, db, constants.RoleReader)
	_, err = service.CreateSlot(ctx, db, other.ID, dto.SlotRequest{DayOfWeek: day(1), StartTime: "09:00", EndTime: "10:00"})
	assert.NoError(t, err)
}

func TestBulkCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	reader := testutil.CreateUser(t, db, constants.RoleReader)
	ctx := t.Context()

	req := dto.BulkSlotRequest{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
		Times:     []dto.TimeRange{{StartTime: "09:00", EndTime: "10:00"}, {StartTime: "09:30", EndTime: "10:30"}},
	}
	created, skipped, err := service.BulkCreate(ctx, db, reader.ID, req)
	require.NoError(t, err)
	assert.Len(t, created, 3)
	assert.Equal(t, 3, skipped)

	_, _, err = service.BulkCreate(ctx, db, reader.ID, req)
	assert.Equal(t, fiber.StatusConflict, statusOf(err))

	_, _, err = service.BulkCreate(ctx, db, reader.ID, dto.BulkSlotRequest{})
	assert.Equal(t, fiber.StatusBadRequest, statusOf(err))

	// filter hari: hanya Selasa (2)
	created, _, err = service.BulkCreate(ctx, db, reader.ID, dto.BulkSlotRequest{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-16",
		Days:      []int{2},
		Times:     []dto.TimeRange{{StartTime: "14:00", EndTime: "15:00"}},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.NotNil(t, created[0].SpecificDate)
	assert.Equal(t, "2025-03-11", *created[0].SpecificDate)
}

func TestDeleteSlotOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	reader := testutil.CreateUser(t, db, constants.RoleReader)
	other := testutil.CreateUser(t, db, constants.RoleReader)
	ctx := t.Context()

	s, err := service.CreateSlot(ctx, db, reader.ID, dto.SlotRequest{DayOfWeek: day(3), StartTime: "08:00", EndTime: "09:00"})
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, statusOf(service.DeleteSlot(ctx, db, other.ID, s.ID)))
	assert.NoError(t, service.DeleteSlot(ctx, db, reader.ID, s.ID))
	assert.Equal(t, fiber.StatusNotFound, statusOf(service.DeleteSlot(ctx, db, reader.ID, s.ID)))
}

func TestAvailableSlots(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()

	male := testutil.CreateUser(t, db, constants.RoleReader, testutil.WithGender("male"))
	female := testutil.CreateUser(t, db, constants.RoleReader, testutil.WithGender("female"))
	pending := testutil.CreateUser(t, db, constants.RoleReader, testutil.WithApproval(constants.ApprovalPending))
	student := testutil.CreateUser(t, db, constants.RoleStudent)

	mk := func(readerID, start, end string) {
		id := male.ID
		switch readerID {
		case "female":
			id = female.ID
		case "pending":
			id = pending.ID
		}
		_, err := service.CreateSlot(ctx, db, id, dto.SlotRequest{DayOfWeek: day(1), StartTime: start, EndTime: end})
		require.NoError(t, err)
	}
	mk("male", "09:00", "09:30")
	mk("male", "10:00", "10:30")
	mk("female", "09:00", "09:30")
	mk("pending", "09:00", "09:30")

	slots, err := service.AvailableSlots(ctx, db, "", "2025-03-10")
	require.NoError(t, err)
	assert.Len(t, slots, 3)

	slots, err = service.AvailableSlots(ctx, db, "male", "2025-03-10")
	require.NoError(t, err)
	assert.Len(t, slots, 2)

	// slot 09:00 milik reader laki-laki sudah dibooking
	start, err := dbtime.ParseDateTime("2025-03-10T09:00")
	require.NoError(t, err)
	require.NoError(t, db.Create(&bookingModel.BookingModel{
		StudentID: student.ID, ReaderID: male.ID,
		SlotStart: start, SlotEnd: start.Add(30 * time.Minute),
		DurationMinutes: 30, Status: constants.BookingConfirmed, Platform: bookingModel.DefaultPlatform,
	}).Error)

	slots, err = service.AvailableSlots(ctx, db, "male", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "10:00", slots[0].StartTime)
	assert.Equal(t, "2025-03-10", slots[0].Date)

	// hari lain tidak ada slot
	slots, err = service.AvailableSlots(ctx, db, "", "2025-03-11")
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = service.AvailableSlots(ctx, db, "", "10-03-2025")
	assert.Equal(t, fiber.StatusBadRequest, statusOf(err))
}

func TestReaderAvailability(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()

	reader := testutil.CreateUser(t, db, constants.RoleReader)
	student := testutil.CreateUser(t, db, constants.RoleStudent)

	_, err := service.CreateSlot(ctx, db, reader.ID, dto.SlotRequest{DayOfWeek: day(3), StartTime: "10:00", EndTime: "10:30"})
	require.NoError(t, err)
	_, err = service.CreateSlot(ctx, db, reader.ID, dto.SlotRequest{DayOfWeek: day(1), StartTime: "09:00", EndTime: "09:30"})
	require.NoError(t, err)
	off, err := service.CreateSlot(ctx, db, reader.ID, dto.SlotRequest{DayOfWeek: day(2), StartTime: "09:00", EndTime: "09:30"})
	require.NoError(t, err)
	require.NoError(t, db.Model(off).Update("is_available", false).Error)

	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	book := func(start time.Time, status string) {
		require.NoError(t, db.Create(&bookingModel.BookingModel{
			StudentID: student.ID, ReaderID: reader.ID,
			SlotStart: start, SlotEnd: start.Add(30 * time.Minute),
			DurationMinutes: 30, Status: status, Platform: bookingModel.DefaultPlatform,
		}).Error)
	}
	book(now.Add(2*time.Hour), constants.BookingConfirmed)
	book(now.Add(24*time.Hour), constants.BookingPending)
	book(now.Add(26*time.Hour), constants.BookingCancelled)
	book(now.Add(-time.Hour), constants.BookingConfirmed)
	book(now.Add(8*24*time.Hour), constants.BookingConfirmed)

	out, err := service.ReaderAvailability(ctx, db, reader.ID, now)
	require.NoError(t, err)
	require.Len(t, out.AvailabilitySlots, 2)
	assert.Equal(t, 1, out.AvailabilitySlots[0].DayOfWeek)
	assert.Equal(t, 3, out.AvailabilitySlots[1].DayOfWeek)
	require.Len(t, out.BookedSlots, 2)
	assert.True(t, out.BookedSlots[0].SlotStart.Equal(now.Add(2*time.Hour)))
	assert.True(t, out.BookedSlots[1].SlotEnd.Equal(now.Add(24*time.Hour+30*time.Minute)))

	_, err = service.ReaderAvailability(ctx, db, student.ID, now)
	assert.Equal(t, fiber.StatusNotFound, statusOf(err))
}
