package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/bookings/availability/dto"
	"itqan_backend/internals/helpers/dbtime"
)

const upcomingWindow = 7 * 24 * time.Hour

// ReaderStats ringkasan dashboard reader
func ReaderStats(ctx context.Context, db *gorm.DB, readerID uuid.UUID, now time.Time) (*dto.ReaderStats, error) {
	var s dto.ReaderStats
	rec := func() *gorm.DB {
		return db.WithContext(ctx).Table("recitations").Where("assigned_reader_id = ?", readerID)
	}
	bk := func() *gorm.DB {
		return db.WithContext(ctx).Table("bookings").Where("reader_id = ?", readerID)
	}

	if err := rec().Count(&s.AssignedRecitations).Error; err != nil {
		return nil, err
	}
	if err := rec().Where("status IN ?", []string{constants.RecitationPending, constants.RecitationInReview}).
		Count(&s.PendingReviews).Error; err != nil {
		return nil, err
	}
	if err := rec().Where("status = ?", constants.RecitationMastered).Count(&s.MasteredCount).Error; err != nil {
		return nil, err
	}
	if err := rec().Where("status = ?", constants.RecitationNeedsSession).Count(&s.NeedsSessionCount).Error; err != nil {
		return nil, err
	}

	dayStart, dayEnd := dbtime.DayBounds(now)
	if err := bk().Where("slot_start >= ? AND slot_start < ? AND status IN ?", dayStart, dayEnd, constants.BookingActiveStatuses).
		Count(&s.TodaySessions).Error; err != nil {
		return nil, err
	}
	if err := bk().Where("slot_start >= ? AND slot_start < ? AND status IN ?", now, now.Add(upcomingWindow), constants.BookingActiveStatuses).
		Count(&s.UpcomingSessions).Error; err != nil {
		return nil, err
	}
	if err := bk().Where("status = ?", constants.BookingCompleted).Count(&s.CompletedSessions).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
