package service

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/helpers/dbtime"
)

const (
	StrategyLeastBookedToday   = "least_booked_today"
	StrategyLeastTotalBookings = "least_total_bookings"
	StrategyRandom             = "random"
)

// Candidate reader yang bebas di slot yang diminta
type Candidate struct {
	ID         uuid.UUID
	TodayCount int64
	TotalCount int64
}

// PickReader pilih satu reader sesuai strategi. Seri diputus dengan id reader (urutan byte).
// shuffle hanya dipakai untuk strategi random; strategi tak dikenal diperlakukan sebagai least_booked_today.
func PickReader(cands []Candidate, strategy string, shuffle func(n int, swap func(i, j int))) (uuid.UUID, bool) {
	if len(cands) == 0 {
		return uuid.Nil, false
	}
	list := make([]Candidate, len(cands))
	copy(list, cands)
	sort.Slice(list, func(i, j int) bool {
		return bytes.Compare(list[i].ID[:], list[j].ID[:]) < 0
	})

	switch strategy {
	case StrategyRandom:
		if shuffle != nil {
			shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
		}
	case StrategyLeastTotalBookings:
		sort.SliceStable(list, func(i, j int) bool { return list[i].TotalCount < list[j].TotalCount })
	default:
		sort.SliceStable(list, func(i, j int) bool { return list[i].TodayCount < list[j].TodayCount })
	}
	return list[0].ID, true
}

type readerCount struct {
	ReaderID uuid.UUID
	N        int64
}

func countByReader(q *gorm.DB) (map[uuid.UUID]int64, error) {
	var rows []readerCount
	if err := q.Select("reader_id, COUNT(*) AS n").Group("reader_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		out[r.ReaderID] = r.N
	}
	return out, nil
}

// loadCandidates: reader aktif & approved (gender sama kalau student punya gender),
// tanpa booking pending/confirmed yang beririsan dengan [start, end).
func loadCandidates(ctx context.Context, db *gorm.DB, gender string, start, end time.Time) ([]Candidate, error) {
	q := db.WithContext(ctx).
		Table("users").
		Where("role = ? AND is_active = ? AND approval_status IN ?",
			constants.RoleReader, true, constants.ApprovedStatuses)
	if gender != "" {
		q = q.Where("gender = ?", gender)
	}
	var ids []uuid.UUID
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var busy []uuid.UUID
	if err := db.WithContext(ctx).
		Table("bookings").
		Where("reader_id IN ? AND status IN ? AND slot_start < ? AND slot_end > ?",
			ids, constants.BookingActiveStatuses, end, start).
		Distinct().
		Pluck("reader_id", &busy).Error; err != nil {
		return nil, err
	}
	busySet := make(map[uuid.UUID]bool, len(busy))
	for _, id := range busy {
		busySet[id] = true
	}

	dayStart, dayEnd := dbtime.DayBounds(start)
	today, err := countByReader(db.WithContext(ctx).Table("bookings").
		Where("reader_id IN ? AND status IN ? AND slot_start >= ? AND slot_start < ?",
			ids, constants.BookingActiveStatuses, dayStart, dayEnd))
	if err != nil {
		return nil, err
	}
	total, err := countByReader(db.WithContext(ctx).Table("bookings").
		Where("reader_id IN ? AND status IN ?",
			ids, []string{constants.BookingPending, constants.BookingConfirmed, constants.BookingCompleted}))
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(ids))
	for _, id := range ids {
		if busySet[id] {
			continue
		}
		out = append(out, Candidate{ID: id, TodayCount: today[id], TotalCount: total[id]})
	}
	return out, nil
}
