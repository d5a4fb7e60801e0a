package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/system/stats/dto"
	"itqan_backend/internals/helpers/dbtime"
)

const (
	newRegistrationWindow = 7 * 24 * time.Hour
	dailyWindowDays       = 7
	readersActivityLimit  = 5
	latestRecitationLimit = 5
)

// counter mengumpulkan error pertama supaya rangkaian Count tetap ringkas
type counter struct {
	ctx context.Context
	db  *gorm.DB
	err error
}

func (c *counter) count(table string, dst *int64, where string, args ...any) {
	if c.err != nil {
		return
	}
	q := c.db.WithContext(c.ctx).Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	c.err = q.Count(dst).Error
}

// DailyBuckets: n hari terakhir (termasuk hari ini) di timezone aplikasi, nilai 0 kalau kosong
func DailyBuckets(times []time.Time, now time.Time, n int) []dto.DailyCount {
	counts := make(map[string]int64, n)
	for _, t := range times {
		counts[dbtime.LocalDate(t)]++
	}
	out := make([]dto.DailyCount, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := dbtime.LocalDate(now.AddDate(0, 0, -i))
		out = append(out, dto.DailyCount{Date: d, Count: counts[d]})
	}
	return out
}

func Compute(ctx context.Context, db *gorm.DB, now time.Time) (*dto.AdminStats, error) {
	s := &dto.AdminStats{StatusDistribution: map[string]int64{}}
	c := &counter{ctx: ctx, db: db}

	c.count("users", &s.TotalUsers, "")
	c.count("users", &s.TotalStudents, "role = ?", constants.RoleStudent)
	c.count("users", &s.ActiveStudents, "role = ? AND is_active = ?", constants.RoleStudent, true)
	c.count("users", &s.ApprovedReaders, "role = ? AND is_active = ? AND approval_status IN ?",
		constants.RoleReader, true, constants.ApprovedStatuses)
	c.count("users", &s.NewRegistrations, "created_at >= ?", now.Add(-newRegistrationWindow))
	c.count("users", &s.PendingReaderApps, "role = ? AND approval_status = ?", constants.RoleReader, constants.ApprovalPending)
	c.count("recitations", &s.TotalRecitations, "")
	c.count("recitations", &s.PendingRecitations, "status IN ?", []string{constants.RecitationPending, constants.RecitationInReview})
	dayStart, dayEnd := dbtime.DayBounds(now)
	c.count("recitations", &s.RecitationsToday, "created_at >= ? AND created_at < ?", dayStart, dayEnd)
	c.count("bookings", &s.CompletedSessions, "status = ?", constants.BookingCompleted)
	if c.err != nil {
		return nil, c.err
	}

	for _, st := range constants.RecitationStatuses {
		s.StatusDistribution[st] = 0
	}
	var dist []struct {
		Status string
		N      int64
	}
	if err := db.WithContext(ctx).Table("recitations").
		Select("status, COUNT(*) AS n").Group("status").Scan(&dist).Error; err != nil {
		return nil, err
	}
	for _, d := range dist {
		s.StatusDistribution[d.Status] = d.N
	}

	// hitung harian di Go supaya tidak bergantung fungsi tanggal spesifik DB
	since, _ := dbtime.DayBounds(now.AddDate(0, 0, -(dailyWindowDays - 1)))
	var created []time.Time
	if err := db.WithContext(ctx).Table("recitations").
		Where("created_at >= ?", since).Pluck("created_at", &created).Error; err != nil {
		return nil, err
	}
	s.RecitationsOverTime = DailyBuckets(created, now, dailyWindowDays)

	if err := db.WithContext(ctx).
		Table("reviews rv").
		Select("rv.reader_id, u.name, COUNT(rv.id) AS reviews").
		Joins("JOIN users u ON u.id = rv.reader_id").
		Group("rv.reader_id, u.name").
		Order("reviews DESC").
		Limit(readersActivityLimit).
		Scan(&s.ReadersActivity).Error; err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).
		Table("recitations r").
		Select("r.id, r.surah_name, r.ayah_from, r.ayah_to, r.status, r.created_at, s.name AS student_name, rd.name AS reader_name").
		Joins("JOIN users s ON s.id = r.student_id").
		Joins("LEFT JOIN users rd ON rd.id = r.assigned_reader_id").
		Order("r.created_at DESC").
		Limit(latestRecitationLimit).
		Scan(&s.LatestRecitations).Error; err != nil {
		return nil, err
	}
	if s.ReadersActivity == nil {
		s.ReadersActivity = []dto.ReaderActivity{}
	}
	if s.LatestRecitations == nil {
		s.LatestRecitations = []dto.LatestRecitation{}
	}
	return s, nil
}

// Public: angka landing page. Gagal baca DB -> nol, halaman publik tidak ikut error.
func Public(ctx context.Context, db *gorm.DB) dto.PublicStats {
	var out dto.PublicStats
	err := db.WithContext(ctx).Table("recitations").
		Where("status = ?", constants.RecitationMastered).
		Distinct("student_id").
		Count(&out.MasteredStudents).Error
	if err == nil {
		err = db.WithContext(ctx).Table("users").
			Where("role = ?", constants.RoleStudent).
			Count(&out.TotalStudents).Error
	}
	if err != nil {
		zap.L().Warn("gagal menghitung statistik publik", zap.Error(err))
		return dto.PublicStats{}
	}
	return out
}
