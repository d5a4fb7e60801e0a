package service

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	emailService "itqan_backend/internals/features/system/email_templates/service"
	"itqan_backend/internals/features/system/stats/dto"
	"itqan_backend/internals/helpers/dbtime"
)

const (
	reportTopLimit  = 10
	reportMonths    = 12
	reportWeeks     = 12
	reportDailyDays = 30
	reportCityLimit = 10
	monthLayout     = "2006-01"
	weekLabelLayout = "01/02"
)

// ReportFilter: rentang tanggal hanya dipakai kalau dua-duanya valid (YYYY-MM-DD, inklusif).
type ReportFilter struct {
	DateFrom string
	DateTo   string
}

type dateRange struct {
	from, to time.Time // [from, to)
	lastDay  time.Time
	ok       bool
}

func (f ReportFilter) resolve() dateRange {
	from, err1 := dbtime.ParseDate(f.DateFrom)
	to, err2 := dbtime.ParseDate(f.DateTo)
	if err1 != nil || err2 != nil || to.Before(from) {
		return dateRange{}
	}
	start, _ := dbtime.DayBounds(from)
	_, end := dbtime.DayBounds(to)
	return dateRange{from: start, to: end, lastDay: to, ok: true}
}

func (r dateRange) apply(q *gorm.DB, col string) *gorm.DB {
	if !r.ok {
		return q
	}
	return q.Where(col+" >= ? AND "+col+" < ?", r.from, r.to)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func rate(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) * 100 / float64(total))
}

// Reports: ringkasan dashboard laporan admin.
func Reports(ctx context.Context, db *gorm.DB, f ReportFilter, now time.Time) (*dto.Reports, error) {
	rng := f.resolve()
	out := &dto.Reports{}

	steps := []func() error{
		func() error { return recitationSummary(ctx, db, rng, now, &out.Recitations) },
		func() error { return sessionSummary(ctx, db, rng, &out.Sessions) },
		func() error { return userSummary(ctx, db, &out.Users) },
		func() error { return topReviewers(ctx, db, &out.TopReviewers) },
		func() error { return topSessionReaders(ctx, db, &out.TopSessionReaders) },
		func() error { return topContributors(ctx, db, &out.TopContributors) },
		func() error { return topStudents(ctx, db, &out.TopStudents) },
		func() error {
			return db.WithContext(ctx).Table("certificate_data").
				Where("certificate_issued = ?", true).Count(&out.Certificates).Error
		},
		func() error {
			return db.WithContext(ctx).Table("activity_logs").
				Where("action LIKE ?", emailService.EmailActionPrefix+"%").Count(&out.EmailsSent).Error
		},
		func() error { return masteryTrend(ctx, db, now, &out.MasteryTrend) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type createdStatus struct {
	CreatedAt time.Time
	Status    string
}

func recitationSummary(ctx context.Context, db *gorm.DB, rng dateRange, now time.Time, dst *dto.RecitationReport) error {
	var rows []struct {
		Status string
		N      int64
	}
	q := rng.apply(db.WithContext(ctx).Table("recitations"), "created_at")
	if err := q.Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return err
	}
	for _, r := range rows {
		dst.Total += r.N
		switch r.Status {
		case constants.RecitationMastered:
			dst.Mastered = r.N
		case constants.RecitationNeedsSession:
			dst.NeedsSession = r.N
		case constants.RecitationPending:
			dst.Pending = r.N
		case constants.RecitationInReview:
			dst.InReview = r.N
		case constants.RecitationRejected:
			dst.Rejected = r.N
		case constants.RecitationSessionBooked:
			dst.SessionBooked = r.N
		}
	}
	dst.MasteryRate = rate(dst.Mastered, dst.Total)

	// per bulan, 12 bulan terakhir (tidak ikut filter tanggal)
	lt := now.In(dbtime.AppLocation())
	firstMonth := time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, dbtime.AppLocation()).AddDate(0, -(reportMonths - 1), 0)
	var monthly []createdStatus
	if err := db.WithContext(ctx).Table("recitations").
		Select("created_at, status").
		Where("created_at >= ?", firstMonth.UTC()).
		Scan(&monthly).Error; err != nil {
		return err
	}
	dst.ByMonth = monthlyBuckets(monthly, firstMonth, reportMonths)

	// harian: rentang filter (maks 30 hari terakhir dari rentang), default 30 hari terakhir
	end, days := now, reportDailyDays
	if rng.ok {
		end = rng.lastDay
		if n := int(rng.to.Sub(rng.from).Hours()/24 + 0.5); n < days {
			days = n
		}
	}
	since, _ := dbtime.DayBounds(end.AddDate(0, 0, -(days - 1)))
	_, until := dbtime.DayBounds(end)
	var created []time.Time
	if err := db.WithContext(ctx).Table("recitations").
		Where("created_at >= ? AND created_at < ?", since, until).
		Pluck("created_at", &created).Error; err != nil {
		return err
	}
	dst.Daily = DailyBuckets(created, end, days)
	return nil
}

// monthlyBuckets: n bulan mulai first (awal bulan, timezone aplikasi), nilai 0 kalau kosong.
func monthlyBuckets(rows []createdStatus, first time.Time, n int) []dto.MonthlyCount {
	out := make([]dto.MonthlyCount, n)
	idx := make(map[string]int, n)
	for i := 0; i < n; i++ {
		m := first.AddDate(0, i, 0).Format(monthLayout)
		out[i].Month = m
		idx[m] = i
	}
	for _, r := range rows {
		i, ok := idx[r.CreatedAt.In(dbtime.AppLocation()).Format(monthLayout)]
		if !ok {
			continue
		}
		out[i].Total++
		if r.Status == constants.RecitationMastered {
			out[i].Mastered++
		}
	}
	return out
}

// weekStart: Senin 00:00 minggu tersebut di timezone aplikasi
func weekStart(t time.Time) time.Time {
	lt := t.In(dbtime.AppLocation())
	offset := (int(lt.Weekday()) + 6) % 7
	d := lt.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, dbtime.AppLocation())
}

// masteryTrendBuckets: n minggu terakhir (termasuk minggu ini); minggu tanpa data tetap muncul dengan 0.
func masteryTrendBuckets(rows []createdStatus, now time.Time, n int) []dto.MasteryPoint {
	first := weekStart(now).AddDate(0, 0, -7*(n-1))
	totals := make([]int64, n)
	mastered := make([]int64, n)
	for _, r := range rows {
		i := int(weekStart(r.CreatedAt).Sub(first).Hours()/(24*7) + 0.5)
		if i < 0 || i >= n {
			continue
		}
		totals[i]++
		if r.Status == constants.RecitationMastered {
			mastered[i]++
		}
	}
	out := make([]dto.MasteryPoint, n)
	for i := range out {
		ws := first.AddDate(0, 0, 7*i)
		out[i] = dto.MasteryPoint{
			Week:        ws.Format(weekLabelLayout),
			WeekStart:   ws.Format(dbtime.DateLayout),
			MasteryRate: rate(mastered[i], totals[i]),
			Total:       totals[i],
		}
	}
	return out
}

func masteryTrend(ctx context.Context, db *gorm.DB, now time.Time, dst *[]dto.MasteryPoint) error {
	since := weekStart(now).AddDate(0, 0, -7*(reportWeeks-1))
	var rows []createdStatus
	if err := db.WithContext(ctx).Table("recitations").
		Select("created_at, status").
		Where("created_at >= ?", since.UTC()).
		Scan(&rows).Error; err != nil {
		return err
	}
	*dst = masteryTrendBuckets(rows, now, reportWeeks)
	return nil
}

func sessionSummary(ctx context.Context, db *gorm.DB, rng dateRange, dst *dto.SessionReport) error {
	var rows []struct {
		Status      string
		N           int64
		DurationSum int64
	}
	q := rng.apply(db.WithContext(ctx).Table("bookings"), "created_at")
	if err := q.Select("status, COUNT(*) AS n, COALESCE(SUM(duration_minutes), 0) AS duration_sum").
		Group("status").Scan(&rows).Error; err != nil {
		return err
	}
	for _, r := range rows {
		dst.Total += r.N
		switch r.Status {
		case constants.BookingCompleted:
			dst.Completed = r.N
			if r.N > 0 {
				dst.AvgDuration = int64(math.Round(float64(r.DurationSum) / float64(r.N)))
			}
		case constants.BookingCancelled:
			dst.Cancelled = r.N
		case constants.BookingNoShow:
			dst.NoShow = r.N
		case constants.BookingPending:
			dst.Pending = r.N
		}
	}
	return nil
}

func userSummary(ctx context.Context, db *gorm.DB, dst *dto.UserReport) error {
	c := &counter{ctx: ctx, db: db}
	c.count("users", &dst.TotalStudents, "role = ?", constants.RoleStudent)
	c.count("users", &dst.TotalReaders, "role = ? AND approval_status IN ?", constants.RoleReader, constants.ApprovedStatuses)
	if c.err != nil {
		return c.err
	}

	dst.Gender = []dto.GenderCount{}
	if err := db.WithContext(ctx).Table("users").
		Select("gender, COUNT(*) AS count").
		Where("role = ?", constants.RoleStudent).
		Group("gender").Order("COUNT(*) DESC").
		Scan(&dst.Gender).Error; err != nil {
		return err
	}

	dst.ByCity = []dto.CityCount{}
	return db.WithContext(ctx).Table("users").
		Select("city, COUNT(*) AS count").
		Where("role = ? AND city IS NOT NULL AND city <> ''", constants.RoleStudent).
		Group("city").Order("COUNT(*) DESC, city ASC").
		Limit(reportCityLimit).
		Scan(&dst.ByCity).Error
}

func topReviewers(ctx context.Context, db *gorm.DB, dst *[]dto.TopReviewer) error {
	var rows []struct {
		dto.TopReviewer
		RawAvg *float64 `gorm:"column:raw_avg"`
	}
	if err := db.WithContext(ctx).
		Table("users u").
		Select(`u.id, u.name, u.avatar_url,
			COUNT(rv.id) AS reviews_count,
			AVG(rv.overall_score) AS raw_avg,
			COALESCE(SUM(CASE WHEN rv.verdict = ? THEN 1 ELSE 0 END), 0) AS mastered_count`, constants.RecitationMastered).
		Joins("JOIN reviews rv ON rv.reader_id = u.id").
		Where("u.role = ?", constants.RoleReader).
		Group("u.id, u.name, u.avatar_url").
		Order("reviews_count DESC, u.name ASC").
		Limit(reportTopLimit).
		Scan(&rows).Error; err != nil {
		return err
	}
	out := make([]dto.TopReviewer, 0, len(rows))
	for _, r := range rows {
		if r.RawAvg != nil {
			r.AvgScore = round1(*r.RawAvg)
		}
		out = append(out, r.TopReviewer)
	}
	*dst = out
	return nil
}

func topSessionReaders(ctx context.Context, db *gorm.DB, dst *[]dto.TopSessionReader) error {
	*dst = []dto.TopSessionReader{}
	return db.WithContext(ctx).
		Table("users u").
		Select(`u.id, u.name, u.avatar_url,
			COUNT(b.id) AS sessions_count,
			COALESCE(SUM(CASE WHEN b.status = ? THEN 1 ELSE 0 END), 0) AS completed_sessions`, constants.BookingCompleted).
		Joins("JOIN bookings b ON b.reader_id = u.id").
		Where("u.role = ?", constants.RoleReader).
		Group("u.id, u.name, u.avatar_url").
		Order("sessions_count DESC, u.name ASC").
		Limit(reportTopLimit).
		Scan(dst).Error
}

func topContributors(ctx context.Context, db *gorm.DB, dst *[]dto.TopContributor) error {
	*dst = []dto.TopContributor{}
	return db.WithContext(ctx).
		Table("users u").
		Select(`u.id, u.name, u.avatar_url,
			COALESCE(r.rev_count, 0) + COALESCE(s.sess_count, 0) AS total_contribution,
			COALESCE(r.rev_count, 0) AS reviews,
			COALESCE(s.sess_count, 0) AS sessions`).
		Joins("LEFT JOIN (SELECT reader_id, COUNT(*) AS rev_count FROM reviews GROUP BY reader_id) r ON r.reader_id = u.id").
		Joins("LEFT JOIN (SELECT reader_id, COUNT(*) AS sess_count FROM bookings WHERE status = ? GROUP BY reader_id) s ON s.reader_id = u.id",
			constants.BookingCompleted).
		Where("u.role = ?", constants.RoleReader).
		Order("total_contribution DESC, u.name ASC").
		Limit(reportTopLimit).
		Scan(dst).Error
}

func topStudents(ctx context.Context, db *gorm.DB, dst *[]dto.TopStudent) error {
	*dst = []dto.TopStudent{}
	return db.WithContext(ctx).
		Table("users u").
		Select(`u.id, u.name, u.email, u.avatar_url,
			COUNT(DISTINCT rec.id) AS recitations,
			COUNT(DISTINCT b.id) AS bookings`).
		Joins("LEFT JOIN recitations rec ON rec.student_id = u.id").
		Joins("LEFT JOIN bookings b ON b.student_id = u.id").
		Where("u.role = ?", constants.RoleStudent).
		Group("u.id, u.name, u.email, u.avatar_url").
		Order("COUNT(DISTINCT rec.id) + COUNT(DISTINCT b.id) DESC, u.name ASC").
		Limit(reportTopLimit).
		Scan(dst).Error
}
