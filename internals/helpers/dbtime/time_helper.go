// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	DefaultAppTZ  = "Asia/Riyadh"
	clockLayout   = "15:04"
	localDTLayout = "2006-01-02T15:04:05"
)

var (
	locOnce sync.Once
	appLoc  *time.Location
)

// AppLocation: APP_TIMEZONE -> Asia/Riyadh -> UTC
func AppLocation() *time.Location {
	locOnce.Do(func() {
		name := strings.TrimSpace(os.Getenv("APP_TIMEZONE"))
		if name == "" {
			name = DefaultAppTZ
		}
		if loc, err := time.LoadLocation(name); err == nil {
			appLoc = loc
			return
		}
		appLoc = time.UTC
	})
	return appLoc
}

// ParseDateTime terima RFC3339 atau "YYYY-MM-DDTHH:MM[:SS]" (dianggap waktu lokal aplikasi).
// Hasil selalu UTC.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	s = strings.Replace(s, " ", "T", 1)
	if len(s) == len("2006-01-02T15:04") {
		s += ":00"
	}
	t, err := time.ParseInLocation(localDTLayout, s, AppLocation())
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// CombineDateClock: "2025-01-31" + "14:30[:00]" -> "2025-01-31T14:30:00"
func CombineDateClock(date, clock string) string {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) >= 2 {
		clock = parts[0] + ":" + parts[1]
	}
	return strings.TrimSpace(date) + "T" + clock + ":00"
}

// ParseDate "YYYY-MM-DD" di timezone aplikasi
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), AppLocation())
}

// DayBounds: [00:00, 24:00) hari tersebut di timezone aplikasi, dalam UTC
func DayBounds(t time.Time) (time.Time, time.Time) {
	lt := t.In(AppLocation())
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, AppLocation())
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// LocalDate: tanggal (YYYY-MM-DD) dari t di timezone aplikasi
func LocalDate(t time.Time) string {
	return t.In(AppLocation()).Format(DateLayout)
}

// LocalClock: "HH:MM" dari t di timezone aplikasi
func LocalClock(t time.Time) string {
	return t.In(AppLocation()).Format(clockLayout)
}

// ClockMinutes: "HH:MM[:SS]" -> menit sejak tengah malam
func ClockMinutes(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// NormalizeClock: "9:5" / "09:05:00" -> "09:05"
func NormalizeClock(s string) (string, error) {
	mins, err := ClockMinutes(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60), nil
}

var arabicWeekdays = [...]string{"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"}

// FormatArabicDate: "الاثنين 2025-01-31"
func FormatArabicDate(t time.Time) string {
	lt := t.In(AppLocation())
	return arabicWeekdays[lt.Weekday()] + " " + lt.Format(DateLayout)
}
