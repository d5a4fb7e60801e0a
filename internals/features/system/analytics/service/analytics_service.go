package service

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mssola/useragent"
	"gorm.io/gorm"

	"itqan_backend/internals/features/system/analytics/dto"
	"itqan_backend/internals/features/system/analytics/model"
	helper "itqan_backend/internals/helpers"
	"itqan_backend/internals/helpers/dbtime"
)

const (
	IPSalt          = helper.IPHashSalt
	DefaultDays     = 30
	MaxDays         = 365
	topPagesLimit   = 10
	topCountryLimit = 10
	maxUALen        = 500
)

// ClampDays: 1..365, 0/negatif -> default 30
func ClampDays(n int) int {
	switch {
	case n <= 0:
		return DefaultDays
	case n > MaxDays:
		return MaxDays
	}
	return n
}

// ParsedUA hasil deteksi perangkat dari user agent
type ParsedUA struct {
	Device  string
	Browser string
	OS      string
}

func ParseUserAgent(raw string) ParsedUA {
	if strings.TrimSpace(raw) == "" {
		return ParsedUA{Device: model.DeviceUnknown}
	}
	ua := useragent.New(raw)
	name, _ := ua.Browser()
	out := ParsedUA{Browser: name, OS: ua.OSInfo().Name}

	lower := strings.ToLower(raw)
	switch {
	case ua.Bot():
		out.Device = model.DeviceBot
	case strings.Contains(lower, "ipad") || strings.Contains(lower, "tablet") ||
		(strings.Contains(lower, "android") && !strings.Contains(lower, "mobile")):
		out.Device = model.DeviceTablet
	case ua.Mobile():
		out.Device = model.DeviceMobile
	default:
		out.Device = model.DeviceDesktop
	}
	return out
}

// PageViewMeta data request yang dipakai saat mencatat page view
type PageViewMeta struct {
	UserAgent string
	IP        string
	Country   string
	UserID    *uuid.UUID
}

func RecordPageView(ctx context.Context, db *gorm.DB, req dto.PageViewRequest, meta PageViewMeta) (*model.PageViewModel, error) {
	path := strings.TrimSpace(req.PagePath)
	if path == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "page_path مطلوب")
	}
	parsed := ParseUserAgent(meta.UserAgent)
	pv := model.PageViewModel{
		PagePath:   path,
		Referrer:   helper.StrPtr(strings.TrimSpace(req.Referrer)),
		VisitorID:  helper.StrPtr(strings.TrimSpace(req.VisitorID)),
		UserID:     meta.UserID,
		DeviceType: parsed.Device,
		Browser:    helper.StrPtr(parsed.Browser),
		OS:         helper.StrPtr(parsed.OS),
		Country:    helper.StrPtr(strings.ToUpper(strings.TrimSpace(meta.Country))),
	}
	if ua := meta.UserAgent; ua != "" {
		if len(ua) > maxUALen {
			ua = ua[:maxUALen]
		}
		pv.UserAgent = &ua
	}
	if meta.IP != "" {
		h := helper.HashIP(meta.IP, IPSalt)
		pv.IPHash = &h
	}
	if err := db.WithContext(ctx).Create(&pv).Error; err != nil {
		return nil, err
	}
	return &pv, nil
}

type viewRow struct {
	PagePath   string
	DeviceType string
	Country    *string
	IPHash     *string
	CreatedAt  time.Time
}

// Summarize ringkasan n hari terakhir (bot tidak dihitung). Agregasi di Go supaya portable.
func Summarize(ctx context.Context, db *gorm.DB, days int, now time.Time) (*dto.AnalyticsSummary, error) {
	days = ClampDays(days)
	since, _ := dbtime.DayBounds(now.AddDate(0, 0, -(days - 1)))

	var rows []viewRow
	if err := db.WithContext(ctx).
		Model(&model.PageViewModel{}).
		Select("page_path, device_type, country, ip_hash, created_at").
		Where("created_at >= ? AND device_type <> ?", since, model.DeviceBot).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return aggregate(rows, days, now), nil
}

func aggregate(rows []viewRow, days int, now time.Time) *dto.AnalyticsSummary {
	out := &dto.AnalyticsSummary{Days: days, TotalViews: int64(len(rows))}

	visitors := map[string]bool{}
	pages := map[string]*dto.PageCount{}
	pageVisitors := map[string]map[string]bool{}
	devices := map[string]int64{}
	countries := map[string]int64{}
	dayViews := map[string]int64{}
	dayVisitors := map[string]map[string]bool{}

	for _, r := range rows {
		vk := ""
		if r.IPHash != nil {
			vk = *r.IPHash
			visitors[vk] = true
		}
		p := pages[r.PagePath]
		if p == nil {
			p = &dto.PageCount{PagePath: r.PagePath}
			pages[r.PagePath] = p
			pageVisitors[r.PagePath] = map[string]bool{}
		}
		p.Views++
		if vk != "" {
			pageVisitors[r.PagePath][vk] = true
		}
		devices[r.DeviceType]++
		country := "Unknown"
		if r.Country != nil && *r.Country != "" {
			country = *r.Country
		}
		countries[country]++

		d := dbtime.LocalDate(r.CreatedAt)
		dayViews[d]++
		if dayVisitors[d] == nil {
			dayVisitors[d] = map[string]bool{}
		}
		if vk != "" {
			dayVisitors[d][vk] = true
		}
	}
	out.UniqueVisitors = int64(len(visitors))

	for path, p := range pages {
		p.Visitors = int64(len(pageVisitors[path]))
		out.TopPages = append(out.TopPages, *p)
	}
	sortPages(out.TopPages)
	if len(out.TopPages) > topPagesLimit {
		out.TopPages = out.TopPages[:topPagesLimit]
	}

	for dt, n := range devices {
		out.Devices = append(out.Devices, dto.DeviceCount{DeviceType: dt, Count: n})
	}
	sortDevices(out.Devices)

	for c, n := range countries {
		out.TopCountries = append(out.TopCountries, dto.CountryCount{Country: c, Views: n})
	}
	sortCountries(out.TopCountries)
	if len(out.TopCountries) > topCountryLimit {
		out.TopCountries = out.TopCountries[:topCountryLimit]
	}

	for i := days - 1; i >= 0; i-- {
		d := dbtime.LocalDate(now.AddDate(0, 0, -i))
		out.DailyViews = append(out.DailyViews, dto.DailyViews{
			Date:     d,
			Views:    dayViews[d],
			Visitors: int64(len(dayVisitors[d])),
		})
	}
	if out.TopPages == nil {
		out.TopPages = []dto.PageCount{}
	}
	if out.Devices == nil {
		out.Devices = []dto.DeviceCount{}
	}
	if out.TopCountries == nil {
		out.TopCountries = []dto.CountryCount{}
	}
	return out
}
