package dto

type PageViewRequest struct {
	PagePath  string `json:"page_path"`
	Referrer  string `json:"referrer"`
	VisitorID string `json:"visitor_id"`
}

type PageCount struct {
	PagePath string `json:"page_path"`
	Views    int64  `json:"views"`
	Visitors int64  `json:"visitors"`
}

type DeviceCount struct {
	DeviceType string `json:"device_type"`
	Count      int64  `json:"count"`
}

type CountryCount struct {
	Country string `json:"country"`
	Views   int64  `json:"views"`
}

type DailyViews struct {
	Date     string `json:"date"`
	Views    int64  `json:"views"`
	Visitors int64  `json:"visitors"`
}

type AnalyticsSummary struct {
	Days           int            `json:"days"`
	TotalViews     int64          `json:"total_views"`
	UniqueVisitors int64          `json:"unique_visitors"`
	TopPages       []PageCount    `json:"top_pages"`
	Devices        []DeviceCount  `json:"devices"`
	TopCountries   []CountryCount `json:"top_countries"`
	DailyViews     []DailyViews   `json:"daily_views"`
}
