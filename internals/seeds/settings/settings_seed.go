package settings

import (
	"context"

	"gorm.io/gorm"

	"itqan_backend/internals/features/bookings/bookings/service"
	settingsModel "itqan_backend/internals/features/system/settings/model"
	settingsService "itqan_backend/internals/features/system/settings/service"
)

type defaultSetting struct {
	Key         string
	Value       any
	Type        string
	Description string
}

var defaults = []defaultSetting{
	{settingsModel.KeyReaderAssignmentStrategy, service.StrategyLeastBookedToday, settingsModel.TypeGeneral, "طريقة توزيع الجلسات على المقرئين"},
	{settingsModel.KeyMaintenanceMode, false, settingsModel.TypeGeneral, "وضع الصيانة"},
	{settingsModel.KeySiteName, "إتقان الفاتحة", settingsModel.TypeGeneral, "اسم المنصة"},
	{"homepage_hero_title", "أتقن تلاوة سورة الفاتحة", settingsModel.TypeHomepage, ""},
	{"homepage_hero_subtitle", "سجّل تلاوتك واحصل على تقييم من مقرئين معتمدين", settingsModel.TypeHomepage, ""},
	{"homepage_show_stats", true, settingsModel.TypeHomepage, ""},
}

// SeedDefaults: key yang sudah ada tidak ditimpa
func SeedDefaults(ctx context.Context, db *gorm.DB) error {
	for _, d := range defaults {
		if err := settingsService.SetDefault(ctx, db, d.Key, d.Value, d.Type, d.Description); err != nil {
			return err
		}
	}
	return nil
}
