package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"itqan_backend/internals/features/system/settings/model"
)

var (
	cacheMu sync.RWMutex
	cache   Cache = NewMemoryCache(CacheTTL)
)

// InitCache pakai Redis kalau REDIS_URL diset & bisa di-ping, selain itu memory.
func InitCache(ctx context.Context, redisURL string) {
	if redisURL == "" {
		UseCache(NewMemoryCache(CacheTTL))
		return
	}
	rc, err := NewRedisCacheFromURL(ctx, redisURL, CacheTTL)
	if err != nil {
		zap.L().Warn("redis tidak tersedia, cache setting pakai memory", zap.Error(err))
		UseCache(NewMemoryCache(CacheTTL))
		return
	}
	zap.L().Info("✅ cache setting pakai redis")
	UseCache(rc)
}

func UseCache(c Cache) {
	cacheMu.Lock()
	cache = c
	cacheMu.Unlock()
}

func currentCache() Cache {
	cacheMu.RLock()
	defer cacheMu.RUnlock()
	return cache
}

// Raw membaca nilai JSON mentah lewat cache, fallback ke DB.
func Raw(ctx context.Context, db *gorm.DB, key string) ([]byte, error) {
	c := currentCache()
	if b, err := c.Get(ctx, key); err == nil {
		return b, nil
	}

	var row model.SystemSettingModel
	if err := db.WithContext(ctx).Where("setting_key = ?", key).First(&row).Error; err != nil {
		return nil, err
	}
	if err := c.Set(ctx, key, row.SettingValue); err != nil {
		zap.L().Debug("gagal menyimpan setting ke cache", zap.String("key", key), zap.Error(err))
	}
	return row.SettingValue, nil
}

// Get decode setting ke dst. Setting yang tidak ada / rusak -> false dan dst tidak disentuh.
func Get(ctx context.Context, db *gorm.DB, key string, dst any) bool {
	b, err := Raw(ctx, db, key)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Warn("gagal membaca setting", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		zap.L().Warn("nilai setting tidak valid", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func GetString(ctx context.Context, db *gorm.DB, key, def string) string {
	var v string
	if Get(ctx, db, key, &v) && v != "" {
		return v
	}
	return def
}

// GetBool menerima true / "true"
func GetBool(ctx context.Context, db *gorm.DB, key string, def bool) bool {
	var raw any
	if !Get(ctx, db, key, &raw) {
		return def
	}
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return def
	}
}

// Set upsert setting lalu invalidasi cache key tersebut.
func Set(ctx context.Context, db *gorm.DB, key string, value any, settingType string, updatedBy *uuid.UUID) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if settingType == "" {
		settingType = model.TypeGeneral
	}
	row := model.SystemSettingModel{
		SettingKey:   key,
		SettingValue: datatypes.JSON(b),
		SettingType:  settingType,
		UpdatedBy:    updatedBy,
	}
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "setting_type", "updated_by", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return err
	}
	if err := currentCache().Delete(ctx, key); err != nil {
		zap.L().Warn("gagal invalidasi cache setting", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// SetDefault: insert hanya kalau key belum ada (seed)
func SetDefault(ctx context.Context, db *gorm.DB, key string, value any, settingType, description string) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if settingType == "" {
		settingType = model.TypeGeneral
	}
	row := model.SystemSettingModel{
		SettingKey:   key,
		SettingValue: datatypes.JSON(b),
		SettingType:  settingType,
	}
	if description != "" {
		row.Description = &description
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true, Columns: []clause.Column{{Name: "setting_key"}}}).Create(&row).Error
}

func Flush(ctx context.Context) error {
	return currentCache().Flush(ctx)
}

func CacheName() string {
	return currentCache().Name()
}

// ListByType: map key -> value. exclude=true berarti semua type KECUALI settingType.
func ListByType(ctx context.Context, db *gorm.DB, settingType string, exclude bool) (map[string]json.RawMessage, error) {
	var rows []model.SystemSettingModel
	q := db.WithContext(ctx).Order("setting_key ASC")
	if exclude {
		q = q.Where("setting_type <> ?", settingType)
	} else {
		q = q.Where("setting_type = ?", settingType)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(rows))
	for _, r := range rows {
		out[r.SettingKey] = json.RawMessage(r.SettingValue)
	}
	return out, nil
}

// IsMaintenance dibaca middleware maintenance setiap request (lewat cache).
func IsMaintenance(ctx context.Context, db *gorm.DB) bool {
	return GetBool(ctx, db, model.KeyMaintenanceMode, false)
}
