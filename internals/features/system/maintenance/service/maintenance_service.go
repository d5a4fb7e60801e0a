package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	logService "itqan_backend/internals/features/system/activity_logs/service"
	"itqan_backend/internals/features/system/maintenance/dto"
	settingsService "itqan_backend/internals/features/system/settings/service"
)

const (
	backupVersion       = "1.0"
	logRetention        = 90 * 24 * time.Hour
	pageViewRetention   = 90 * 24 * time.Hour
	notifReadRetention  = 30 * 24 * time.Hour
	backupFilePrefix    = "itqan-backup-"
	backupFileTimestamp = "20060102-150405"
)

// backupTables tabel inti + kolom yang diekspor (tanpa password/secret)
var backupTables = []struct {
	Name    string
	Columns string
	Order   string
}{
	{"users", "id, name, email, role, gender, is_active, approval_status, created_at", "created_at"},
	{"reader_profiles", "user_id, qualification, memorized_parts, years_of_experience, rating, total_reviews, created_at", "created_at"},
	{"recitations", "id, student_id, assigned_reader_id, surah_name, qiraah, status, created_at, reviewed_at", "created_at"},
	{"reviews", "id, recitation_id, reader_id, verdict, overall_score, created_at", "created_at"},
	{"bookings", "id, student_id, reader_id, recitation_id, slot_start, slot_end, status, created_at", "created_at"},
	{"certificate_data", "id, student_id, certificate_issued, issued_at, ceremony_date, created_at", "created_at"},
	{"system_settings", "setting_key, setting_value, setting_type", "setting_key"},
}

// Backup tulis snapshot JSON tabel inti ke dir, return nama file
func Backup(ctx context.Context, db *gorm.DB, dir string, now time.Time) (*dto.BackupResult, error) {
	file := dto.BackupFile{
		ExportedAt: now.UTC(),
		Version:    backupVersion,
		Data:       map[string]any{},
		Counts:     map[string]int{},
	}
	for _, t := range backupTables {
		var rows []map[string]any
		if err := db.WithContext(ctx).Table(t.Name).Select(t.Columns).Order(t.Order).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("backup %s: %w", t.Name, err)
		}
		if rows == nil {
			rows = []map[string]any{}
		}
		file.Data[t.Name] = rows
		file.Counts[t.Name] = len(rows)
	}

	b, err := sonic.ConfigStd.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	name := backupFilePrefix + now.UTC().Format(backupFileTimestamp) + ".json"
	if err := os.WriteFile(filepath.Join(dir, name), b, 0o600); err != nil {
		return nil, err
	}
	return &dto.BackupResult{FileName: name, Counts: file.Counts}, nil
}

func purge(ctx context.Context, db *gorm.DB, table, where string, args ...any) (int64, error) {
	res := db.WithContext(ctx).Exec("DELETE FROM "+table+" WHERE "+where, args...)
	return res.RowsAffected, res.Error
}

// Run eksekusi satu aksi maintenance; aksi tak dikenal -> 400
func Run(ctx context.Context, db *gorm.DB, adminID uuid.UUID, action, backupDir, ip string, now time.Time) (any, error) {
	entry := logService.Entry{UserID: &adminID, Action: "maintenance_" + action, EntityType: "system", IPAddress: ip}

	var (
		out any
		err error
	)
	switch action {
	case dto.ActionClearCache:
		if err = settingsService.Flush(ctx); err == nil {
			out = fiber.Map{"cache": settingsService.CacheName()}
		}
	case dto.ActionBackup:
		var res *dto.BackupResult
		if res, err = Backup(ctx, db, backupDir, now); err == nil {
			out = res
			entry.Details = res
		}
	case dto.ActionClearOldLogs:
		var n int64
		if n, err = purge(ctx, db, "activity_logs", "created_at < ?", now.Add(-logRetention)); err == nil {
			out = dto.PurgeResult{Deleted: n}
		}
	case dto.ActionClearPageViews:
		var n int64
		if n, err = purge(ctx, db, "page_views", "created_at < ?", now.Add(-pageViewRetention)); err == nil {
			out = dto.PurgeResult{Deleted: n}
		}
	case dto.ActionClearNotifications:
		var n int64
		if n, err = purge(ctx, db, "notifications", "created_at < ? AND is_read = ?", now.Add(-notifReadRetention), true); err == nil {
			out = dto.PurgeResult{Deleted: n}
		}
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "إجراء غير معروف")
	}
	if err != nil {
		zap.L().Error("maintenance action failed", zap.String("action", action), zap.Error(err))
		return nil, err
	}

	logService.Log(ctx, db, entry)
	return out, nil
}
