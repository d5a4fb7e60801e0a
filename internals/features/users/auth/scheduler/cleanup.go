package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"itqan_backend/internals/features/users/auth/service"
)

const cleanupInterval = 24 * time.Hour

// StartSessionCleanupScheduler hapus user_sessions & token_blacklist kadaluarsa tiap 24 jam.
// Berhenti saat ctx dibatalkan.
func StartSessionCleanupScheduler(ctx context.Context, db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			RunCleanupOnce(ctx, db)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func RunCleanupOnce(ctx context.Context, db *gorm.DB) {
	zap.L().Info("[CLEANUP] Menjalankan pembersihan sesi & token_blacklist...")
	sessions, blacklisted, err := service.CleanupExpired(ctx, db)
	if err != nil {
		zap.L().Error("[CLEANUP ERROR] gagal membersihkan sesi", zap.Error(err))
		return
	}
	zap.L().Info("[CLEANUP] selesai",
		zap.Int64("sessions_deleted", sessions),
		zap.Int64("blacklist_deleted", blacklisted),
	)
}
