package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"itqan_backend/internals/configs"
)

var DB *gorm.DB

// DSN dari DB_DSN, atau dirakit dari DB_USER/DB_PASSWORD/DB_HOST/DB_PORT/DB_NAME/DB_SSLMODE
func postgresDSN() string {
	if dsn := configs.GetEnv("DB_DSN"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=itqan&options=-c statement_timeout=3000",
		configs.GetEnv("DB_USER"),
		configs.GetEnv("DB_PASSWORD"),
		configs.GetEnv("DB_HOST"),
		configs.GetEnv("DB_PORT", "5432"),
		configs.GetEnv("DB_NAME"),
		configs.GetEnv("DB_SSLMODE", "require"),
	)
}

// Open membuka koneksi sesuai DB_DRIVER (postgres | sqlite)
func Open() (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: configs.NewGormLogger()}

	switch driver := strings.ToLower(configs.GetEnv("DB_DRIVER", "postgres")); driver {
	case "sqlite":
		path := configs.GetEnv("DB_DSN", "itqan.db")
		if dir := filepath.Dir(path); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		return gorm.Open(sqlite.Open(path), cfg)
	case "postgres", "":
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  postgresDSN(),
			PreferSimpleProtocol: true, // aman untuk PgBouncer (transaction pooling)
		}), cfg)
	default:
		return nil, fmt.Errorf("DB_DRIVER tidak dikenal: %s", driver)
	}
}

func ConnectDB() {
	zap.L().Info("🔌 koneksi ke database...", zap.String("driver", configs.GetEnv("DB_DRIVER", "postgres")))
	db, err := Open()
	if err != nil {
		zap.L().Fatal("❌ gagal konek DB", zap.Error(err))
	}
	DB = db
	zap.L().Info("✅ DB connected")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		zap.L().Warn("pool tune err", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx, DB); err != nil {
			zap.L().Warn("warm-up ping err", zap.Error(err))
			return
		}
		// query paling sering: cek setting maintenance
		DB.WithContext(ctx).Exec("SELECT 1 FROM system_settings WHERE setting_key = ?", "maintenance_mode")
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("db belum terkoneksi")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
