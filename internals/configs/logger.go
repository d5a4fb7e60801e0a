package configs

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger memasang zap global logger; dipanggil setelah LoadEnv (APP_ENV dari .env ikut terbaca).
func InitLogger() func() error {
	var logger *zap.Logger

	if IsProduction() {
		logger = zap.Must(zap.NewProduction())
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger = zap.Must(cfg.Build())
	}

	zap.ReplaceGlobals(logger)
	return logger.Sync
}
