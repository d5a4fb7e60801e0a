package configs

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	AppEnv         string
	AppBaseURL     string
	JWTSecret      string
	CookieSecure   bool
	GoogleClientID string

	UploadDir string
	BackupDir string
	RedisURL  string

	MailDriver     string
	SendgridAPIKey string
	SMTPURL        string
	MailFrom       string

	AdminEmail    string
	AdminPassword string

	// TrustedProxies: CIDR/IP proxy yang boleh mengisi X-Forwarded-For
	TrustedProxies []string

	envSource string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	switch {
	case os.Getenv("RAILWAY_ENVIRONMENT") != "":
		envSource = "running in Railway, menggunakan ENV dari sistem"
	case godotenv.Load() != nil:
		envSource = "tidak menemukan .env file, menggunakan ENV dari sistem"
	default:
		envSource = ".env file berhasil dimuat"
	}

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_BASE_URL", "http://localhost:3000")
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_SSLMODE", "require")
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("BACKUP_DIR", "./backups")
	viper.SetDefault("MAIL_DRIVER", "log")
	viper.SetDefault("MAIL_FROM", `"إتقان الفاتحة" <no-reply@itqan.app>`)
	viper.SetDefault("TRUSTED_PROXIES", "127.0.0.1,::1")

	AppEnv = GetEnv("APP_ENV")
	AppBaseURL = strings.TrimRight(GetEnv("APP_BASE_URL"), "/")
	JWTSecret = GetEnv("JWT_SECRET")
	CookieSecure = IsProduction()
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")

	UploadDir = GetEnv("UPLOAD_DIR")
	BackupDir = GetEnv("BACKUP_DIR")
	RedisURL = GetEnv("REDIS_URL")

	MailDriver = strings.ToLower(GetEnv("MAIL_DRIVER"))
	SendgridAPIKey = GetEnv("SENDGRID_API_KEY")
	SMTPURL = GetEnv("SMTP_URL")
	MailFrom = GetEnv("MAIL_FROM")

	AdminEmail = strings.ToLower(GetEnv("ADMIN_EMAIL"))
	AdminPassword = GetEnv("ADMIN_PASSWORD")
	TrustedProxies = SplitList(GetEnv("TRUSTED_PROXIES"))

}

// LogEnvStatus dipanggil setelah InitLogger, supaya log LoadEnv tidak hilang.
func LogEnvStatus() {
	zap.L().Info(envSource, zap.String("app_env", AppEnv))
	if JWTSecret == "" {
		zap.L().Warn("JWT_SECRET belum diset")
	} else {
		zap.L().Info("JWT_SECRET berhasil dimuat")
	}
	if GoogleClientID == "" {
		zap.L().Info("GOOGLE_CLIENT_ID belum diset, login google nonaktif")
	}
}

// SplitList: "a, b,,c" -> [a b c]
func SplitList(raw string) []string {
	out := make([]string, 0, 4)
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// GetEnv membaca key lewat viper (env + default), lalu fallback ke defaultValue.
func GetEnv(key string, defaultValue ...string) string {
	if viper.IsSet(key) {
		if v := viper.GetString(key); v != "" {
			return v
		}
	}
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func IsProduction() bool {
	return strings.EqualFold(AppEnv, "production")
}
