package service

import (
	"context"
	"fmt"
	"net"
	"net/mail"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"itqan_backend/internals/configs"
	"itqan_backend/internals/features/system/settings/model"
	"itqan_backend/internals/helpers/mailer"
)

// SMTPConfig isi setting smtp_config (diatur admin dari dashboard).
type SMTPConfig struct {
	Host      string `json:"host"`
	Port      any    `json:"port"` // angka atau string
	User      string `json:"user"`
	Password  string `json:"password"`
	Secure    bool   `json:"secure"`
	FromEmail string `json:"fromEmail"`
	FromName  string `json:"fromName"`
}

func (s SMTPConfig) port() string {
	if s.Port == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(s.Port))
}

// URL: smtp[s]://user:pass@host:port, kosong kalau data belum lengkap.
func (s SMTPConfig) URL() string {
	host, port := strings.TrimSpace(s.Host), s.port()
	if host == "" || port == "" || s.User == "" || s.Password == "" {
		return ""
	}
	scheme := "smtp"
	if s.Secure {
		scheme = "smtps"
	}
	u := url.URL{
		Scheme: scheme,
		User:   url.UserPassword(s.User, s.Password),
		Host:   net.JoinHostPort(host, port),
	}
	return u.String()
}

// From: "Nama" <email> atau email saja, kosong kalau fromEmail belum diisi.
func (s SMTPConfig) From() string {
	email := strings.TrimSpace(s.FromEmail)
	if email == "" {
		return ""
	}
	if name := strings.TrimSpace(s.FromName); name != "" {
		return (&mail.Address{Name: name, Address: email}).String()
	}
	return email
}

// ResolveSMTP: smtp_config di DB menang, ENV (SMTP_URL / MAIL_FROM) sebagai fallback.
func ResolveSMTP(ctx context.Context, db *gorm.DB, envURL, envFrom string) (smtpURL, from string) {
	smtpURL, from, _ = resolveSMTP(ctx, db, envURL, envFrom)
	return smtpURL, from
}

func resolveSMTP(ctx context.Context, db *gorm.DB, envURL, envFrom string) (smtpURL, from string, fromDB bool) {
	smtpURL, from = envURL, envFrom

	var cfg SMTPConfig
	if !Get(ctx, db, model.KeySMTPConfig, &cfg) {
		return smtpURL, from, false
	}
	if v := cfg.URL(); v != "" {
		smtpURL, fromDB = v, true
	}
	if v := cfg.From(); v != "" {
		from = v
	}
	return smtpURL, from, fromDB
}

// ReloadMailer membangun ulang mailer default dari ENV + smtp_config.
// smtp_config yang lengkap memaksa driver smtp, kecuali sendgrid dipilih eksplisit.
func ReloadMailer(ctx context.Context, db *gorm.DB) mailer.Mailer {
	smtpURL, from, fromDB := resolveSMTP(ctx, db, configs.SMTPURL, configs.MailFrom)

	driver := configs.MailDriver
	if fromDB && driver != "sendgrid" {
		driver = "smtp"
	}
	m := mailer.New(driver, configs.SendgridAPIKey, smtpURL, from)
	mailer.SetDefault(m)
	zap.L().Info("mailer siap", zap.String("driver", m.Driver()))
	return m
}
