package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Message satu email keluar (HTML).
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer driver pengiriman email: sendgrid | smtp | log
type Mailer interface {
	Send(ctx context.Context, msg Message) error
	Driver() string
}

var ErrNoRecipient = errors.New("mailer: recipient is empty")

// SendTimeout batas satu pengiriman lewat Dispatch (dial + handshake + DATA).
var SendTimeout = 30 * time.Second

var (
	mu      sync.RWMutex
	current Mailer = NewLogMailer()
	// Async=false dipakai di test supaya pengiriman bisa diamati langsung.
	async = true
)

// New memilih driver sesuai konfigurasi. Driver yang tidak lengkap jatuh ke log.
func New(driver, sendgridKey, smtpURL, from string) Mailer {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sendgrid":
		if strings.TrimSpace(sendgridKey) != "" {
			return NewSendgridMailer(sendgridKey, from)
		}
		zap.L().Warn("MAIL_DRIVER=sendgrid tapi SENDGRID_API_KEY kosong, fallback ke log")
	case "smtp":
		m, err := NewSMTPMailer(smtpURL, from)
		if err == nil {
			return m
		}
		zap.L().Warn("konfigurasi SMTP tidak valid, fallback ke log", zap.Error(err))
	}
	return NewLogMailer()
}

func SetDefault(m Mailer) {
	mu.Lock()
	defer mu.Unlock()
	current = m
}

func Default() Mailer {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func SetAsync(v bool) {
	mu.Lock()
	defer mu.Unlock()
	async = v
}

// Dispatch kirim email tanpa pernah menggagalkan caller.
func Dispatch(msg Message) {
	mu.RLock()
	m, isAsync, timeout := current, async, SendTimeout
	mu.RUnlock()

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := m.Send(ctx, msg); err != nil {
			zap.L().Warn("gagal mengirim email",
				zap.String("driver", m.Driver()),
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
		}
	}
	if isAsync {
		go run()
		return
	}
	run()
}

// parseFrom: `"Nama" <a@b.c>` atau `a@b.c`
func parseFrom(from string) (*mail.Address, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(from))
	if err != nil {
		return nil, fmt.Errorf("mailer: invalid from address %q: %w", from, err)
	}
	return addr, nil
}
