package mailer

import (
	"context"
	"encoding/base64"

	"go.uber.org/zap"
)

type logMailer struct{}

// NewLogMailer hanya menulis email ke log (development).
func NewLogMailer() Mailer { return logMailer{} }

func (logMailer) Driver() string { return "log" }

func (logMailer) Send(_ context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	zap.L().Info("📧 email (log driver)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("html_len", len(msg.HTML)),
	)
	return nil
}

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }
