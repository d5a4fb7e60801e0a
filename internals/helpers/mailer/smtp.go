package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"
)

const dialTimeout = 10 * time.Second

type smtpMailer struct {
	host     string
	port     string
	user     string
	password string
	implicit bool // smtps:// (TLS sejak awal)
	from     string
	fromAddr string
}

// NewSMTPMailer: rawURL smtp[s]://user:pass@host:port
func NewSMTPMailer(rawURL, from string) (Mailer, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, err
	}
	if u.Scheme != "smtp" && u.Scheme != "smtps" {
		return nil, fmt.Errorf("mailer: unsupported smtp scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, errors.New("mailer: smtp host is empty")
	}
	m := &smtpMailer{
		host:     u.Hostname(),
		port:     u.Port(),
		implicit: u.Scheme == "smtps",
		from:     from,
	}
	if m.port == "" {
		m.port = "587"
		if m.implicit {
			m.port = "465"
		}
	}
	if u.User != nil {
		m.user = u.User.Username()
		m.password, _ = u.User.Password()
	}
	addr, err := parseFrom(from)
	if err != nil {
		return nil, err
	}
	m.fromAddr = addr.Address
	return m, nil
}

func (s *smtpMailer) Driver() string { return "smtp" }

func (s *smtpMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	addr := net.JoinHostPort(s.host, s.port)

	d := net.Dialer{Timeout: dialTimeout}
	var conn net.Conn
	var err error
	if s.implicit {
		conn, err = (&tls.Dialer{NetDialer: &d, Config: &tls.Config{ServerName: s.host}}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = d.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return err
	}
	// net/smtp tidak kenal context; server yang diam diputus lewat deadline koneksi
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(SendTimeout)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return err
	}
	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if !s.implicit {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
				return err
			}
		}
	}
	if s.user != "" {
		if err := c.Auth(smtp.PlainAuth("", s.user, s.password, s.host)); err != nil {
			return err
		}
	}
	if err := c.Mail(s.fromAddr); err != nil {
		return err
	}
	if err := c.Rcpt(msg.To); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(buildMIME(s.from, msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func buildMIME(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: =?UTF-8?B?" + b64(msg.Subject) + "?=\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
	b.WriteString(b64(msg.HTML))
	return []byte(b.String())
}
