// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deliver sends the rendered digest to its recipients. The
// pipeline's responsibility ends at producing the digest value; delivery
// failure never invalidates a computed digest.
package deliver

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/groundwork/econ-digest/pkg/types"
)

// Sender delivers one rendered document. Implementations must be safe to
// call with a cancelled context and return promptly.
type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

// SMTPSender delivers digests over SMTP with STARTTLS and plain auth.
type SMTPSender struct {
	cfg types.DeliveryConfig

	// sendMail is swappable for tests; defaults to smtp.SendMail.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTP validates the delivery configuration and returns a sender.
// Missing host, sender, or recipients is a configuration error: the
// caller asked for delivery it cannot perform.
func NewSMTP(cfg types.DeliveryConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("delivery: missing SMTP host")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("delivery: missing sender address")
	}
	if len(cfg.To) == 0 {
		return nil, fmt.Errorf("delivery: no recipients configured")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}, nil
}

// Send mails the document as a text/plain message. The context only gates
// entry: net/smtp offers no mid-session cancellation, so an already
// cancelled context fails fast and an in-flight send runs to completion.
func (s *SMTPSender) Send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := buildMessage(s.cfg.From, s.cfg.To, subject, body)
	if err := s.sendMail(addr, auth, s.cfg.From, s.cfg.To, msg); err != nil {
		return fmt.Errorf("sending digest via %s: %w", addr, err)
	}
	return nil
}

// buildMessage assembles an RFC 5322 message with CRLF line endings.
func buildMessage(from string, to []string, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
