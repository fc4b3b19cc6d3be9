// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mailer sends transactional email through a single transport.
// Credentials come from configuration only; nothing here is hardcoded.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	gomail "github.com/emersion/go-message/mail"
	"github.com/google/uuid"

	"github.com/vegaplay/vegaplay-go/internal/config"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
	ReplyTo string
}

// Sender delivers a message and returns a provider message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// NewSender picks the transport from configuration: SMTP when a relay
// is configured, otherwise a log-only sender for development.
func NewSender(cfg *config.Config, logger *slog.Logger) Sender {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SMTPEnabled() {
		return &SMTPSender{
			host:     cfg.SMTPHost,
			port:     cfg.SMTPPort,
			username: cfg.SMTPUser,
			password: cfg.SMTPPassword,
			from:     cfg.MailFrom,
		}
	}
	return &LogSender{logger: logger}
}

// LogSender writes outbound mail to the log instead of delivering it.
type LogSender struct {
	logger *slog.Logger
}

// Send implements Sender.
func (s *LogSender) Send(_ context.Context, msg Message) (string, error) {
	id := uuid.NewString()
	s.logger.Info("outbound email (log transport)",
		"to", msg.To, "subject", msg.Subject, "message_id", id)
	return id, nil
}

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// Send implements Sender.
func (s *SMTPSender) Send(_ context.Context, msg Message) (string, error) {
	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.host)

	body, err := buildMIME(s.from, msg, id)
	if err != nil {
		return "", err
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	var a smtp.Auth
	if s.username != "" {
		a = smtp.PlainAuth("", s.username, s.password, s.host)
	}
	if err := smtp.SendMail(addr, a, s.from, []string{msg.To}, body); err != nil {
		return "", fmt.Errorf("sending mail to %s: %w", msg.To, err)
	}
	return id, nil
}

// buildMIME constructs an HTML message with headers.
func buildMIME(from string, msg Message, messageID string) ([]byte, error) {
	var buf bytes.Buffer

	var h gomail.Header
	fromAddr, err := gomail.ParseAddress(from)
	if err != nil {
		return nil, fmt.Errorf("parsing from address: %w", err)
	}
	toAddr, err := gomail.ParseAddress(msg.To)
	if err != nil {
		return nil, fmt.Errorf("parsing to address: %w", err)
	}
	h.SetDate(time.Now())
	h.SetAddressList("From", []*gomail.Address{fromAddr})
	h.SetAddressList("To", []*gomail.Address{toAddr})
	h.SetSubject(msg.Subject)
	h.Set("Message-Id", messageID)
	if msg.ReplyTo != "" {
		replyAddr, err := gomail.ParseAddress(msg.ReplyTo)
		if err != nil {
			return nil, fmt.Errorf("parsing reply-to address: %w", err)
		}
		h.SetAddressList("Reply-To", []*gomail.Address{replyAddr})
	}
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})

	mw, err := gomail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("building message: %w", err)
	}
	if _, err := io.Copy(mw, strings.NewReader(msg.HTML)); err != nil {
		_ = mw.Close()
		return nil, fmt.Errorf("writing body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finishing message: %w", err)
	}
	return buf.Bytes(), nil
}
