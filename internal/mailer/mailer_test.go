// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package mailer

import (
	"context"
	"strings"
	"testing"

	"github.com/vegaplay/vegaplay-go/internal/config"
	"github.com/vegaplay/vegaplay-go/internal/testutil"
)

func TestNewSender_PicksTransportFromConfig(t *testing.T) {
	logger := testutil.TestLogger()

	if _, ok := NewSender(&config.Config{}, logger).(*LogSender); !ok {
		t.Error("no SMTP host configured, want LogSender")
	}
	smtpCfg := &config.Config{
		SMTPHost: "smtp.vegaplay.example", SMTPPort: 587,
		MailFrom: "no-reply@vegaplay.example",
	}
	if _, ok := NewSender(smtpCfg, logger).(*SMTPSender); !ok {
		t.Error("SMTP host configured, want SMTPSender")
	}
}

func TestLogSender_ReturnsMessageID(t *testing.T) {
	s := &LogSender{logger: testutil.TestLogger()}

	id1, err := s.Send(context.Background(), Message{To: "a@vegaplay.es", Subject: "x"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	id2, _ := s.Send(context.Background(), Message{To: "b@vegaplay.es", Subject: "y"})
	if id1 == "" || id1 == id2 {
		t.Errorf("message ids = %q / %q, want unique non-empty", id1, id2)
	}
}

func TestVerifyEmailMessage_Locales(t *testing.T) {
	link := "https://vegaplay.example/es/cuenta/verificar?token=abc123"

	es := VerifyEmailMessage("user@vegaplay.es", "es", link)
	if !strings.Contains(es.HTML, link) {
		t.Errorf("es body missing link: %s", es.HTML)
	}
	if !strings.Contains(es.Subject, "Verifica") {
		t.Errorf("es subject = %q", es.Subject)
	}

	en := VerifyEmailMessage("user@vegaplay.es", "en", link)
	if !strings.Contains(en.Subject, "Verify") {
		t.Errorf("en subject = %q", en.Subject)
	}
	if es.HTML == en.HTML {
		t.Error("locales share a body")
	}
}

func TestPasswordResetMessage(t *testing.T) {
	link := "https://vegaplay.example/en/cuenta/restablecer?token=xyz"
	msg := PasswordResetMessage("user@vegaplay.es", "en", link)

	if msg.To != "user@vegaplay.es" {
		t.Errorf("To = %q", msg.To)
	}
	if !strings.Contains(msg.HTML, link) {
		t.Errorf("body missing link: %s", msg.HTML)
	}
}

func TestContactMessage(t *testing.T) {
	msg := ContactMessage("hola@vegaplay.example", "Ana", "ana@example.com", "Hola equipo")

	if msg.To != "hola@vegaplay.example" {
		t.Errorf("To = %q", msg.To)
	}
	if msg.ReplyTo != "ana@example.com" {
		t.Errorf("ReplyTo = %q", msg.ReplyTo)
	}
	if !strings.Contains(msg.HTML, "Ana") || !strings.Contains(msg.HTML, "Hola equipo") {
		t.Errorf("body = %s", msg.HTML)
	}
}

func TestBuildMIME(t *testing.T) {
	raw, err := buildMIME("no-reply@vegaplay.example", Message{
		To:      "user@vegaplay.es",
		Subject: "Prueba",
		HTML:    "<p>hola</p>",
		ReplyTo: "ana@example.com",
	}, "<id-1@smtp.vegaplay.example>")
	if err != nil {
		t.Fatalf("buildMIME: %v", err)
	}

	out := string(raw)
	for _, want := range []string{
		"From: ", "To: ", "Subject: ", "Content-Type: text/html",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("MIME output missing %q:\n%s", want, out)
		}
	}
}

func TestBuildMIME_RejectsBadAddress(t *testing.T) {
	_, err := buildMIME("not an address", Message{To: "user@vegaplay.es"}, "<id>")
	if err == nil {
		t.Fatal("malformed from address accepted")
	}
}
