// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var mailTmpl = template.Must(template.New("mail").Parse(`
{{define "verify_es"}}<p>Hola,</p><p>Confirma tu dirección de correo haciendo clic en el siguiente enlace:</p><p><a href="{{.Link}}">Verificar correo</a></p><p>El enlace caduca en 24 horas. Si no creaste esta cuenta, ignora este mensaje.</p>{{end}}
{{define "verify_en"}}<p>Hello,</p><p>Confirm your email address by clicking the link below:</p><p><a href="{{.Link}}">Verify email</a></p><p>The link expires in 24 hours. If you did not create this account, ignore this message.</p>{{end}}
{{define "reset_es"}}<p>Hola,</p><p>Recibimos una solicitud para restablecer tu contraseña:</p><p><a href="{{.Link}}">Restablecer contraseña</a></p><p>El enlace caduca en 1 hora. Si no lo solicitaste, ignora este mensaje.</p>{{end}}
{{define "reset_en"}}<p>Hello,</p><p>We received a request to reset your password:</p><p><a href="{{.Link}}">Reset password</a></p><p>The link expires in 1 hour. If you did not request this, ignore this message.</p>{{end}}
{{define "contact"}}<p>New contact message from {{.Name}} ({{.Email}}):</p><blockquote>{{.Body}}</blockquote>{{end}}
`))

func render(name string, data any) string {
	var buf bytes.Buffer
	if err := mailTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return ""
	}
	return buf.String()
}

// VerifyEmailMessage builds the address-verification email for a locale.
func VerifyEmailMessage(to, locale, link string) Message {
	name, subject := "verify_es", "Verifica tu correo en Vegaplay"
	if locale == "en" {
		name, subject = "verify_en", "Verify your Vegaplay email"
	}
	return Message{
		To:      to,
		Subject: subject,
		HTML:    render(name, struct{ Link string }{link}),
	}
}

// PasswordResetMessage builds the reset email for a locale.
func PasswordResetMessage(to, locale, link string) Message {
	name, subject := "reset_es", "Restablece tu contraseña de Vegaplay"
	if locale == "en" {
		name, subject = "reset_en", "Reset your Vegaplay password"
	}
	return Message{
		To:      to,
		Subject: subject,
		HTML:    render(name, struct{ Link string }{link}),
	}
}

// ContactMessage forwards a contact-form submission to the site inbox.
func ContactMessage(inbox, fromName, fromEmail, body string) Message {
	return Message{
		To:      inbox,
		Subject: fmt.Sprintf("Contact form: %s", fromName),
		HTML:    render("contact", struct{ Name, Email, Body string }{fromName, fromEmail, body}),
		ReplyTo: fromEmail,
	}
}
