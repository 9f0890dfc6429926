// Package mailer sends the transactional emails of the shop over SMTP.
package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"stockstores-be/internal/logger"

	"go.uber.org/zap"
)

var ErrDisabled = errors.New("mailer: no sender account configured")

const resetSubject = "Solicitastes Cambiar la Contraseña de tu Cuenta - StockStores"

var resetTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>StockStores</h2>
    <p>Recibimos una solicitud para cambiar la contraseña de tu cuenta.</p>
    <p>El enlace vence en 10 minutos.</p>
    <p><a href="{{.Link}}" style="background:#1d4ed8;color:#fff;padding:10px 16px;text-decoration:none;border-radius:4px;">Cambiar contraseña</a></p>
    <p>Si no fuiste tú, ignora este correo.</p>
  </body>
</html>
`))

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPMailer struct {
	host     string
	port     int
	from     string
	password string
	send     sendFunc
}

func NewSMTPMailer(host string, port int, from, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		send:     smtp.SendMail,
	}
}

// SendPasswordReset mails the reset link to one recipient.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	if m.from == "" {
		return ErrDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, struct{ Link string }{link}); err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}

	msg := buildMessage(m.from, to, resetSubject, body.String())
	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	auth := smtp.PlainAuth("", m.from, m.password, m.host)

	if err := m.send(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	logger.FromCtx(ctx).Debug("reset email handed to smtp", zap.String("to", to))
	return nil
}

func buildMessage(from, to, subject, html string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mimeEncode(subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)
	return []byte(b.String())
}

// mimeEncode wraps non-ASCII header values in an RFC 2047 encoded word.
func mimeEncode(s string) string {
	for _, r := range s {
		if r > 127 {
			return "=?UTF-8?B?" + base64.StdEncoding.EncodeToString([]byte(s)) + "?="
		}
	}
	return s
}
