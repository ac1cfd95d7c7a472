package infra

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"flota/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending reports as attachments.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	from := cfg.ReporteRemitente
	if from == "" {
		from = cfg.SMTPUser
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     from,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// EnviarReporte sends body to one recipient with adjunto attached as nombreArchivo.
func (m *Mailer) EnviarReporte(ctx context.Context, to, subject, body string, adjunto []byte, nombreArchivo string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := m.armar(to, subject, body)
	if len(adjunto) > 0 {
		if _, err := e.Attach(bytes.NewReader(adjunto), nombreArchivo, contentTypeDe(nombreArchivo)); err != nil {
			return fmt.Errorf("mailer: attach %s: %w", nombreArchivo, err)
		}
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}

func (m *Mailer) armar(to, subject, body string) *email.Email {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)
	return e
}

func contentTypeDe(nombre string) string {
	switch {
	case strings.HasSuffix(nombre, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(nombre, ".xlsx"):
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
