// Package mail envía el PDF del motor por correo usando gomail.
package mail

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/rectificadora-api/pkg/config"
)

// Dialer abstrae gomail.Dialer para poder probar sin servidor SMTP.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer implementa taller.Mailer.
type Mailer struct {
	from   string
	dialer Dialer
}

// NewMailer crea el mailer SMTP. Con Host vacío queda deshabilitado.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	if !cfg.Enabled() {
		return &Mailer{}
	}
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &Mailer{from: from, dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)}
}

// NewMailerWithDialer permite inyectar el dialer.
func NewMailerWithDialer(from string, d Dialer) *Mailer {
	return &Mailer{from: from, dialer: d}
}

// Enabled indica si hay servidor configurado.
func (m *Mailer) Enabled() bool { return m.dialer != nil }

// SendReport envía el PDF como adjunto. gomail no recibe contexto: solo se
// verifica la cancelación antes de conectar.
func (m *Mailer) SendReport(ctx context.Context, to, subject, body, filename string, pdf []byte) error {
	if !m.Enabled() {
		return fmt.Errorf("mail: smtp no configurado")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	msg.Attach(filename,
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}),
	)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail: enviar a %s: %w", to, err)
	}
	return nil
}
