package mail_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/rectificadora-api/internal/infrastructure/mail"
	"github.com/jhoicas/rectificadora-api/pkg/config"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func TestNewMailer_SinHostDeshabilitado(t *testing.T) {
	m := mail.NewMailer(config.SMTPConfig{})
	assert.False(t, m.Enabled())
	assert.Error(t, m.SendReport(context.Background(), "a@b.co", "s", "b", "f.pdf", nil))

	assert.True(t, mail.NewMailer(config.SMTPConfig{Host: "smtp.local", Port: 25}).Enabled())
}

func TestSendReport_AdjuntaPDF(t *testing.T) {
	d := &fakeDialer{}
	m := mail.NewMailerWithDialer("taller@rectificadora.co", d)

	err := m.SendReport(context.Background(), "cliente@correo.co", "Motor 00001", "Total: $10.000", "motor_00001.pdf", []byte("%PDF-1.3"))
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	msg := d.sent[0]
	assert.Equal(t, []string{"cliente@correo.co"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Motor 00001"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "motor_00001.pdf")
	assert.Contains(t, buf.String(), "application/pdf")
}

func TestSendReport_ErrorDelServidor(t *testing.T) {
	d := &fakeDialer{err: errors.New("conexión rechazada")}
	m := mail.NewMailerWithDialer("taller@rectificadora.co", d)

	err := m.SendReport(context.Background(), "x@y.co", "s", "b", "f.pdf", []byte("x"))
	assert.ErrorContains(t, err, "conexión rechazada")
}

func TestSendReport_ContextoCancelado(t *testing.T) {
	d := &fakeDialer{}
	m := mail.NewMailerWithDialer("t@r.co", d)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.SendReport(ctx, "x@y.co", "s", "b", "f.pdf", nil), context.Canceled)
	assert.Empty(t, d.sent)
}
