// Package email envía los avisos de vacantes por SMTP. Sin credenciales
// configuradas el envío se simula: se registra y se responde éxito.
package email

import (
	"context"
	"log/slog"

	"vacantes/internal/config"
)

type Mailer interface {
	SendText(ctx context.Context, para string, asunto string, mensaje string) error
	// Simulado indica si este mailer solo registra los envíos.
	Simulado() bool
}

// NewFromConfig elige el mailer real o el simulado según haya o no
// credenciales SMTP. La decisión es de arranque, igual que el backend
// de datos.
func NewFromConfig(cfg config.SMTPConfig) Mailer {
	if cfg.Configured() {
		return NewSMTPMailer(cfg)
	}
	return simulatedMailer{}
}

type simulatedMailer struct{}

func (simulatedMailer) SendText(_ context.Context, para string, asunto string, _ string) error {
	slog.Info("envío de correo simulado (SMTP sin configurar)", "para", para, "asunto", asunto)
	return nil
}

func (simulatedMailer) Simulado() bool { return true }
