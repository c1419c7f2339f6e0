package email

import (
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"vacantes/internal/config"
)

type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Simulado() bool { return false }

func (m *SMTPMailer) SendText(ctx context.Context, para string, asunto string, mensaje string) error {
	host := strings.TrimSpace(m.cfg.Server)
	if host == "" {
		return errors.New("servidor SMTP sin configurar")
	}
	port := m.cfg.Port
	if port == 0 {
		port = 587
	}

	from, err := normalizarDireccion(primeraNoVacia(m.cfg.From, m.cfg.Account))
	if err != nil {
		return fmt.Errorf("remitente SMTP inválido: %w", err)
	}
	destino, err := normalizarDireccion(para)
	if err != nil {
		return fmt.Errorf("destinatario inválido: %w", err)
	}

	account := strings.TrimSpace(m.cfg.Account)
	token := m.cfg.Token
	if account == "" || token == "" {
		return errors.New("credenciales SMTP sin configurar")
	}

	msg, err := construirMensajeTexto(from, destino, asunto, mensaje)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	tlsCfg := &tls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}
	deadline := deadlineDesdeContexto(ctx, 30*time.Second)

	if port == 465 || m.cfg.SSLEnabled {
		return enviarTLSImplicito(ctx, addr, host, tlsCfg, deadline, account, token, from, []string{destino}, msg)
	}
	return enviarSTARTTLS(ctx, addr, host, tlsCfg, deadline, account, token, from, []string{destino}, msg)
}

func enviarTLSImplicito(_ context.Context, addr string, host string, tlsCfg *tls.Config, deadline time.Time, account string, token string, from string, to []string, msg []byte) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, tlsCfg)
	if err != nil {
		return fmt.Errorf("conexión SMTP TLS fallida: %w", err)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()
		return fmt.Errorf("fijar timeout SMTP: %w", err)
	}
	c, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("crear cliente SMTP: %w", err)
	}
	defer func() { _ = c.Close() }()

	return enviarConCliente(c, host, account, token, from, to, msg)
}

func enviarSTARTTLS(ctx context.Context, addr string, host string, tlsCfg *tls.Config, deadline time.Time, account string, token string, from string, to []string, msg []byte) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("conexión SMTP fallida: %w", err)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()
		return fmt.Errorf("fijar timeout SMTP: %w", err)
	}
	c, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("crear cliente SMTP: %w", err)
	}
	defer func() { _ = c.Close() }()

	ok, _ := c.Extension("STARTTLS")
	if !ok {
		return errors.New("el servidor SMTP no soporta STARTTLS (no se autentica en claro)")
	}
	if err := c.StartTLS(tlsCfg); err != nil {
		return fmt.Errorf("SMTP STARTTLS fallido: %w", err)
	}
	return enviarConCliente(c, host, account, token, from, to, msg)
}

func enviarConCliente(c *smtp.Client, host string, account string, token string, from string, to []string, msg []byte) error {
	auth := smtp.PlainAuth("", account, token, host)
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("autenticación SMTP fallida: %w", err)
	}
	if err := c.Mail(from); err != nil {
		return fmt.Errorf("SMTP MAIL FROM fallido: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("SMTP RCPT TO fallido: %w", err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA fallido: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return fmt.Errorf("escribir contenido SMTP: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("cerrar SMTP DATA: %w", err)
	}
	_ = c.Quit()
	return nil
}

func construirMensajeTexto(from string, to string, asunto string, cuerpo string) ([]byte, error) {
	asunto = strings.TrimSpace(asunto)
	if asunto == "" {
		asunto = "Aviso de vacantes"
	}
	asuntoCodificado := codificarRFC2047(asunto)

	id, err := messageID(from)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	header := fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\nDate: %s\r\nMessage-ID: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n",
		to, from, asuntoCodificado, now.Format(time.RFC1123Z), id)
	if !strings.HasSuffix(cuerpo, "\r\n") {
		cuerpo += "\r\n"
	}
	return []byte(header + cuerpo), nil
}

func codificarRFC2047(s string) string {
	return "=?UTF-8?B?" + base64.StdEncoding.EncodeToString([]byte(s)) + "?="
}

func messageID(from string) (string, error) {
	parts := strings.Split(from, "@")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("el remitente no tiene dominio; no se puede generar Message-ID")
	}
	aleatorio, err := tokenAleatorio(12)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("<%d.%s@%s>", time.Now().UnixNano(), aleatorio, parts[1]), nil
}

func tokenAleatorio(n int) (string, error) {
	if n < 8 {
		n = 8
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", fmt.Errorf("generar aleatorio: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func normalizarDireccion(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("correo vacío")
	}
	a, err := mail.ParseAddress(s)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(a.Address), nil
}

func primeraNoVacia(s ...string) string {
	for _, v := range s {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func deadlineDesdeContexto(ctx context.Context, respaldo time.Duration) time.Time {
	if d, ok := ctx.Deadline(); ok {
		return d
	}
	return time.Now().Add(respaldo)
}
