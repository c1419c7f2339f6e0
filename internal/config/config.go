// Package config lee y normaliza la configuración del servicio (variables
// de entorno con defaults), para que el resto del código no parsee nada.
package config

import (
	"errors"
	"strings"
)

type Config struct {
	Env    string
	Server ServerConfig
	DB     DBConfig
	SMTP   SMTPConfig
	Static StaticConfig
}

type ServerConfig struct {
	Addr string
}

type DBConfig struct {
	// PostgresDSN no vacío selecciona el backend en red; vacío, el
	// archivo SQLite embebido. La decisión se toma una sola vez.
	PostgresDSN string
	// SQLitePath permite reubicar el archivo embebido (puede incluir
	// opciones del driver como query, p. ej. ?_busy_timeout=30000).
	SQLitePath string
}

type SMTPConfig struct {
	Server     string
	Port       int
	SSLEnabled bool
	Account    string
	From       string
	Token      string
}

// Configured indica si hay credenciales suficientes para mandar correo
// real; si no, el endpoint de notificación simula el envío.
func (c SMTPConfig) Configured() bool {
	return strings.TrimSpace(c.Server) != "" &&
		strings.TrimSpace(c.Account) != "" &&
		strings.TrimSpace(c.Token) != ""
}

type StaticConfig struct {
	// Dir es el directorio del frontend; vacío desactiva el servido
	// de archivos estáticos.
	Dir string
}

func defaultConfig() Config {
	return Config{
		Env: "prod",
		Server: ServerConfig{
			Addr: ":3000",
		},
		DB: DBConfig{
			SQLitePath: "data/vacantes.db",
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
		Static: StaticConfig{
			Dir: "public",
		},
	}
}

// LoadFromEnv carga la configuración solo desde variables de entorno
// (el .env, si existe, ya fue cargado por godotenv en main).
func LoadFromEnv() (Config, error) {
	cfg := defaultConfig()
	applyEnvOverrides(&cfg)
	return normalizeAndValidate(cfg)
}

func normalizeAndValidate(cfg Config) (Config, error) {
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		cfg.Env = "prod"
	}
	cfg.Server.Addr = strings.TrimSpace(cfg.Server.Addr)
	if cfg.Server.Addr == "" {
		return Config{}, errors.New("la dirección del servidor no puede estar vacía")
	}
	cfg.DB.PostgresDSN = strings.TrimSpace(cfg.DB.PostgresDSN)
	cfg.DB.SQLitePath = strings.TrimSpace(cfg.DB.SQLitePath)
	if cfg.DB.PostgresDSN == "" && cfg.DB.SQLitePath == "" {
		return Config{}, errors.New("sin DATABASE_URL se requiere una ruta de SQLite")
	}
	if cfg.SMTP.Port <= 0 || cfg.SMTP.Port > 65535 {
		cfg.SMTP.Port = 587
	}
	return cfg, nil
}
