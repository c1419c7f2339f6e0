package config

import (
	"os"
	"strconv"
)

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VACANTES_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("VACANTES_ADDR"); v != "" {
		cfg.Server.Addr = v
	}

	// DATABASE_URL conserva el nombre histórico del despliegue: su sola
	// presencia selecciona Postgres.
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DB.PostgresDSN = v
	}
	if v := os.Getenv("VACANTES_SQLITE_PATH"); v != "" {
		cfg.DB.SQLitePath = v
	}

	if v := os.Getenv("VACANTES_PUBLIC_DIR"); v != "" {
		cfg.Static.Dir = v
	}

	if v := os.Getenv("VACANTES_SMTP_SERVER"); v != "" {
		cfg.SMTP.Server = v
	}
	if v := os.Getenv("VACANTES_SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = n
		}
	}
	if v := os.Getenv("VACANTES_SMTP_SSL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SMTP.SSLEnabled = b
		}
	}
	if v := os.Getenv("VACANTES_SMTP_ACCOUNT"); v != "" {
		cfg.SMTP.Account = v
	}
	if v := os.Getenv("VACANTES_SMTP_FROM"); v != "" {
		cfg.SMTP.From = v
	}
	if v := os.Getenv("VACANTES_SMTP_TOKEN"); v != "" {
		cfg.SMTP.Token = v
	}
}
