// Package store maneja la conexión, la migración de esquema y el acceso a
// datos de vacantes, de modo que las capas superiores no toquen SQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// OpenDB decide el backend una sola vez al arranque: si hay DSN de
// Postgres se usa el motor en red; si no, el archivo SQLite embebido.
// No hay cambio de backend a media ejecución.
func OpenDB(env string, postgresDSN string, sqlitePath string) (*sql.DB, Dialect, error) {
	if strings.TrimSpace(postgresDSN) != "" {
		db, err := OpenPostgres(env, postgresDSN)
		if db == nil {
			return nil, "", err
		}
		return db, DialectPostgres, err
	}
	db, err := OpenSQLite(sqlitePath)
	if err != nil {
		return nil, "", err
	}
	return db, DialectSQLite, nil
}

func OpenSQLite(path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("la ruta del archivo SQLite no puede estar vacía")
	}

	// La ruta puede traer opciones del driver como query (?_busy_timeout=...);
	// hay que separar el archivo real antes de crear su directorio.
	filePath := path
	if i := strings.IndexByte(filePath, '?'); i >= 0 {
		filePath = filePath[:i]
	}
	if filePath != "" && filePath != ":memory:" && !strings.HasPrefix(filePath, "file::memory:") {
		dir := filepath.Dir(filePath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("crear directorio de datos SQLite: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql.Open(sqlite): %w", err)
	}
	// Con varias conexiones de escritura SQLite compite por el lock del
	// archivo; una sola conexión es suficiente y estable para este servicio.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping(sqlite): %w", err)
	}

	// WAL es una propiedad persistente de la base; basta ejecutarlo una vez.
	_, _ = db.Exec(`PRAGMA journal_mode=WAL`)
	return db, nil
}

// OpenPostgres abre el pool y verifica conectividad. Si el ping falla
// devuelve el handle junto con el error: el arranque continúa degradado
// y las consultas reintentan contra el pool cuando el servidor vuelva.
func OpenPostgres(env string, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open(pgx): %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if env == "dev" {
		if err := pingPostgresConEspera(db); err != nil {
			return db, err
		}
		return db, nil
	}
	if err := pingPostgresUnaVez(db); err != nil {
		return db, err
	}
	return db, nil
}

func pingPostgresUnaVez(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db.Ping(postgres): %w", err)
	}
	return nil
}

// En dev el contenedor de Postgres suele tardar en aceptar conexiones;
// esperamos con backoff acotado en vez de fallar al primer intento.
func pingPostgresConEspera(db *sql.DB) error {
	const (
		maxWait    = 30 * time.Second
		maxBackoff = 2 * time.Second
	)

	deadline := time.Now().Add(maxWait)
	backoff := 200 * time.Millisecond
	esperaRegistrada := false
	var lastErr error

	for time.Now().Before(deadline) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := db.PingContext(ctx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err

		if !esperaRegistrada {
			slog.Info("esperando a que Postgres esté listo (dev)", "timeout", maxWait.String())
			esperaRegistrada = true
		}
		time.Sleep(backoff)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
	return fmt.Errorf("db.Ping(postgres): %w", lastErr)
}
