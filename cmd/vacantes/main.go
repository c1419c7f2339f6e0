// vacantes es el backend de seguimiento de vacantes de reclutamiento:
// API REST sobre SQLite o Postgres, con notificación por correo y
// frontend estático.
package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"vacantes/internal/config"
	"vacantes/internal/obs"
	"vacantes/internal/server"
	"vacantes/internal/store"
	"vacantes/internal/version"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("cargar configuración falló", "err", err)
		os.Exit(1)
	}

	logger := obs.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	db, dialect, err := store.OpenDB(cfg.Env, cfg.DB.PostgresDSN, cfg.DB.SQLitePath)
	if err != nil {
		if db == nil {
			slog.Error("abrir base de datos falló", "err", err)
			os.Exit(1)
		}
		// Conectividad sin verificar: se arranca degradado y el pool
		// reintenta cuando el servidor de base de datos regrese.
		slog.Warn("base de datos sin conexión verificada; arranque degradado", "err", err)
	}
	defer db.Close()

	// La migración corre completa antes de abrir el listener; así la
	// primera petición nunca compite con un ALTER TABLE en vuelo.
	// Un fallo se registra y no detiene el arranque: repetirla es
	// siempre seguro y las columnas pueden existir de una corrida previa.
	switch dialect {
	case store.DialectPostgres:
		if err := store.EnsurePostgresSchema(db); err != nil {
			slog.Warn("migración de esquema Postgres incompleta", "err", err)
		}
	case store.DialectSQLite:
		if err := store.EnsureSQLiteSchema(db); err != nil {
			slog.Warn("migración de esquema SQLite incompleta", "err", err)
		}
	}

	app, err := server.NewApp(server.AppOptions{
		Config:  cfg,
		DB:      db,
		Dialect: dialect,
		Version: version.Info(),
	})
	if err != nil {
		slog.Error("inicializar el servicio falló", "err", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: app.Handler(),
	}

	serverErr := make(chan error, 1)

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		slog.Error("abrir el listener HTTP falló", "addr", cfg.Server.Addr, "err", err)
		os.Exit(1)
	}
	go func() {
		slog.Info("servicio iniciado", "addr", ln.Addr().String(), "backend", string(dialect), "version", version.Info().Version)
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-stop:
	case err := <-serverErr:
		slog.Error("el servidor HTTP terminó con error", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("apagado ordenado falló", "err", err)
		_ = httpServer.Close()
	}
	slog.Info("servicio detenido")
}
