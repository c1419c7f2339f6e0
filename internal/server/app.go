// Package server arma el engine de gin con sus dependencias para que
// main quede corto y legible.
package server

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"vacantes/internal/config"
	"vacantes/internal/email"
	"vacantes/internal/middleware"
	"vacantes/internal/store"
	"vacantes/internal/version"
	"vacantes/router"
)

type AppOptions struct {
	Config  config.Config
	DB      *sql.DB
	Dialect store.Dialect
	Version version.BuildInfo
}

type App struct {
	cfg    config.Config
	db     *sql.DB
	store  *store.Store
	mailer email.Mailer
	engine *gin.Engine
}

func NewApp(opts AppOptions) (*App, error) {
	st := store.New(opts.DB)
	st.SetDialect(opts.Dialect)

	mailer := email.NewFromConfig(opts.Config.SMTP)

	if opts.Config.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.AccessLog())

	router.SetRouter(engine, router.Options{
		Store:     st,
		Mailer:    mailer,
		DB:        opts.DB,
		Version:   opts.Version,
		PublicDir: opts.Config.Static.Dir,
	})

	return &App{
		cfg:    opts.Config,
		db:     opts.DB,
		store:  st,
		mailer: mailer,
		engine: engine,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.engine
}
