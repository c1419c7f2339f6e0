package router

import (
	"database/sql"

	"vacantes/internal/email"
	"vacantes/internal/store"
	"vacantes/internal/version"
)

type Options struct {
	Store  *store.Store
	Mailer email.Mailer

	// DB solo se usa para el ping de healthz; las rutas de negocio
	// pasan siempre por Store.
	DB      *sql.DB
	Version version.BuildInfo

	// PublicDir es el directorio del frontend; vacío desactiva el
	// servido estático.
	PublicDir string
}
