// Package router registra las rutas HTTP del servicio: API de vacantes,
// notificaciones por correo, healthz y el frontend estático.
package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func SetRouter(r *gin.Engine, opts Options) {
	setSystemRoutes(r, opts)

	api := r.Group("/api")
	api.Use(gzip.Gzip(gzip.DefaultCompression))
	setVacantesAPIRoutes(api, opts)
	setNotificacionesAPIRoutes(api, opts)

	setStaticRoutes(r, opts)
}
