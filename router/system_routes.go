package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func setSystemRoutes(r *gin.Engine, opts Options) {
	r.GET("/healthz", healthzHandler(opts))
}

// healthzHandler responde siempre 200: el proceso puede servir tráfico
// aunque la base esté caída (arranque degradado); el estado de la
// conexión va en el cuerpo.
func healthzHandler(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := "sin conexión"
		if opts.DB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := opts.DB.PingContext(ctx); err == nil {
				db = "ok"
			} else {
				db = "error"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"estado":  "ok",
			"db":      db,
			"version": opts.Version.Version,
		})
	}
}
