package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// AccessLog registra una línea estructurada por petición. No se registra
// el cuerpo ni encabezados: solo lo necesario para correlacionar.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		c.Next()
		lat := time.Since(inicio)

		slog.Info("acceso",
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"latency_ms", lat.Milliseconds(),
		)
	}
}
