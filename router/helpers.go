package router

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"vacantes/internal/middleware"
)

// idDeRuta interpreta el parámetro :id; ok=false ya respondió el 400.
func idDeRuta(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return 0, false
	}
	return id, true
}

// errorInterno responde el 500 genérico; el detalle real queda solo en
// el log del servidor, nunca en el cuerpo.
func errorInterno(c *gin.Context, operacion string, err error) {
	slog.Error(operacion,
		"request_id", middleware.GetRequestID(c),
		"err", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno del servidor"})
}
