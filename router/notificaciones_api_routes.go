package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type notificacionRequest struct {
	Para    string `json:"para"`
	Asunto  string `json:"asunto"`
	Mensaje string `json:"mensaje"`
}

func setNotificacionesAPIRoutes(r gin.IRoutes, opts Options) {
	r.POST("/notificaciones", notificacionSendHandler(opts))
}

func notificacionSendHandler(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req notificacionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo JSON inválido"})
			return
		}
		if strings.TrimSpace(req.Para) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "falta el destinatario"})
			return
		}

		if err := opts.Mailer.SendText(c.Request.Context(), req.Para, req.Asunto, req.Mensaje); err != nil {
			errorInterno(c, "enviar notificación falló", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"enviado":  true,
			"simulado": opts.Mailer.Simulado(),
		})
	}
}
