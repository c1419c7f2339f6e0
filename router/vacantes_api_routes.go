package router

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vacantes/internal/store"
)

type vacanteCreateRequest struct {
	Nombre       string          `json:"nombre"`
	Area         string          `json:"area"`
	Requisitor   string          `json:"requisitor"`
	TipoProceso  string          `json:"tipoProceso"`
	Tipo         string          `json:"tipo"`
	Prioridad    string          `json:"prioridad"`
	Comentarios  string          `json:"comentarios"`
	FechaIngreso string          `json:"fechaIngreso"`
	Habilidades  json.RawMessage `json:"habilidades"`
	Terna        json.RawMessage `json:"terna"`
}

type vacanteUpdateRequest struct {
	Nombre      string          `json:"nombre"`
	Area        string          `json:"area"`
	Requisitor  string          `json:"requisitor"`
	TipoProceso string          `json:"tipoProceso"`
	Tipo        string          `json:"tipo"`
	Prioridad   string          `json:"prioridad"`
	Comentarios string          `json:"comentarios"`
	Estatus     string          `json:"estatus"`
	Habilidades json.RawMessage `json:"habilidades"`
	Terna       json.RawMessage `json:"terna"`
}

func setVacantesAPIRoutes(r gin.IRoutes, opts Options) {
	r.GET("/vacantes", vacantesListHandler(opts))
	r.GET("/vacantes/:id", vacanteDetailHandler(opts))
	r.POST("/vacantes", vacanteCreateHandler(opts))
	r.PUT("/vacantes/:id", vacanteUpdateHandler(opts))
	r.DELETE("/vacantes/:id", vacanteDeleteHandler(opts))
}

func vacantesListHandler(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		vacantes, err := opts.Store.ListVacantes(c.Request.Context())
		if err != nil {
			errorInterno(c, "listar vacantes falló", err)
			return
		}
		c.JSON(http.StatusOK, vacantes)
	}
}

func vacanteDetailHandler(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idDeRuta(c)
		if !ok {
			return
		}
		v, err := opts.Store.GetVacante(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrVacanteNoEncontrada) {
				c.JSON(http.StatusNotFound, gin.H{"error": "vacante no encontrada"})
				return
			}
			errorInterno(c, "consultar vacante falló", err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func vacanteCreateHandler(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req vacanteCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo JSON inválido"})
			return
		}
		creada, err := opts.Store.CreateVacante(c.Request.Context(), store.NuevaVacante{
			Nombre:       req.Nombre,
			Area:         req.Area,
			Requisitor:   req.Requisitor,
			TipoProceso:  req.TipoProceso,
			Tipo:         req.Tipo,
			Prioridad:    req.Prioridad,
			Comentarios:  req.Comentarios,
			FechaIngreso: req.FechaIngreso,
			Habilidades:  req.Habilidades,
			Terna:        req.Terna,
		})
		if err != nil {
			errorInterno(c, "crear vacante falló", err)
			return
		}
		c.JSON(http.StatusOK, creada)
	}
}

func vacanteUpdateHandler(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idDeRuta(c)
		if !ok {
			return
		}
		var req vacanteUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo JSON inválido"})
			return
		}
		v, err := opts.Store.UpdateVacante(c.Request.Context(), id, store.CambiosVacante{
			Nombre:      req.Nombre,
			Area:        req.Area,
			Requisitor:  req.Requisitor,
			TipoProceso: req.TipoProceso,
			Tipo:        req.Tipo,
			Prioridad:   req.Prioridad,
			Comentarios: req.Comentarios,
			Estatus:     req.Estatus,
			Habilidades: req.Habilidades,
			Terna:       req.Terna,
		})
		if err != nil {
			if errors.Is(err, store.ErrVacanteNoEncontrada) {
				c.JSON(http.StatusNotFound, gin.H{"error": "vacante no encontrada"})
				return
			}
			errorInterno(c, "actualizar vacante falló", err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func vacanteDeleteHandler(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idDeRuta(c)
		if !ok {
			return
		}
		if err := opts.Store.DeleteVacante(c.Request.Context(), id); err != nil {
			if errors.Is(err, store.ErrVacanteNoEncontrada) {
				c.JSON(http.StatusNotFound, gin.H{"error": "vacante no encontrada"})
				return
			}
			errorInterno(c, "eliminar vacante falló", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"mensaje": "vacante eliminada"})
	}
}
