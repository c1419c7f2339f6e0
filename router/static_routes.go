package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// setStaticRoutes sirve el frontend desde PublicDir con fallback a
// index.html para rutas de la SPA. Las rutas /api y /healthz nunca caen
// aquí.
func setStaticRoutes(r *gin.Engine, opts Options) {
	dir := strings.TrimSpace(opts.PublicDir)
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return
	}

	r.Use(static.Serve("/", static.LocalFile(dir, false)))

	index := filepath.Join(dir, "index.html")
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.Status(http.StatusNotFound)
			return
		}
		if _, err := os.Stat(index); err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(index)
	})
}
