package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestStaticRoutes_SPAConFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>vacantes</html>"), 0o644); err != nil {
		t.Fatalf("escribir index: %v", err)
	}

	r := gin.New()
	setStaticRoutes(r, Options{PublicDir: dir})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "vacantes") {
		t.Fatalf("raíz estática: %d (%s)", w.Code, w.Body.String())
	}

	// Ruta de la SPA sin archivo: cae al index.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/vacantes/detalle/3", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "vacantes") {
		t.Fatalf("fallback SPA: %d", w.Code)
	}

	// Las rutas de API no caen al index.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/inexistente", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("ruta de API debe dar 404: %d", w.Code)
	}
}

func TestStaticRoutes_SinDirectorioNoRegistraNada(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setStaticRoutes(r, Options{PublicDir: ""})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("sin directorio se esperaba 404: %d", w.Code)
	}
}
