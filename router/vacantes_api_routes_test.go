package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"vacantes/internal/store"
)

func engineDePrueba(t *testing.T) *gin.Engine {
	t.Helper()
	return engineConMailer(t, mailerDePrueba{})
}

func engineConMailer(t *testing.T, m mailerDePrueba) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	db, err := store.OpenSQLite(filepath.Join(dir, "vacantes.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.EnsureSQLiteSchema(db); err != nil {
		t.Fatalf("EnsureSQLiteSchema: %v", err)
	}

	st := store.New(db)
	st.SetDialect(store.DialectSQLite)

	r := gin.New()
	SetRouter(r, Options{Store: st, Mailer: m, DB: db})
	return r
}

func hacerJSON(t *testing.T, r *gin.Engine, metodo, ruta string, cuerpo any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if cuerpo != nil {
		b, err := json.Marshal(cuerpo)
		if err != nil {
			t.Fatalf("serializar cuerpo: %v", err)
		}
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(metodo, ruta, body)
	req.Header.Set("Content-Type", "application/json")
	// El grupo /api comprime; pedir identidad simplifica leer el cuerpo.
	req.Header.Set("Accept-Encoding", "identity")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodificar(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("decodificar respuesta: %v (%s)", err, w.Body.String())
	}
}

func TestPostVacante_EscenarioTablaVacia(t *testing.T) {
	r := engineDePrueba(t)

	w := hacerJSON(t, r, "POST", "/api/vacantes", map[string]any{
		"nombre":      "Dev",
		"area":        "IT",
		"requisitor":  "Ana",
		"tipoProceso": "Nueva",
		"tipo":        "Full-time",
		"prioridad":   "Alta",
		"comentarios": "urgente",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status inesperado: %d (%s)", w.Code, w.Body.String())
	}

	var resp struct {
		ID          int64   `json:"id"`
		Folio       *string `json:"folio"`
		FechaInicio string  `json:"fechaInicio"`
	}
	decodificar(t, w, &resp)

	hoy := time.Now()
	if resp.ID != 1 {
		t.Fatalf("id inesperado: %d", resp.ID)
	}
	folioEsperado := fmt.Sprintf("PL-%s-0001", hoy.Format("20060102"))
	if resp.Folio == nil || *resp.Folio != folioEsperado {
		t.Fatalf("folio inesperado: %v", resp.Folio)
	}
	if resp.FechaInicio != hoy.Format("2006-01-02") {
		t.Fatalf("fechaInicio inesperada: %q", resp.FechaInicio)
	}
}

func TestPutLuegoGet_HabilidadesEstructuradas(t *testing.T) {
	r := engineDePrueba(t)

	w := hacerJSON(t, r, "POST", "/api/vacantes", map[string]any{"nombre": "Dev", "area": "IT"})
	if w.Code != http.StatusOK {
		t.Fatalf("POST: %d", w.Code)
	}

	w = hacerJSON(t, r, "PUT", "/api/vacantes/1", map[string]any{
		"nombre":      "Dev",
		"area":        "IT",
		"estatus":     "Entrevistas",
		"habilidades": []map[string]string{{"tipo": "tecnica", "habilidad": "Go"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("PUT: %d (%s)", w.Code, w.Body.String())
	}

	w = hacerJSON(t, r, "GET", "/api/vacantes/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET: %d", w.Code)
	}
	var v struct {
		Estatus     string           `json:"estatus"`
		Habilidades []map[string]any `json:"habilidades"`
	}
	decodificar(t, w, &v)
	if v.Estatus != "Entrevistas" {
		t.Fatalf("estatus inesperado: %q", v.Estatus)
	}
	if len(v.Habilidades) != 1 || v.Habilidades[0]["habilidad"] != "Go" {
		t.Fatalf("habilidades no llegó como arreglo estructurado: %+v", v.Habilidades)
	}
}

func TestGetVacantes_ListaDescendente(t *testing.T) {
	r := engineDePrueba(t)

	for i := 0; i < 3; i++ {
		if w := hacerJSON(t, r, "POST", "/api/vacantes", map[string]any{"nombre": fmt.Sprintf("v%d", i)}); w.Code != http.StatusOK {
			t.Fatalf("POST %d: %d", i, w.Code)
		}
	}

	w := hacerJSON(t, r, "GET", "/api/vacantes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET: %d", w.Code)
	}
	var lista []struct {
		ID int64 `json:"id"`
	}
	decodificar(t, w, &lista)
	if len(lista) != 3 {
		t.Fatalf("longitud inesperada: %d", len(lista))
	}
	for i := 1; i < len(lista); i++ {
		if lista[i].ID >= lista[i-1].ID {
			t.Fatalf("ids no descienden: %+v", lista)
		}
	}
}

func TestVacante_NoEncontrada(t *testing.T) {
	r := engineDePrueba(t)

	if w := hacerJSON(t, r, "GET", "/api/vacantes/99", nil); w.Code != http.StatusNotFound {
		t.Fatalf("GET inexistente: %d", w.Code)
	}
	if w := hacerJSON(t, r, "PUT", "/api/vacantes/99", map[string]any{"nombre": "x"}); w.Code != http.StatusNotFound {
		t.Fatalf("PUT inexistente: %d", w.Code)
	}
	if w := hacerJSON(t, r, "DELETE", "/api/vacantes/99", nil); w.Code != http.StatusNotFound {
		t.Fatalf("DELETE inexistente: %d", w.Code)
	}
}

func TestVacante_IdInvalido(t *testing.T) {
	r := engineDePrueba(t)
	if w := hacerJSON(t, r, "GET", "/api/vacantes/abc", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("id no numérico: %d", w.Code)
	}
}

func TestDeleteVacante_Confirmacion(t *testing.T) {
	r := engineDePrueba(t)

	if w := hacerJSON(t, r, "POST", "/api/vacantes", map[string]any{"nombre": "Dev"}); w.Code != http.StatusOK {
		t.Fatalf("POST: %d", w.Code)
	}
	w := hacerJSON(t, r, "DELETE", "/api/vacantes/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE: %d", w.Code)
	}
	var resp map[string]string
	decodificar(t, w, &resp)
	if resp["mensaje"] == "" {
		t.Fatalf("sin mensaje de confirmación: %s", w.Body.String())
	}
}
