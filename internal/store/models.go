package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Vacante es el único registro del sistema. Los campos habilidades y
// terna se persisten como JSON y se manejan aquí de forma opaca: el API
// guarda la forma que le llegue y la recupera estructurada, nunca como
// texto crudo.
type Vacante struct {
	ID          int64           `json:"id"`
	Folio       *string         `json:"folio"`
	Nombre      string          `json:"nombre"`
	Area        string          `json:"area"`
	Requisitor  string          `json:"requisitor"`
	TipoProceso string          `json:"tipoProceso"`
	Tipo        string          `json:"tipo"`
	Prioridad   string          `json:"prioridad"`
	Comentarios string          `json:"comentarios"`
	Estatus     string          `json:"estatus"`
	FechaInicio string          `json:"fechaInicio"`
	Habilidades json.RawMessage `json:"habilidades"`
	Terna       json.RawMessage `json:"terna"`
}

// NuevaVacante son los campos que acepta el alta. Folio y fechaInicio no
// se reciben: el folio se deriva del id asignado y la fecha se fija al
// crear (fechaIngreso del cliente o el día actual).
type NuevaVacante struct {
	Nombre       string
	Area         string
	Requisitor   string
	TipoProceso  string
	Tipo         string
	Prioridad    string
	Comentarios  string
	Estatus      string
	FechaIngreso string
	Habilidades  json.RawMessage
	Terna        json.RawMessage
}

// CambiosVacante es el reemplazo completo de los campos mutables. Quedan
// fuera id, folio y fechaInicio, que son inmutables tras el alta.
type CambiosVacante struct {
	Nombre      string
	Area        string
	Requisitor  string
	TipoProceso string
	Tipo        string
	Prioridad   string
	Comentarios string
	Estatus     string
	Habilidades json.RawMessage
	Terna       json.RawMessage
}

// VacanteCreada es la respuesta del alta: el id asignado por el motor,
// el folio derivado y la fecha de inicio fijada.
type VacanteCreada struct {
	ID          int64   `json:"id"`
	Folio       *string `json:"folio"`
	FechaInicio string  `json:"fechaInicio"`
}

// EstatusInicial se asigna cuando el alta no trae estatus.
const EstatusInicial = "Abierta"

const formatoFecha = "2006-01-02"

// folioPara deriva el folio PL-AAAAMMDD-#### a partir del id ya
// asignado. La unicidad descansa solo en la monotonía del id; la fecha
// es informativa.
func folioPara(id int64, fecha time.Time) string {
	return fmt.Sprintf("PL-%s-%04d", fecha.Format("20060102"), id)
}

// fechaInicioDesde fija la fecha de inicio al crear: si el cliente mandó
// una fecha bien formada se trunca a sus primeros 10 caracteres
// (YYYY-MM-DD); si no, se usa el día actual.
func fechaInicioDesde(fechaIngreso string, ahora time.Time) string {
	s := strings.TrimSpace(fechaIngreso)
	if len(s) >= 10 {
		s = s[:10]
		if _, err := time.Parse(formatoFecha, s); err == nil {
			return s
		}
	}
	return ahora.Format(formatoFecha)
}

// decodeJSONColumn normaliza lo leído de una columna JSON. SQLite guarda
// texto y Postgres JSONB; además hay filas históricas con el valor
// doblemente codificado (un string JSON que contiene JSON), que aquí se
// desenvuelven una vez. Devuelve nil para NULL, vacío o texto corrupto.
func decodeJSONColumn(raw []byte) json.RawMessage {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil
	}
	res := gjson.Parse(s)
	if res.Type == gjson.String {
		if interno := strings.TrimSpace(res.String()); gjson.Valid(interno) {
			if interno == "null" {
				return nil
			}
			return json.RawMessage(interno)
		}
	}
	if !gjson.Valid(s) {
		return nil
	}
	return json.RawMessage(s)
}

// encodeJSONColumn prepara un valor JSON para escribirlo: NULL para
// vacío/null y texto serializado en lo demás. El mismo parámetro sirve
// para TEXT (SQLite) y JSONB (Postgres).
func encodeJSONColumn(v json.RawMessage) (any, error) {
	s := strings.TrimSpace(string(v))
	if s == "" || s == "null" {
		return nil, nil
	}
	if !json.Valid([]byte(s)) {
		return nil, fmt.Errorf("valor JSON inválido: %q", s)
	}
	return s, nil
}
