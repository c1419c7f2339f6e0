package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// Los nombres de columna van en minúsculas a propósito: Postgres baja a
// minúsculas los identificadores sin comillas, y SQLite los compara sin
// distinguir mayúsculas, así que el mismo DDL sirve en ambos motores.
// El mapeo de vuelta a los nombres camelCase del modelo (fechaInicio,
// tipoProceso) vive en los structs de models.go.
type columnaDef struct {
	nombre   string
	sqlite   string
	postgres string
}

const tablaVacantes = "vacantes"

// Orden de columnas del esquema objetivo; la migración solo agrega las
// que falten, nunca elimina ni cambia tipos.
var columnasVacantes = []columnaDef{
	{"folio", "TEXT", "TEXT"},
	{"nombre", "TEXT NOT NULL DEFAULT ''", "TEXT NOT NULL DEFAULT ''"},
	{"area", "TEXT NOT NULL DEFAULT ''", "TEXT NOT NULL DEFAULT ''"},
	{"requisitor", "TEXT NOT NULL DEFAULT ''", "TEXT NOT NULL DEFAULT ''"},
	{"tipoproceso", "TEXT NOT NULL DEFAULT ''", "TEXT NOT NULL DEFAULT ''"},
	{"tipo", "TEXT NOT NULL DEFAULT ''", "TEXT NOT NULL DEFAULT ''"},
	{"prioridad", "TEXT NOT NULL DEFAULT ''", "TEXT NOT NULL DEFAULT ''"},
	{"comentarios", "TEXT NOT NULL DEFAULT ''", "TEXT NOT NULL DEFAULT ''"},
	{"estatus", "TEXT NOT NULL DEFAULT ''", "TEXT NOT NULL DEFAULT ''"},
	// fechainicio se guarda como texto ISO YYYY-MM-DD en ambos motores
	// para que el valor viaje intacto hacia el API.
	{"fechainicio", "TEXT", "TEXT"},
	{"habilidades", "TEXT", "JSONB"},
	{"terna", "TEXT", "JSONB"},
}

// EnsurePostgresSchema deja la tabla de vacantes al día en Postgres.
// Toda la rutina es idempotente y de mejor esfuerzo: cada paso que falla
// se registra y se continúa con el siguiente, porque en un arranque
// parcial previo las columnas pueden existir ya. El error devuelto agrupa
// los fallos para que el llamador decida si seguir arrancando.
func EnsurePostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("db es nil")
	}

	var errs []error

	if _, err := db.Exec(ddlCrearTablaPostgres()); err != nil {
		errs = append(errs, fmt.Errorf("crear tabla vacantes: %w", err))
		slog.Warn("migración: crear tabla vacantes falló", "err", err)
	}

	// Columnas agregadas después de la primera versión del esquema; el
	// IF NOT EXISTS hace que repetir la migración nunca truene.
	for _, col := range columnasVacantes {
		stmt := fmt.Sprintf("ALTER TABLE vacantes ADD COLUMN IF NOT EXISTS %s %s", col.nombre, col.postgres)
		if _, err := db.Exec(stmt); err != nil {
			errs = append(errs, fmt.Errorf("agregar columna %s: %w", col.nombre, err))
			slog.Warn("migración: agregar columna falló, se omite", "columna", col.nombre, "err", err)
		}
	}

	// El listado del API siempre es "más recientes primero".
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_vacantes_id_desc ON vacantes (id DESC)`); err != nil {
		errs = append(errs, fmt.Errorf("crear índice idx_vacantes_id_desc: %w", err))
		slog.Warn("migración: crear índice falló", "err", err)
	}

	// Inserciones manuales o restauraciones dejan la secuencia detrás del
	// MAX(id) real y las altas siguientes chocan con ids existentes;
	// se realinea en cada arranque.
	if _, err := db.Exec(`SELECT setval(pg_get_serial_sequence('vacantes','id'), COALESCE((SELECT MAX(id) FROM vacantes), 0) + 1, false)`); err != nil {
		errs = append(errs, fmt.Errorf("resincronizar secuencia de id: %w", err))
		slog.Warn("migración: resincronizar secuencia falló", "err", err)
	}

	return errors.Join(errs...)
}

func ddlCrearTablaPostgres() string {
	stmt := `CREATE TABLE IF NOT EXISTS vacantes (
  id SERIAL PRIMARY KEY`
	for _, col := range columnasVacantes {
		stmt += ",\n  " + col.nombre + " " + col.postgres
	}
	return stmt + "\n)"
}
