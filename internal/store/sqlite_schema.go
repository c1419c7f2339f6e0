package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// EnsureSQLiteSchema deja la tabla de vacantes al día en SQLite: crea la
// tabla si no existe y agrega las columnas que falten con ALTER TABLE
// aditivos. Nunca elimina, renombra ni cambia el tipo de una columna
// existente; volver a ejecutarla sobre un esquema ya migrado es inocuo.
func EnsureSQLiteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("db es nil")
	}

	var existe int
	err := db.QueryRow(`SELECT 1 FROM sqlite_master WHERE type='table' AND name='vacantes' LIMIT 1`).Scan(&existe)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("consultar estado del esquema SQLite: %w", err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		if err := crearTablaVacantesSQLite(db); err != nil {
			return err
		}
	}
	return asegurarColumnasVacantesSQLite(db)
}

func crearTablaVacantesSQLite(db *sql.DB) error {
	stmt := `CREATE TABLE IF NOT EXISTS vacantes (
  id INTEGER PRIMARY KEY AUTOINCREMENT`
	for _, col := range columnasVacantes {
		stmt += ",\n  " + col.nombre + " " + col.sqlite
	}
	stmt += "\n)"
	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("crear tabla vacantes: %w", err)
	}
	return nil
}

// asegurarColumnasVacantesSQLite compara las columnas reales (PRAGMA
// table_info) contra el esquema objetivo y agrega las faltantes dentro
// de una transacción.
func asegurarColumnasVacantesSQLite(db *sql.DB) error {
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("iniciar transacción de migración SQLite: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existentes, err := columnasActualesSQLite(ctx, tx)
	if err != nil {
		return err
	}

	for _, col := range columnasVacantes {
		if _, ok := existentes[col.nombre]; ok {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE vacantes ADD COLUMN %s %s", col.nombre, col.sqlite)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("agregar columna %s: %w", col.nombre, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("confirmar migración SQLite: %w", err)
	}
	return nil
}

func columnasActualesSQLite(ctx context.Context, tx *sql.Tx) (map[string]struct{}, error) {
	rows, err := tx.QueryContext(ctx, `PRAGMA table_info(vacantes)`)
	if err != nil {
		return nil, fmt.Errorf("consultar columnas de vacantes: %w", err)
	}
	defer rows.Close()

	cols := make(map[string]struct{})
	for rows.Next() {
		var (
			cid        int
			nombre     string
			tipo       string
			notNull    int
			porDefecto sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &nombre, &tipo, &notNull, &porDefecto, &pk); err != nil {
			return nil, fmt.Errorf("leer columnas de vacantes: %w", err)
		}
		if nombre != "" {
			cols[nombre] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recorrer columnas de vacantes: %w", err)
	}
	return cols, nil
}
