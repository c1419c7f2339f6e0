package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Store expone las operaciones CRUD de vacantes sobre el motor elegido
// al arranque. El handle de conexión se recibe una sola vez; no hay
// reinicialización ni cambio de dialecto a media ejecución.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB) *Store {
	return &Store{
		db:      db,
		dialect: DialectSQLite,
	}
}

func (s *Store) SetDialect(d Dialect) {
	if strings.TrimSpace(string(d)) == "" {
		return
	}
	s.dialect = d
}

const columnasSelect = `id, folio, nombre, area, requisitor, tipoproceso, tipo, prioridad, comentarios, estatus, fechainicio, habilidades, terna`

// ListVacantes devuelve todas las vacantes, más recientes primero.
// No hay paginación: el recorrido completo de la tabla es el costo
// aceptado para este volumen.
func (s *Store) ListVacantes(ctx context.Context) ([]Vacante, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+columnasSelect+` FROM vacantes ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listar vacantes: %w", err)
	}
	defer rows.Close()

	vacantes := make([]Vacante, 0, 16)
	for rows.Next() {
		v, err := escanearVacante(rows)
		if err != nil {
			return nil, err
		}
		vacantes = append(vacantes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recorrer vacantes: %w", err)
	}
	return vacantes, nil
}

func (s *Store) GetVacante(ctx context.Context, id int64) (Vacante, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT `+columnasSelect+` FROM vacantes WHERE id=?`), id)
	v, err := escanearVacante(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Vacante{}, ErrVacanteNoEncontrada
		}
		return Vacante{}, err
	}
	return v, nil
}

// CreateVacante da de alta en dos fases dentro de una sola transacción:
// inserta la fila con folio NULL, deriva el folio del id que asignó el
// motor y actualiza esa misma fila antes de confirmar. Así ningún lector
// concurrente observa una vacante sin folio y el folio se asigna
// exactamente una vez.
func (s *Store) CreateVacante(ctx context.Context, n NuevaVacante) (VacanteCreada, error) {
	ahora := time.Now()
	fechaInicio := fechaInicioDesde(n.FechaIngreso, ahora)
	estatus := strings.TrimSpace(n.Estatus)
	if estatus == "" {
		estatus = EstatusInicial
	}

	habilidades, err := encodeJSONColumn(n.Habilidades)
	if err != nil {
		return VacanteCreada{}, fmt.Errorf("serializar habilidades: %w", err)
	}
	terna, err := encodeJSONColumn(n.Terna)
	if err != nil {
		return VacanteCreada{}, fmt.Errorf("serializar terna: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return VacanteCreada{}, fmt.Errorf("iniciar transacción de alta: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id, err := s.insertarVacante(ctx, tx,
		n.Nombre, n.Area, n.Requisitor, n.TipoProceso, n.Tipo, n.Prioridad, n.Comentarios,
		estatus, fechaInicio, habilidades, terna)
	if err != nil {
		return VacanteCreada{}, err
	}

	folio := folioPara(id, ahora)
	if _, err := tx.ExecContext(ctx, s.dialect.rebind(`UPDATE vacantes SET folio=? WHERE id=?`), folio, id); err != nil {
		return VacanteCreada{}, fmt.Errorf("asignar folio a la vacante %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return VacanteCreada{}, fmt.Errorf("confirmar alta de vacante: %w", err)
	}
	return VacanteCreada{ID: id, Folio: &folio, FechaInicio: fechaInicio}, nil
}

// insertarVacante esconde la diferencia de cada motor para recuperar el
// id insertado: RETURNING en Postgres, LastInsertId en SQLite.
func (s *Store) insertarVacante(ctx context.Context, tx *sql.Tx, args ...any) (int64, error) {
	const insert = `
INSERT INTO vacantes(nombre, area, requisitor, tipoproceso, tipo, prioridad, comentarios, estatus, fechainicio, habilidades, terna)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if s.dialect == DialectPostgres {
		var id int64
		if err := tx.QueryRowContext(ctx, s.dialect.rebind(insert+` RETURNING id`), args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("insertar vacante: %w", err)
		}
		return id, nil
	}

	res, err := tx.ExecContext(ctx, insert, args...)
	if err != nil {
		return 0, fmt.Errorf("insertar vacante: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("obtener id de la vacante: %w", err)
	}
	return id, nil
}

// UpdateVacante reemplaza por completo los campos mutables; id, folio y
// fechaInicio no se tocan. Devuelve la fila ya actualizada.
func (s *Store) UpdateVacante(ctx context.Context, id int64, c CambiosVacante) (Vacante, error) {
	habilidades, err := encodeJSONColumn(c.Habilidades)
	if err != nil {
		return Vacante{}, fmt.Errorf("serializar habilidades: %w", err)
	}
	terna, err := encodeJSONColumn(c.Terna)
	if err != nil {
		return Vacante{}, fmt.Errorf("serializar terna: %w", err)
	}

	res, err := s.db.ExecContext(ctx, s.dialect.rebind(`
UPDATE vacantes
SET nombre=?, area=?, requisitor=?, tipoproceso=?, tipo=?, prioridad=?, comentarios=?, estatus=?, habilidades=?, terna=?
WHERE id=?`),
		c.Nombre, c.Area, c.Requisitor, c.TipoProceso, c.Tipo, c.Prioridad, c.Comentarios, c.Estatus,
		habilidades, terna, id)
	if err != nil {
		return Vacante{}, fmt.Errorf("actualizar vacante %d: %w", id, err)
	}
	afectadas, err := res.RowsAffected()
	if err != nil {
		return Vacante{}, fmt.Errorf("contar filas actualizadas: %w", err)
	}
	if afectadas == 0 {
		return Vacante{}, ErrVacanteNoEncontrada
	}
	return s.GetVacante(ctx, id)
}

// DeleteVacante elimina en firme; no hay tombstones ni cascadas.
func (s *Store) DeleteVacante(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(`DELETE FROM vacantes WHERE id=?`), id)
	if err != nil {
		return fmt.Errorf("eliminar vacante %d: %w", id, err)
	}
	afectadas, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("contar filas eliminadas: %w", err)
	}
	if afectadas == 0 {
		return ErrVacanteNoEncontrada
	}
	return nil
}

type escaneable interface {
	Scan(dest ...any) error
}

func escanearVacante(row escaneable) (Vacante, error) {
	var (
		v           Vacante
		folio       sql.NullString
		fechaInicio sql.NullString
		habilidades []byte
		terna       []byte
	)
	err := row.Scan(
		&v.ID, &folio, &v.Nombre, &v.Area, &v.Requisitor, &v.TipoProceso, &v.Tipo,
		&v.Prioridad, &v.Comentarios, &v.Estatus, &fechaInicio, &habilidades, &terna,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Vacante{}, sql.ErrNoRows
		}
		return Vacante{}, fmt.Errorf("leer vacante: %w", err)
	}
	if folio.Valid {
		v.Folio = &folio.String
	}
	if fechaInicio.Valid {
		v.FechaInicio = fechaInicio.String
	}
	v.Habilidades = decodeJSONColumn(habilidades)
	v.Terna = decodeJSONColumn(terna)
	return v, nil
}
