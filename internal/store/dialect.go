package store

import (
	"strconv"
	"strings"
)

// Dialect representa el motor de base de datos activo. Las diferencias de
// sintaxis (placeholders, RETURNING, columnas JSON) se resuelven en este
// paquete para que nadie más tenga que preguntar por el motor.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// rebind traduce los placeholders `?` a `$1..$n` cuando el motor es
// Postgres. El resto del paquete escribe sus consultas siempre con `?`.
func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
