package store

import "testing"

func TestRebind(t *testing.T) {
	cases := []struct {
		dialect Dialect
		in      string
		want    string
	}{
		{DialectSQLite, `SELECT * FROM vacantes WHERE id=?`, `SELECT * FROM vacantes WHERE id=?`},
		{DialectPostgres, `SELECT * FROM vacantes WHERE id=?`, `SELECT * FROM vacantes WHERE id=$1`},
		{DialectPostgres, `UPDATE vacantes SET folio=? WHERE id=?`, `UPDATE vacantes SET folio=$1 WHERE id=$2`},
		{DialectPostgres, `SELECT 1`, `SELECT 1`},
		{DialectPostgres, ``, ``},
	}
	for _, c := range cases {
		if got := c.dialect.rebind(c.in); got != c.want {
			t.Fatalf("rebind(%q) con %s: got %q want %q", c.in, c.dialect, got, c.want)
		}
	}
}
