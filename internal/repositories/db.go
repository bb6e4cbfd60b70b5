package repositories

import "database/sql"

// dbtx is the slice of *sql.DB / *sql.Tx the repositories need, so the same
// repository code runs standalone and inside the conversion transaction.
type dbtx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}
