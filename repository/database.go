package repository

import (
	"context"
	"database/sql"

	"apartment_rent/utils/errDefs"
	"apartment_rent/utils/querybuilder"
)

type Database struct {
	Conn    *sql.DB
	Dialect querybuilder.Dialect
}

func NewDatabase(conn *sql.DB, dialect querybuilder.Dialect) *Database {
	return &Database{Conn: conn, Dialect: dialect}
}

func (d *Database) IsEnabled() bool {
	return d != nil && d.Conn != nil
}

func (d *Database) Ping(ctx context.Context) error {
	if !d.IsEnabled() {
		return errDefs.ErrDatabaseOffline
	}
	return d.Conn.PingContext(ctx)
}
