package querybuilder

import (
	"fmt"
	"strings"

	"apartment_rent/utils/errDefs"

	"github.com/jmoiron/sqlx"
)

// Dialect describes how a driver expects placeholders and generated keys.
type Dialect struct {
	Name string
	// Bind is one of the sqlx bind types (sqlx.QUESTION, sqlx.DOLLAR)
	Bind int
	// Returning reports whether INSERT ... RETURNING is available.
	Returning bool
}

var (
	Postgres = Dialect{Name: "postgres", Bind: sqlx.DOLLAR, Returning: true}
	MySQL    = Dialect{Name: "mysql", Bind: sqlx.QUESTION}
	SQLite   = Dialect{Name: "sqlite", Bind: sqlx.QUESTION, Returning: true}
)

func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("%w: unsupported driver %q", errDefs.ErrInvalidArgument, driver)
}

// Rebind turns `?` placeholders into the ones the dialect understands.
func (d Dialect) Rebind(query string) string {
	return sqlx.Rebind(d.Bind, query)
}
