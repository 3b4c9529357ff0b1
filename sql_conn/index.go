package sql_conn

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"apartment_rent/internal/config"
	"apartment_rent/types"
	"apartment_rent/utils/errDefs"
	"apartment_rent/utils/querybuilder"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Source is an open pool together with the dialect its driver speaks.
type Source struct {
	*sql.DB
	Dialect querybuilder.Dialect
}

// driverName maps the configured driver onto the name it is registered under.
func driverName(dialect querybuilder.Dialect) string {
	return dialect.Name
}

// prepareURL adjusts a dsn so that the engine sees the same semantics on
// every driver.
func prepareURL(dialect querybuilder.Dialect, url string) (string, error) {
	if dialect != querybuilder.MySQL {
		return url, nil
	}
	cfg, err := mysql.ParseDSN(url)
	if err != nil {
		return "", fmt.Errorf("%w: mysql dsn: %v", errDefs.ErrInvalidArgument, err)
	}
	// matched rows rather than changed rows, so an update that rewrites
	// identical values still reports one row
	cfg.ClientFoundRows = true
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

func Open(ctx context.Context, cfg config.Database) (src *Source, err error) {
	dialect, err := querybuilder.DialectFor(cfg.Driver)
	if err != nil {
		return
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: no database url for %s", errDefs.ErrDatabaseOffline, dialect.Name)
	}
	url, err := prepareURL(dialect, cfg.URL)
	if err != nil {
		return
	}

	db, err := sql.Open(driverName(dialect), url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	if cfg.ConnMaxLifetime != "" {
		lifetime, err := types.ParseISO8601Duration(cfg.ConnMaxLifetime, time.Second)
		if err != nil {
			db.Close()
			return nil, err
		}
		db.SetConnMaxLifetime(lifetime)
	}

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: error pinging database: %w", errDefs.ErrDatabaseOffline, err)
	}
	return &Source{DB: db, Dialect: dialect}, nil
}
