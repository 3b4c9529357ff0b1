package repository

import (
	"context"
	"strings"

	"apartment_rent/utils/errDefs"
	"apartment_rent/utils/querybuilder"

	"github.com/sirupsen/logrus"
)

const (
	EntityId    = "id"
	EntityState = "state"
)

var tableDefinitions = []struct {
	table string
	ddl   string
}{
	{accountMapping.Table, `
		CREATE TABLE IF NOT EXISTS account (
			id {id},
			login VARCHAR(200) UNIQUE NOT NULL,
			password VARCHAR(200) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			role VARCHAR(20) NOT NULL,
			state BOOLEAN NOT NULL
		)`},
	{apartmentMapping.Table, `
		CREATE TABLE IF NOT EXISTS apartment (
			id {id},
			title VARCHAR(200) NOT NULL,
			description TEXT NOT NULL,
			image_url VARCHAR(500) NOT NULL,
			address VARCHAR(300) NOT NULL,
			max_guests_number INTEGER NOT NULL,
			rooms_number INTEGER NOT NULL,
			apartment_class VARCHAR(20) NOT NULL,
			price BIGINT NOT NULL,
			state BOOLEAN NOT NULL
		)`},
	{bookingMapping.Table, `
		CREATE TABLE IF NOT EXISTS booking (
			id {id},
			check_in {time} NOT NULL,
			check_out {time} NOT NULL,
			price BIGINT NOT NULL,
			account_id BIGINT NOT NULL REFERENCES account (id),
			apartment_id BIGINT NOT NULL REFERENCES apartment (id),
			state BOOLEAN NOT NULL
		)`},
	{orderMapping.Table, `
		CREATE TABLE IF NOT EXISTS apartment_order (
			id {id},
			guests_number INTEGER NOT NULL,
			rooms_number INTEGER NOT NULL,
			apartment_class VARCHAR(20) NOT NULL,
			check_in {time} NOT NULL,
			check_out {time} NOT NULL,
			manager_response TEXT NOT NULL,
			account_id BIGINT NOT NULL REFERENCES account (id),
			apartment_id BIGINT REFERENCES apartment (id),
			state BOOLEAN NOT NULL
		)`},
}

func columnTypes(dialect querybuilder.Dialect) *strings.Replacer {
	switch dialect.Name {
	case querybuilder.MySQL.Name:
		return strings.NewReplacer("{id}", "BIGINT AUTO_INCREMENT PRIMARY KEY", "{time}", "DATETIME(6)")
	case querybuilder.SQLite.Name:
		return strings.NewReplacer("{id}", "INTEGER PRIMARY KEY AUTOINCREMENT", "{time}", "DATETIME")
	default:
		return strings.NewReplacer("{id}", "BIGSERIAL PRIMARY KEY", "{time}", "TIMESTAMPTZ")
	}
}

// PrepareSchema creates the tables that do not exist yet. Every table is
// attempted; the first failure is returned.
func PrepareSchema(ctx context.Context, ex Executor, dialect querybuilder.Dialect, log logrus.FieldLogger) (err error) {
	types := columnTypes(dialect)
	for _, def := range tableDefinitions {
		_, execErr := ex.ExecContext(ctx, types.Replace(def.ddl))
		logPossibleError(log.WithField("table", def.table), execErr)
		if execErr != nil && err == nil {
			err = errDefs.Persistence("create table "+def.table, execErr)
		}
	}
	return
}

func logPossibleError(log logrus.FieldLogger, err error) {
	if err != nil {
		log.WithError(err).Error("preparing table failed")
	}
}
