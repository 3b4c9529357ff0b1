package repository

import (
	"context"

	"apartment_rent/utils/errDefs"

	"github.com/sirupsen/logrus"
)

// Repo wires the entity façades and the unit of work executor to one database.
type Repo struct {
	DB         *Database
	Tx         *TransactionManager
	Accounts   *AccountDAO
	Apartments *ApartmentDAO
	Bookings   *BookingDAO
	Orders     *OrderDAO
	log        logrus.FieldLogger
	Metrics    *Metrics
}

func NewRepo(db *Database, log logrus.FieldLogger, metrics *Metrics) *Repo {
	if log == nil {
		log = logrus.StandardLogger()
	}
	var source ConnectionSource
	if db.IsEnabled() {
		source = db.Conn
	}
	return &Repo{
		DB:         db,
		Tx:         NewTransactionManager(source, log, metrics),
		Accounts:   NewAccountDAO(db.Dialect, log, metrics),
		Apartments: NewApartmentDAO(db.Dialect, log, metrics),
		Bookings:   NewBookingDAO(db.Dialect, log, metrics),
		Orders:     NewOrderDAO(db.Dialect, log, metrics),
		log:        log,
		Metrics:    metrics,
	}
}

// PrepareSchema creates the missing tables inside one unit of work.
func (r *Repo) PrepareSchema(ctx context.Context) error {
	if !r.DB.IsEnabled() {
		return errDefs.ErrDatabaseOffline
	}
	_, err := Run(ctx, r.Tx, func(ctx context.Context, tx Executor) (struct{}, error) {
		return struct{}{}, PrepareSchema(ctx, tx, r.DB.Dialect, r.log)
	})
	return err
}
