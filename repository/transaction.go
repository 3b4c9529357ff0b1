package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"apartment_rent/utils/errDefs"

	"github.com/sirupsen/logrus"
)

// ConnectionSource hands out one connection per unit of work. *sql.DB is one.
type ConnectionSource interface {
	Conn(ctx context.Context) (*sql.Conn, error)
}

// Operation is the work a unit of work wraps. Every statement it issues goes
// through tx; nested work reuses the same tx instead of starting another unit.
type Operation[R any] func(ctx context.Context, tx Executor) (R, error)

type unitKey struct{}

// InUnitOfWork reports whether ctx was handed out by Execute.
func InUnitOfWork(ctx context.Context) bool {
	return ctx.Value(unitKey{}) != nil
}

type TransactionManager struct {
	source  ConnectionSource
	log     logrus.FieldLogger
	metrics *Metrics
}

func NewTransactionManager(source ConnectionSource, log logrus.FieldLogger, metrics *Metrics) *TransactionManager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &TransactionManager{source: source, log: log, metrics: metrics}
}

// Run takes a connection from the source and executes op on it.
func Run[R any](ctx context.Context, tm *TransactionManager, op Operation[R]) (R, error) {
	var zero R
	if InUnitOfWork(ctx) {
		return zero, errDefs.ErrNestedUnitOfWork
	}
	if tm.source == nil {
		return zero, errDefs.ErrDatabaseOffline
	}
	conn, err := tm.source.Conn(ctx)
	if err != nil {
		return zero, errDefs.Persistence("acquire connection", err)
	}
	return Execute(ctx, tm, conn, op)
}

// Execute runs op inside one transaction on conn: commit when op returns
// normally, rollback when it fails or panics. conn is released exactly once
// before Execute returns, whatever the outcome.
func Execute[R any](ctx context.Context, tm *TransactionManager, conn *sql.Conn, op Operation[R]) (result R, err error) {
	var zero R
	defer func() {
		if cerr := conn.Close(); cerr != nil && !errors.Is(cerr, sql.ErrConnDone) {
			tm.log.WithError(cerr).Warn("releasing connection failed")
		}
	}()

	if InUnitOfWork(ctx) {
		return zero, errDefs.ErrNestedUnitOfWork
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return zero, errDefs.Persistence("begin transaction", err)
	}
	tm.log.Debug("transaction started")

	defer func() {
		if p := recover(); p != nil {
			tm.rollback(tx, fmt.Errorf("%w: panic: %v", errDefs.ErrInternalServerError, p))
			panic(p)
		}
	}()

	result, err = op(context.WithValue(ctx, unitKey{}, tx), tx)
	if err != nil {
		return zero, tm.rollback(tx, err)
	}

	if err = tx.Commit(); err != nil {
		tm.metrics.transaction("rollback")
		tm.log.WithError(err).Warn("commit failed")
		return zero, errDefs.Persistence("commit transaction", err)
	}
	tm.metrics.transaction("commit")
	tm.log.Debug("transaction committed")
	return result, nil
}

// rollback returns cause, joined with the rollback failure if there was one.
func (tm *TransactionManager) rollback(tx *sql.Tx, cause error) error {
	tm.metrics.transaction("rollback")
	rbErr := tx.Rollback()
	if rbErr == nil || errors.Is(rbErr, sql.ErrTxDone) {
		tm.log.WithError(cause).Warn("transaction rolled back")
		return cause
	}
	tm.log.WithError(rbErr).WithField("cause", cause.Error()).Error("rollback failed")
	return errors.Join(cause, errDefs.Persistence("rollback transaction", rbErr))
}
