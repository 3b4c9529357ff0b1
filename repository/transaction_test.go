package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"apartment_rent/repository"
	"apartment_rent/utils/errDefs"
	"apartment_rent/utils/querybuilder"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func deleteApartment(dao *repository.ApartmentDAO, id int64) repository.Operation[bool] {
	return func(ctx context.Context, tx repository.Executor) (bool, error) {
		return dao.Delete(ctx, tx, id)
	}
}

func TestRunUnitOfWork(t *testing.T) {
	errRejected := errors.New("rejected by caller")
	errRollback := errors.New("rollback lost")

	tests := []struct {
		name        string
		setup       func(mock sqlmock.Sqlmock)
		op          func(dao *repository.ApartmentDAO) repository.Operation[bool]
		expectedOK  bool
		expectedErr []error
	}{
		{
			name: "Commit on success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM apartment WHERE id = $1`)).WithArgs(4).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			op:         func(dao *repository.ApartmentDAO) repository.Operation[bool] { return deleteApartment(dao, 4) },
			expectedOK: true,
		},
		{
			name: "Rollback when the operation fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM apartment`)).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectRollback()
			},
			op: func(dao *repository.ApartmentDAO) repository.Operation[bool] {
				return func(ctx context.Context, tx repository.Executor) (bool, error) {
					if _, err := dao.Delete(ctx, tx, 4); err != nil {
						return false, err
					}
					return false, errRejected
				}
			},
			expectedErr: []error{errRejected},
		},
		{
			name: "Rollback when a statement fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM apartment`)).WillReturnError(errors.New("deadlock detected"))
				mock.ExpectRollback()
			},
			op:          func(dao *repository.ApartmentDAO) repository.Operation[bool] { return deleteApartment(dao, 4) },
			expectedErr: []error{errDefs.ErrPersistence},
		},
		{
			name: "Failed rollback keeps the cause",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback().WillReturnError(errRollback)
			},
			op: func(dao *repository.ApartmentDAO) repository.Operation[bool] {
				return func(ctx context.Context, tx repository.Executor) (bool, error) {
					return false, errRejected
				}
			},
			expectedErr: []error{errRejected, errRollback, errDefs.ErrPersistence},
		},
		{
			name: "Commit failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM apartment`)).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))
			},
			op:          func(dao *repository.ApartmentDAO) repository.Operation[bool] { return deleteApartment(dao, 4) },
			expectedErr: []error{errDefs.ErrPersistence},
		},
		{
			name: "Begin failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("too many clients"))
			},
			op:          func(dao *repository.ApartmentDAO) repository.Operation[bool] { return deleteApartment(dao, 4) },
			expectedErr: []error{errDefs.ErrPersistence},
		},
		{
			name: "Nested unit of work is rejected",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			expectedErr: []error{errDefs.ErrNestedUnitOfWork},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMock(t)
			dao := repository.NewApartmentDAO(querybuilder.Postgres, quietLogger(), nil)
			tm := repository.NewTransactionManager(db, quietLogger(), nil)
			tt.setup(mock)

			op := func(ctx context.Context, tx repository.Executor) (bool, error) {
				require.True(t, repository.InUnitOfWork(ctx))
				return repository.Run(ctx, tm, deleteApartment(dao, 4))
			}
			if tt.op != nil {
				op = tt.op(dao)
			}

			ok, err := repository.Run(context.Background(), tm, op)

			if len(tt.expectedErr) > 0 {
				for _, expected := range tt.expectedErr {
					require.ErrorIs(t, err, expected)
				}
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.expectedOK, ok)
			require.NoError(t, mock.ExpectationsWereMet())
			require.Zero(t, db.Stats().InUse)
		})
	}
}

func TestRunRollsBackOnPanic(t *testing.T) {
	db, mock := setupMock(t)
	tm := repository.NewTransactionManager(db, quietLogger(), nil)
	mock.ExpectBegin()
	mock.ExpectRollback()

	require.PanicsWithValue(t, "boom", func() {
		_, _ = repository.Run(context.Background(), tm, func(ctx context.Context, tx repository.Executor) (int, error) {
			panic("boom")
		})
	})
	require.NoError(t, mock.ExpectationsWereMet())
	require.Zero(t, db.Stats().InUse)
}

func TestExecuteReleasesGivenConnection(t *testing.T) {
	db, mock := setupMock(t)
	tm := repository.NewTransactionManager(db, quietLogger(), nil)
	mock.ExpectBegin()
	mock.ExpectCommit()

	conn, err := db.Conn(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, db.Stats().InUse)

	n, err := repository.Execute(context.Background(), tm, conn, func(ctx context.Context, tx repository.Executor) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	require.Equal(t, 42, n)
	require.Zero(t, db.Stats().InUse)
	require.ErrorIs(t, conn.Close(), sql.ErrConnDone)
}

func TestRunWithoutDatabase(t *testing.T) {
	tm := repository.NewTransactionManager(nil, quietLogger(), nil)
	_, err := repository.Run(context.Background(), tm, func(ctx context.Context, tx repository.Executor) (int, error) {
		return 0, nil
	})
	require.ErrorIs(t, err, errDefs.ErrDatabaseOffline)
}

func TestTransactionMetrics(t *testing.T) {
	db, mock := setupMock(t)
	reg := prometheus.NewRegistry()
	metrics := repository.NewMetrics(reg)
	tm := repository.NewTransactionManager(db, quietLogger(), metrics)
	dao := repository.NewApartmentDAO(querybuilder.Postgres, quietLogger(), metrics)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM apartment`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := repository.Run(context.Background(), tm, deleteApartment(dao, 1))
	require.NoError(t, err)
	_, err = repository.Run(context.Background(), tm, func(ctx context.Context, tx repository.Executor) (int, error) {
		return 0, errors.New("rejected")
	})
	require.Error(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	outcomes := map[string]float64{}
	statements := uint64(0)
	for _, family := range families {
		for _, m := range family.GetMetric() {
			switch family.GetName() {
			case "rent_transactions_total":
				outcomes[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
			case "rent_statement_duration_seconds":
				statements += m.GetHistogram().GetSampleCount()
			}
		}
	}
	require.Equal(t, map[string]float64{"commit": 1, "rollback": 1}, outcomes)
	require.Equal(t, uint64(1), statements)
}
