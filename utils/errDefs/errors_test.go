package errDefs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"apartment_rent/utils/errDefs"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestPersistenceKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := errDefs.Persistence("insert apartment", cause)

	require.ErrorIs(t, err, errDefs.ErrPersistence)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, errDefs.ErrConflict)
	require.Contains(t, err.Error(), "insert apartment")
	require.NoError(t, errDefs.Persistence("noop", nil))
}

func TestPersistenceUniqueViolation(t *testing.T) {
	tests := []struct {
		name  string
		cause error
	}{
		{name: "postgres", cause: &pq.Error{Code: "23505"}},
		{name: "mysql", cause: &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}},
		{name: "sqlite", cause: errors.New("constraint failed: UNIQUE constraint failed: account.login (2067)")},
		{name: "wrapped", cause: fmt.Errorf("exec: %w", &pq.Error{Code: "23505"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errDefs.Persistence("insert account", tt.cause)
			require.ErrorIs(t, err, errDefs.ErrPersistence)
			require.ErrorIs(t, err, errDefs.ErrDoesExist)
			require.Equal(t, http.StatusConflict, errDefs.DetermineStatus(err))
		})
	}
}

func TestDetermineStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: page 0", errDefs.ErrInvalidArgument), http.StatusBadRequest},
		{fmt.Errorf("%w: apartment 3", errDefs.ErrNotFound), http.StatusNotFound},
		{errDefs.ErrDoesExist, http.StatusConflict},
		{errDefs.ErrIncompleteQuery, http.StatusInternalServerError},
		{errDefs.ErrMapping, http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		require.Equal(t, tt.status, errDefs.DetermineStatus(tt.err), tt.err.Error())
	}
}
