package errDefs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

var ErrInternalServerError = errors.New("internal server error")
var ErrConflict = errors.New("conflict")
var ErrDatabaseOffline = fmt.Errorf("%w: database offline", ErrInternalServerError)
var ErrDoesExist = fmt.Errorf("%w: item already exists", ErrConflict)
var ErrBadRequest = errors.New("bad request")
var ErrMissingField = fmt.Errorf("%w: field missing", ErrBadRequest)
var ErrNotFound = errors.New("not found")

var ErrInvalidArgument = fmt.Errorf("%w: invalid argument", ErrBadRequest)
var ErrIncompleteQuery = fmt.Errorf("%w: incomplete query", ErrInternalServerError)
var ErrMapping = fmt.Errorf("%w: row does not match entity", ErrInternalServerError)
var ErrPersistence = fmt.Errorf("%w: persistence failure", ErrInternalServerError)
var ErrNestedUnitOfWork = fmt.Errorf("%w: unit of work already active", ErrInternalServerError)

// Persistence wraps a driver failure so that it matches both ErrPersistence
// and the driver error itself. Unique violations also match ErrDoesExist.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %s: %w; %w", ErrPersistence, op, ErrDoesExist, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	// modernc sqlite reports constraint failures only through the message
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func DetermineStatus(err error) (status int) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
