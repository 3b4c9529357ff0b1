package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"apartment_rent/utils/errDefs"
	"apartment_rent/utils/querybuilder"

	"github.com/sirupsen/logrus"
)

// Executor is the statement surface the engine needs. *sql.Tx satisfies it,
// which is how a unit of work hands its transaction to the engine.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Engine implements the data access operations once for any mapped entity.
// It never begins, commits or rolls back; it only issues statements on the
// executor it is given.
type Engine[T any] struct {
	mapping Mapping[T]
	dialect querybuilder.Dialect
	log     logrus.FieldLogger
	metrics *Metrics

	insertSQL    string
	selectSQL    string
	selectAllSQL string
	updateSQL    string
	deleteSQL    string
	countSQL     string
}

// NewEngine renders the statements of the mapping for the dialect. It panics
// when the mapping is incomplete since mappings are package level constants.
func NewEngine[T any](mapping Mapping[T], dialect querybuilder.Dialect, log logrus.FieldLogger, metrics *Metrics) *Engine[T] {
	for _, name := range append([]string{mapping.Table}, mapping.allColumns()...) {
		if !querybuilder.ValidIdentifier(name) {
			panic(fmt.Sprintf("repository: mapping identifier %q is invalid", name))
		}
	}
	if mapping.BindInsert == nil || mapping.BindUpdate == nil || mapping.Extract == nil || mapping.ApplyGeneratedKey == nil {
		panic(fmt.Sprintf("repository: mapping of %s is missing functions", mapping.Table))
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	columns := strings.Join(mapping.allColumns(), ", ")
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(mapping.Columns)), ", ")
	assignments := strings.Join(mapping.Columns, " = ?, ") + " = ?"

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", mapping.Table, strings.Join(mapping.Columns, ", "), placeholders)
	if dialect.Returning {
		insert += " RETURNING " + mapping.IDColumn
	}

	return &Engine[T]{
		mapping: mapping,
		dialect: dialect,
		log:     log.WithField("table", mapping.Table),
		metrics: metrics,

		insertSQL:    dialect.Rebind(insert),
		selectSQL:    dialect.Rebind(fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", columns, mapping.Table, mapping.IDColumn)),
		selectAllSQL: fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", columns, mapping.Table, mapping.IDColumn),
		updateSQL:    dialect.Rebind(fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", mapping.Table, assignments, mapping.IDColumn)),
		deleteSQL:    dialect.Rebind(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", mapping.Table, mapping.IDColumn)),
		countSQL:     fmt.Sprintf("SELECT COUNT(*) FROM %s", mapping.Table),
	}
}

func (e *Engine[T]) Table() string {
	return e.mapping.Table
}

// Query starts a builder reading this entity's columns from its table.
// Columns are qualified with the table name so joins stay unambiguous.
func (e *Engine[T]) Query() *querybuilder.Builder {
	qualified := make([]string, 0, len(e.mapping.Columns)+1)
	for _, c := range e.mapping.allColumns() {
		qualified = append(qualified, e.mapping.Table+"."+c)
	}
	return querybuilder.New(e.dialect).SetTarget(e.mapping.Table).Select(qualified...)
}

func (e *Engine[T]) observe(op string, query string, start time.Time) {
	elapsed := time.Since(start)
	e.metrics.statement(e.mapping.Table, op, elapsed)
	e.log.WithFields(logrus.Fields{
		"op":       op,
		"query":    query,
		"duration": elapsed,
	}).Trace("statement executed")
}

func (e *Engine[T]) persistenceError(op string, err error) error {
	return errDefs.Persistence(op+" "+e.mapping.Table, err)
}

// Insert stores entity and copies the generated id back onto it. It reports
// whether exactly one row was written.
func (e *Engine[T]) Insert(ctx context.Context, ex Executor, entity *T) (bool, error) {
	defer e.observe("insert", e.insertSQL, time.Now())
	args := e.mapping.BindInsert(entity)

	if !e.dialect.Returning {
		result, err := ex.ExecContext(ctx, e.insertSQL, args...)
		if err != nil {
			return false, e.persistenceError("insert", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return false, e.persistenceError("insert", err)
		}
		if n != 1 {
			return false, nil
		}
		id, err := result.LastInsertId()
		if err != nil {
			return false, e.persistenceError("insert", err)
		}
		e.mapping.ApplyGeneratedKey(id, entity)
		return true, nil
	}

	rows, err := ex.QueryContext(ctx, e.insertSQL, args...)
	if err != nil {
		return false, e.persistenceError("insert", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return false, e.persistenceError("insert", err)
		}
		return false, nil
	}
	var id int64
	if err := rows.Scan(&id); err != nil {
		return false, fmt.Errorf("%w: generated key of %s: %w", errDefs.ErrMapping, e.mapping.Table, err)
	}
	e.mapping.ApplyGeneratedKey(id, entity)
	if err := rows.Close(); err != nil {
		return false, e.persistenceError("insert", err)
	}
	return true, nil
}

// Get returns nil without an error when no row has the id.
func (e *Engine[T]) Get(ctx context.Context, ex Executor, id int64) (*T, error) {
	defer e.observe("get", e.selectSQL, time.Now())
	found, err := e.query(ctx, ex, "get", e.selectSQL, []any{id}, 1)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

// GetByField returns the first entity, by id, whose field equals value. Only
// columns declared by the mapping are accepted as field; value is always bound.
func (e *Engine[T]) GetByField(ctx context.Context, ex Executor, field string, value any) (*T, error) {
	if !e.mapping.declares(field) {
		return nil, fmt.Errorf("%w: %s has no field %q", errDefs.ErrInvalidArgument, e.mapping.Table, field)
	}
	q, err := e.Query().WhereField(e.mapping.Table+"."+field, value).OrderBy(e.mapping.Table+"."+e.mapping.IDColumn, false).Build()
	if err != nil {
		return nil, err
	}
	defer e.observe("getByField", q.SQL, time.Now())
	found, err := e.query(ctx, ex, "getByField", q.SQL, q.Args, 1)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

// GetAll returns every row ordered by id. An empty table gives an empty slice.
func (e *Engine[T]) GetAll(ctx context.Context, ex Executor) ([]*T, error) {
	defer e.observe("getAll", e.selectAllSQL, time.Now())
	return e.query(ctx, ex, "getAll", e.selectAllSQL, nil, 0)
}

// GetFew returns count rows ordered by id starting at the 1-based offset.
func (e *Engine[T]) GetFew(ctx context.Context, ex Executor, offset int, count int) ([]*T, error) {
	q, err := e.Query().OrderBy(e.mapping.Table+"."+e.mapping.IDColumn, false).Limit(offset, count).Build()
	if err != nil {
		return nil, err
	}
	return e.GetWithDynamicQuery(ctx, ex, q)
}

// GetWithDynamicQuery runs a prebuilt query and maps every returned row.
func (e *Engine[T]) GetWithDynamicQuery(ctx context.Context, ex Executor, q querybuilder.Query) ([]*T, error) {
	if q.SQL == "" {
		return nil, fmt.Errorf("%w: empty query for %s", errDefs.ErrIncompleteQuery, e.mapping.Table)
	}
	defer e.observe("getWithDynamicQuery", q.SQL, time.Now())
	return e.query(ctx, ex, "query", q.SQL, q.Args, 0)
}

// Update writes entity over the row with its id. Zero affected rows is not an
// error: the caller decides whether that means "not found".
func (e *Engine[T]) Update(ctx context.Context, ex Executor, entity *T) (bool, error) {
	defer e.observe("update", e.updateSQL, time.Now())
	return e.exec(ctx, ex, "update", e.updateSQL, e.mapping.BindUpdate(entity)...)
}

func (e *Engine[T]) Delete(ctx context.Context, ex Executor, id int64) (bool, error) {
	defer e.observe("delete", e.deleteSQL, time.Now())
	return e.exec(ctx, ex, "delete", e.deleteSQL, id)
}

func (e *Engine[T]) Count(ctx context.Context, ex Executor) (n int64, err error) {
	defer e.observe("count", e.countSQL, time.Now())
	rows, err := ex.QueryContext(ctx, e.countSQL)
	if err != nil {
		return 0, e.persistenceError("count", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err = rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("%w: count of %s: %w", errDefs.ErrMapping, e.mapping.Table, err)
		}
	}
	if err = rows.Err(); err != nil {
		return 0, e.persistenceError("count", err)
	}
	return n, nil
}

func (e *Engine[T]) exec(ctx context.Context, ex Executor, op string, query string, args ...any) (bool, error) {
	result, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return false, e.persistenceError(op, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, e.persistenceError(op, err)
	}
	return n == 1, nil
}

// query maps rows until limit entities are collected; limit 0 means all.
func (e *Engine[T]) query(ctx context.Context, ex Executor, op string, query string, args []any, limit int) ([]*T, error) {
	rows, err := ex.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, e.persistenceError(op, err)
	}
	defer rows.Close()

	scanner, err := newColumnScanner(rows, e.mapping.allColumns())
	if err != nil {
		return nil, err
	}

	entities := make([]*T, 0)
	for rows.Next() {
		entity, err := e.mapping.Extract(scanner)
		if err != nil {
			if !errors.Is(err, errDefs.ErrMapping) {
				err = fmt.Errorf("%w: %s: %w", errDefs.ErrMapping, e.mapping.Table, err)
			}
			return nil, err
		}
		entities = append(entities, entity)
		if limit > 0 && len(entities) == limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, e.persistenceError(op, err)
	}
	return entities, nil
}
