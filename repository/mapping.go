package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"apartment_rent/utils/errDefs"
)

// Scanner is what Mapping.Extract reads a row through. Scan receives the
// destinations of IDColumn followed by Columns, in that order.
type Scanner interface {
	Scan(dest ...any) error
}

// Mapping binds one entity type to its table.
type Mapping[T any] struct {
	Table    string
	IDColumn string
	// Columns lists the persisted columns in bind order, without the id.
	Columns []string

	BindInsert        func(entity *T) []any
	BindUpdate        func(entity *T) []any
	Extract           func(row Scanner) (*T, error)
	ApplyGeneratedKey func(id int64, entity *T)
}

func (m Mapping[T]) allColumns() []string {
	return append([]string{m.IDColumn}, m.Columns...)
}

func (m Mapping[T]) declares(field string) bool {
	if field == m.IDColumn {
		return true
	}
	for _, c := range m.Columns {
		if c == field {
			return true
		}
	}
	return false
}

// columnScanner lines the mapping's destinations up with the columns a
// statement actually returned, so SELECT * and joined selects map too.
type columnScanner struct {
	rows      *sql.Rows
	positions []int
	width     int
}

func newColumnScanner(rows *sql.Rows, expected []string) (*columnScanner, error) {
	returned, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errDefs.ErrMapping, err)
	}
	index := make(map[string]int, len(returned))
	for i, name := range returned {
		name = strings.ToLower(name)
		if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
			name = name[dot+1:]
		}
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	positions := make([]int, len(expected))
	for i, name := range expected {
		p, ok := index[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: column %q missing from result", errDefs.ErrMapping, name)
		}
		positions[i] = p
	}
	return &columnScanner{rows: rows, positions: positions, width: len(returned)}, nil
}

func (s *columnScanner) Scan(dest ...any) error {
	if len(dest) != len(s.positions) {
		return fmt.Errorf("%w: %d destinations for %d columns", errDefs.ErrMapping, len(dest), len(s.positions))
	}
	all := make([]any, s.width)
	for i := range all {
		all[i] = new(any)
	}
	for i, p := range s.positions {
		all[p] = dest[i]
	}
	if err := s.rows.Scan(all...); err != nil {
		return fmt.Errorf("%w: %w", errDefs.ErrMapping, err)
	}
	return nil
}
