package querybuilder_test

import (
	"testing"

	"apartment_rent/utils/errDefs"
	"apartment_rent/utils/querybuilder"

	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	nine := int64(9)
	tests := []struct {
		name         string
		build        func(b *querybuilder.Builder) *querybuilder.Builder
		dialect      querybuilder.Dialect
		expectedSQL  string
		expectedArgs []any
	}{
		{
			name: "Target only",
			build: func(b *querybuilder.Builder) *querybuilder.Builder {
				return b.SetTarget("booking")
			},
			dialect:      querybuilder.MySQL,
			expectedSQL:  "SELECT * FROM booking",
			expectedArgs: []any{},
		},
		{
			name: "Window for the third page of eight",
			build: func(b *querybuilder.Builder) *querybuilder.Builder {
				return b.SetTarget("booking").Limit(17, 8)
			},
			dialect:      querybuilder.MySQL,
			expectedSQL:  "SELECT * FROM booking LIMIT ? OFFSET ?",
			expectedArgs: []any{8, 16},
		},
		{
			name: "Fields are ANDed and rebound for postgres",
			build: func(b *querybuilder.Builder) *querybuilder.Builder {
				return b.SetTarget("apartment").
					Select("id", "title").
					WhereField("apartment_class", "lux").
					WhereField("state", true).
					OrderBy("price", true).
					Limit(1, 8)
			},
			dialect:      querybuilder.Postgres,
			expectedSQL:  "SELECT id, title FROM apartment WHERE apartment_class = $1 AND state = $2 ORDER BY price DESC LIMIT $3 OFFSET $4",
			expectedArgs: []any{"lux", true, 8, 0},
		},
		{
			name: "Dynamic clause values precede field values",
			build: func(b *querybuilder.Builder) *querybuilder.Builder {
				return b.SetTarget("apartment").
					Select("apartment.id").
					WithDynamicClause("JOIN %s b ON b.apartment_id = apartment.id AND b.account_id = ?", "booking").
					Bind(int64(4)).
					WhereField("apartment.state", false)
			},
			dialect:      querybuilder.Postgres,
			expectedSQL:  "SELECT apartment.id FROM apartment JOIN booking b ON b.apartment_id = apartment.id AND b.account_id = $1 WHERE apartment.state = $2",
			expectedArgs: []any{int64(4), false},
		},
		{
			name: "Nil values compare with IS NULL",
			build: func(b *querybuilder.Builder) *querybuilder.Builder {
				return b.SetTarget("apartment_order").
					WhereField("apartment_id", nil).
					WhereField("account_id", (*int64)(nil)).
					WhereField("state", true)
			},
			dialect:      querybuilder.Postgres,
			expectedSQL:  "SELECT * FROM apartment_order WHERE apartment_id IS NULL AND account_id IS NULL AND state = $1",
			expectedArgs: []any{true},
		},
		{
			name: "Non nil pointer is bound",
			build: func(b *querybuilder.Builder) *querybuilder.Builder {
				return b.SetTarget("apartment_order").WhereField("apartment_id", &nine)
			},
			dialect:      querybuilder.MySQL,
			expectedSQL:  "SELECT * FROM apartment_order WHERE apartment_id = ?",
			expectedArgs: []any{&nine},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := tt.build(querybuilder.New(tt.dialect)).Build()
			require.NoError(t, err)
			require.Equal(t, tt.expectedSQL, q.SQL)
			require.Equal(t, tt.expectedArgs, q.Args)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name        string
		build       func(b *querybuilder.Builder) *querybuilder.Builder
		expectedErr error
		errorMsg    string
	}{
		{
			name:        "No target",
			build:       func(b *querybuilder.Builder) *querybuilder.Builder { return b.WhereField("id", 1) },
			expectedErr: errDefs.ErrIncompleteQuery,
		},
		{
			name:        "Zero offset",
			build:       func(b *querybuilder.Builder) *querybuilder.Builder { return b.SetTarget("booking").Limit(0, 8) },
			expectedErr: errDefs.ErrInvalidArgument,
			errorMsg:    "offset needs to be 1 or greater",
		},
		{
			name:        "Zero count",
			build:       func(b *querybuilder.Builder) *querybuilder.Builder { return b.SetTarget("booking").Limit(1, 0) },
			expectedErr: errDefs.ErrInvalidArgument,
			errorMsg:    "count needs to be 1 or greater",
		},
		{
			name: "Injected field name",
			build: func(b *querybuilder.Builder) *querybuilder.Builder {
				return b.SetTarget("account").WhereField("login = 'x' OR 1=1 --", "x")
			},
			expectedErr: errDefs.ErrInvalidArgument,
		},
		{
			name: "Injected substitution",
			build: func(b *querybuilder.Builder) *querybuilder.Builder {
				return b.SetTarget("apartment").WithDynamicClause("JOIN %s b ON TRUE", "booking; DROP TABLE account")
			},
			expectedErr: errDefs.ErrInvalidArgument,
		},
		{
			name: "Substitution count mismatch",
			build: func(b *querybuilder.Builder) *querybuilder.Builder {
				return b.SetTarget("apartment").WithDynamicClause("JOIN %s b ON b.id = %s.id", "booking")
			},
			expectedErr: errDefs.ErrInvalidArgument,
		},
		{
			name: "Missing bound value",
			build: func(b *querybuilder.Builder) *querybuilder.Builder {
				return b.SetTarget("apartment").WithDynamicClause("JOIN booking b ON b.account_id = ?")
			},
			expectedErr: errDefs.ErrInvalidArgument,
			errorMsg:    "1 placeholders but 0 values",
		},
		{
			name: "Value bound without a placeholder",
			build: func(b *querybuilder.Builder) *querybuilder.Builder {
				return b.SetTarget("apartment").WithDynamicClause("JOIN booking b ON b.apartment_id = apartment.id").Bind(int64(1))
			},
			expectedErr: errDefs.ErrInvalidArgument,
			errorMsg:    "0 placeholders but 1 values",
		},
		{
			name: "First error sticks",
			build: func(b *querybuilder.Builder) *querybuilder.Builder {
				return b.SetTarget("booking").Limit(-1, 8).OrderBy("bad column", false)
			},
			expectedErr: errDefs.ErrInvalidArgument,
			errorMsg:    "offset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build(querybuilder.New(querybuilder.Postgres)).Build()
			require.ErrorIs(t, err, tt.expectedErr)
			if tt.errorMsg != "" {
				require.Contains(t, err.Error(), tt.errorMsg)
			}
		})
	}
}

func TestDialectFor(t *testing.T) {
	d, err := querybuilder.DialectFor("PostgreSQL")
	require.NoError(t, err)
	require.Equal(t, querybuilder.Postgres, d)
	require.Equal(t, "UPDATE apartment SET title = $1 WHERE id = $2", d.Rebind("UPDATE apartment SET title = ? WHERE id = ?"))

	d, err = querybuilder.DialectFor("sqlite3")
	require.NoError(t, err)
	require.True(t, d.Returning)

	_, err = querybuilder.DialectFor("oracle")
	require.ErrorIs(t, err, errDefs.ErrInvalidArgument)
}
