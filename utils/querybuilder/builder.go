// Package querybuilder assembles parameterized SELECT statements.
//
// Only identifiers and clause templates are written into the SQL text and every
// identifier is checked against a strict pattern. Values always travel as bound
// arguments. Templates handed to WithDynamicClause must be compile-time constants.
package querybuilder

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"apartment_rent/utils/errDefs"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Query is a finished statement together with its bound values.
type Query struct {
	SQL  string
	Args []any
}

type Builder struct {
	dialect  Dialect
	distinct bool
	target   string
	columns  []string
	joins    []string
	where    []string
	orderBy  []string
	limit    string
	args     []any
	tail     []any
	window   []any
	// placeholders counts the `?` of the dynamic clauses
	placeholders int
	err          error
}

func New(dialect Dialect) *Builder {
	return &Builder{dialect: dialect}
}

func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

func (b *Builder) fail(format string, a ...any) *Builder {
	if b.err == nil {
		b.err = fmt.Errorf("%w: "+format, append([]any{errDefs.ErrInvalidArgument}, a...)...)
	}
	return b
}

// SetTarget selects the table the statement reads from.
func (b *Builder) SetTarget(name string) *Builder {
	if !ValidIdentifier(name) {
		return b.fail("target %q is not an identifier", name)
	}
	b.target = name
	return b
}

// Select restricts the column list. Without it the statement selects `*`.
func (b *Builder) Select(columns ...string) *Builder {
	for _, c := range columns {
		if !ValidIdentifier(c) {
			return b.fail("column %q is not an identifier", c)
		}
	}
	b.columns = append(b.columns, columns...)
	return b
}

func (b *Builder) Distinct() *Builder {
	b.distinct = true
	return b
}

// WhereField appends `name = ?`, or `name IS NULL` when value is nil or a nil
// pointer. Repeated calls are joined with AND.
func (b *Builder) WhereField(name string, value any) *Builder {
	if !ValidIdentifier(name) {
		return b.fail("field %q is not an identifier", name)
	}
	if isNull(value) {
		b.where = append(b.where, name+" IS NULL")
		return b
	}
	b.where = append(b.where, name+" = ?")
	b.args = append(b.args, value)
	return b
}

func isNull(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// WithDynamicClause formats template with the given identifiers and places the
// result right after the FROM part, which is where joins and extra filters go.
// Values referenced by `?` inside the template are supplied with Bind. Every `?`
// in a template is taken as a placeholder and rebound for the dialect, so
// templates can not hold `?` in string literals or use the postgres `?` operators.
func (b *Builder) WithDynamicClause(template string, substitutions ...string) *Builder {
	subs := make([]any, 0, len(substitutions))
	for _, s := range substitutions {
		if !ValidIdentifier(s) {
			return b.fail("substitution %q is not an identifier", s)
		}
		subs = append(subs, s)
	}
	clause := fmt.Sprintf(template, subs...)
	if strings.Contains(clause, "%!") {
		return b.fail("template %q does not take %d substitutions", template, len(substitutions))
	}
	b.joins = append(b.joins, strings.TrimSpace(clause))
	b.placeholders += strings.Count(clause, "?")
	return b
}

// Bind appends values for the placeholders of the dynamic clauses.
func (b *Builder) Bind(values ...any) *Builder {
	b.tail = append(b.tail, values...)
	return b
}

func (b *Builder) OrderBy(column string, desc bool) *Builder {
	if !ValidIdentifier(column) {
		return b.fail("order column %q is not an identifier", column)
	}
	if desc {
		column += " DESC"
	}
	b.orderBy = append(b.orderBy, column)
	return b
}

// Limit bounds the result to count rows starting at the 1-based row offset.
func (b *Builder) Limit(offset, count int) *Builder {
	if offset < 1 {
		return b.fail("offset needs to be 1 or greater but it is %v", offset)
	}
	if count < 1 {
		return b.fail("count needs to be 1 or greater but it is %v", count)
	}
	b.limit = "LIMIT ? OFFSET ?"
	b.window = []any{count, offset - 1}
	return b
}

func (b *Builder) Build() (q Query, err error) {
	if b.err != nil {
		return q, b.err
	}
	if b.target == "" {
		return q, fmt.Errorf("%w: no target set", errDefs.ErrIncompleteQuery)
	}

	columns := "*"
	if len(b.columns) > 0 {
		columns = strings.Join(b.columns, ", ")
	}
	parts := []string{"SELECT"}
	if b.distinct {
		parts = append(parts, "DISTINCT")
	}
	parts = append(parts, columns, "FROM", b.target)
	parts = append(parts, b.joins...)
	if len(b.where) > 0 {
		parts = append(parts, "WHERE", strings.Join(b.where, " AND "))
	}
	if len(b.orderBy) > 0 {
		parts = append(parts, "ORDER BY", strings.Join(b.orderBy, ", "))
	}
	if b.limit != "" {
		parts = append(parts, b.limit)
	}

	// joins come before WHERE in the text, so their values go first
	args := make([]any, 0, len(b.tail)+len(b.args)+len(b.window))
	args = append(args, b.tail...)
	args = append(args, b.args...)
	args = append(args, b.window...)

	if b.placeholders != len(b.tail) {
		return q, fmt.Errorf("%w: dynamic clauses have %d placeholders but %d values", errDefs.ErrInvalidArgument, b.placeholders, len(b.tail))
	}
	return Query{SQL: b.dialect.Rebind(strings.Join(parts, " ")), Args: args}, nil
}
