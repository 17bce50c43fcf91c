// Package query builds and executes the small, fixed set of statement shapes
// used against a single table: insert, update, delete and select with an
// optional filter.
//
// A descriptor type supplies the table name, the column list and the filter
// clause. Filter clauses use a bare "$" for each positional parameter; the
// builder numbers them after any SET arguments, so "id = $" in an UPDATE
// with two SET columns becomes "id = $3".
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidDescriptor is returned when a descriptor has no table, no
	// columns, or no filter where one is required.
	ErrInvalidDescriptor = errors.New("query: invalid descriptor")

	// ErrPlaceholderMismatch is returned when the number of "$" placeholders
	// in a filter clause differs from the number of filter arguments.
	ErrPlaceholderMismatch = errors.New("query: placeholder count does not match arguments")
)

// Statement is a SQL string with its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Insertable describes a row to insert.
type Insertable interface {
	Table() string
	InsertColumns() []string
	InsertArgs() []any
}

// Filtered describes a WHERE clause.
type Filtered interface {
	Where() string
	WhereArgs() []any
}

// Updatable describes a column subset to rewrite on the filtered rows.
type Updatable interface {
	Filtered
	Table() string
	UpdateColumns() []string
	UpdateArgs() []any
}

// Deletable describes rows to delete.
type Deletable interface {
	Filtered
	Table() string
}

// Queryable describes rows to select. An empty Where selects every row.
type Queryable interface {
	Filtered
	Table() string
	SelectColumns() []string
}

func BuildInsert(e Insertable) (Statement, error) {
	cols := e.InsertColumns()
	args := e.InsertArgs()
	if strings.TrimSpace(e.Table()) == "" || len(cols) == 0 {
		return Statement{}, ErrInvalidDescriptor
	}
	if len(cols) != len(args) {
		return Statement{}, fmt.Errorf("%w: %d columns, %d values", ErrPlaceholderMismatch, len(cols), len(args))
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		e.Table(),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)
	return Statement{SQL: sql, Args: args}, nil
}

// BuildInsertReturning is BuildInsert with a RETURNING clause for column.
func BuildInsertReturning(e Insertable, column string) (Statement, error) {
	if strings.TrimSpace(column) == "" {
		return Statement{}, ErrInvalidDescriptor
	}
	stmt, err := BuildInsert(e)
	if err != nil {
		return Statement{}, err
	}
	stmt.SQL += " RETURNING " + column
	return stmt, nil
}

func BuildUpdate(e Updatable) (Statement, error) {
	cols := e.UpdateColumns()
	args := e.UpdateArgs()
	if strings.TrimSpace(e.Table()) == "" || len(cols) == 0 || strings.TrimSpace(e.Where()) == "" {
		return Statement{}, ErrInvalidDescriptor
	}
	if len(cols) != len(args) {
		return Statement{}, fmt.Errorf("%w: %d columns, %d values", ErrPlaceholderMismatch, len(cols), len(args))
	}

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = col + " = $" + strconv.Itoa(i+1)
	}

	where, err := bindPlaceholders(e.Where(), len(cols)+1, len(e.WhereArgs()))
	if err != nil {
		return Statement{}, err
	}

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s", e.Table(), strings.Join(sets, ", "), where)
	all := make([]any, 0, len(args)+len(e.WhereArgs()))
	all = append(all, args...)
	all = append(all, e.WhereArgs()...)
	return Statement{SQL: sql, Args: all}, nil
}

func BuildDelete(e Deletable) (Statement, error) {
	if strings.TrimSpace(e.Table()) == "" || strings.TrimSpace(e.Where()) == "" {
		return Statement{}, ErrInvalidDescriptor
	}
	where, err := bindPlaceholders(e.Where(), 1, len(e.WhereArgs()))
	if err != nil {
		return Statement{}, err
	}
	return Statement{
		SQL:  fmt.Sprintf("DELETE FROM %s WHERE %s", e.Table(), where),
		Args: e.WhereArgs(),
	}, nil
}

func BuildSelect(e Queryable) (Statement, error) {
	cols := e.SelectColumns()
	if strings.TrimSpace(e.Table()) == "" || len(cols) == 0 {
		return Statement{}, ErrInvalidDescriptor
	}

	sql := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), e.Table())
	if strings.TrimSpace(e.Where()) == "" {
		if len(e.WhereArgs()) != 0 {
			return Statement{}, ErrPlaceholderMismatch
		}
		return Statement{SQL: sql}, nil
	}

	where, err := bindPlaceholders(e.Where(), 1, len(e.WhereArgs()))
	if err != nil {
		return Statement{}, err
	}
	return Statement{SQL: sql + " WHERE " + where, Args: e.WhereArgs()}, nil
}

// bindPlaceholders numbers every bare "$" in clause starting at start.
// A "$" already followed by a digit is left untouched and not counted.
func bindPlaceholders(clause string, start, want int) (string, error) {
	var b strings.Builder
	b.Grow(len(clause) + want*2)

	n := start
	for i := 0; i < len(clause); i++ {
		c := clause[i]
		if c != '$' || (i+1 < len(clause) && isDigit(clause[i+1])) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
		n++
	}

	if got := n - start; got != want {
		return "", fmt.Errorf("%w: %d placeholders, %d values", ErrPlaceholderMismatch, got, want)
	}
	return b.String(), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
