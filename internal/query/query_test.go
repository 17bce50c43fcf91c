package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	table   string
	cols    []string
	args    []any
	where   string
	filters []any
}

func (w widget) Table() string           { return w.table }
func (w widget) InsertColumns() []string { return w.cols }
func (w widget) InsertArgs() []any       { return w.args }
func (w widget) UpdateColumns() []string { return w.cols }
func (w widget) UpdateArgs() []any       { return w.args }
func (w widget) SelectColumns() []string { return w.cols }
func (w widget) Where() string           { return w.where }
func (w widget) WhereArgs() []any        { return w.filters }

func TestBuildInsert(t *testing.T) {
	stmt, err := BuildInsert(widget{
		table: "widgets",
		cols:  []string{"name", "size"},
		args:  []any{"bolt", 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO widgets (name, size) VALUES ($1, $2)", stmt.SQL)
	assert.Equal(t, []any{"bolt", 3}, stmt.Args)
}

func TestBuildInsertReturning(t *testing.T) {
	stmt, err := BuildInsertReturning(widget{
		table: "widgets",
		cols:  []string{"name"},
		args:  []any{"bolt"},
	}, "id")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO widgets (name) VALUES ($1) RETURNING id", stmt.SQL)

	_, err = BuildInsertReturning(widget{table: "widgets", cols: []string{"name"}, args: []any{"bolt"}}, " ")
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestBuildInsertRejectsBadDescriptors(t *testing.T) {
	_, err := BuildInsert(widget{cols: []string{"name"}, args: []any{"x"}})
	assert.ErrorIs(t, err, ErrInvalidDescriptor)

	_, err = BuildInsert(widget{table: "widgets"})
	assert.ErrorIs(t, err, ErrInvalidDescriptor)

	_, err = BuildInsert(widget{table: "widgets", cols: []string{"name", "size"}, args: []any{"x"}})
	assert.ErrorIs(t, err, ErrPlaceholderMismatch)
}

func TestBuildUpdateNumbersFilterAfterSetColumns(t *testing.T) {
	stmt, err := BuildUpdate(widget{
		table:   "widgets",
		cols:    []string{"name", "size"},
		args:    []any{"bolt", 4},
		where:   "id = $ AND owner = $",
		filters: []any{int64(7), "ann"},
	})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE widgets SET name = $1, size = $2 WHERE id = $3 AND owner = $4", stmt.SQL)
	assert.Equal(t, []any{"bolt", 4, int64(7), "ann"}, stmt.Args)
}

func TestBuildUpdateRequiresFilter(t *testing.T) {
	_, err := BuildUpdate(widget{table: "widgets", cols: []string{"name"}, args: []any{"bolt"}})
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestBuildDelete(t *testing.T) {
	stmt, err := BuildDelete(widget{table: "widgets", where: "id = $", filters: []any{int64(9)}})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM widgets WHERE id = $1", stmt.SQL)
	assert.Equal(t, []any{int64(9)}, stmt.Args)

	_, err = BuildDelete(widget{table: "widgets"})
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestBuildSelect(t *testing.T) {
	stmt, err := BuildSelect(widget{
		table:   "widgets",
		cols:    []string{"id", "name"},
		where:   "size > $",
		filters: []any{2},
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM widgets WHERE size > $1", stmt.SQL)

	stmt, err = BuildSelect(widget{table: "widgets", cols: []string{"id"}})
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM widgets", stmt.SQL)
	assert.Empty(t, stmt.Args)

	_, err = BuildSelect(widget{table: "widgets", cols: []string{"id"}, filters: []any{1}})
	assert.ErrorIs(t, err, ErrPlaceholderMismatch)
}

func TestBindPlaceholders(t *testing.T) {
	tests := []struct {
		name    string
		clause  string
		start   int
		want    int
		out     string
		wantErr error
	}{
		{name: "single", clause: "id = $", start: 1, want: 1, out: "id = $1"},
		{name: "offset", clause: "id = $", start: 3, want: 1, out: "id = $3"},
		{name: "trailing and inner", clause: "a = $ OR b = $", start: 1, want: 2, out: "a = $1 OR b = $2"},
		{name: "numbered left alone", clause: "a = $1 AND b = $", start: 2, want: 1, out: "a = $1 AND b = $2"},
		{name: "too few args", clause: "a = $ AND b = $", start: 1, want: 1, wantErr: ErrPlaceholderMismatch},
		{name: "too many args", clause: "a = 1", start: 1, want: 1, wantErr: ErrPlaceholderMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bindPlaceholders(tt.clause, tt.start, tt.want)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.out, got)
		})
	}
}
