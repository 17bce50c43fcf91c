package query

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Insert executes the insert and returns the number of rows affected.
func Insert(ctx context.Context, db sqlx.ExecerContext, e Insertable) (int64, error) {
	stmt, err := BuildInsert(e)
	if err != nil {
		return 0, err
	}
	result, err := db.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// InsertReturning executes the insert and scans column of the new row into T.
func InsertReturning[T any](ctx context.Context, db sqlx.QueryerContext, e Insertable, column string) (T, error) {
	var out T
	stmt, err := BuildInsertReturning(e, column)
	if err != nil {
		return out, err
	}
	if err := db.QueryRowxContext(ctx, stmt.SQL, stmt.Args...).Scan(&out); err != nil {
		return out, err
	}
	return out, nil
}

// Update executes the update and reports whether at least one row matched.
func Update(ctx context.Context, db sqlx.ExecerContext, e Updatable) (bool, error) {
	stmt, err := BuildUpdate(e)
	if err != nil {
		return false, err
	}
	result, err := db.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Delete executes the delete and returns the number of rows removed.
func Delete(ctx context.Context, db sqlx.ExecerContext, e Deletable) (int64, error) {
	stmt, err := BuildDelete(e)
	if err != nil {
		return 0, err
	}
	result, err := db.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Get maps exactly one row into T. It returns sql.ErrNoRows when nothing
// matches.
func Get[T any](ctx context.Context, db sqlx.QueryerContext, e Queryable) (T, error) {
	var out T
	stmt, err := BuildSelect(e)
	if err != nil {
		return out, err
	}
	if err := sqlx.GetContext(ctx, db, &out, stmt.SQL, stmt.Args...); err != nil {
		return out, err
	}
	return out, nil
}

// GetAll maps every matching row into T. The result is empty, not nil, when
// nothing matches.
func GetAll[T any](ctx context.Context, db sqlx.QueryerContext, e Queryable) ([]T, error) {
	stmt, err := BuildSelect(e)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	if err := sqlx.SelectContext(ctx, db, &out, stmt.SQL, stmt.Args...); err != nil {
		return nil, err
	}
	return out, nil
}
