package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/usersdb/usersdb/internal/store"
	"github.com/usersdb/usersdb/types"
)

func newRepo(t *testing.T) (*store.UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return store.NewUserRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestUserRepository_Insert(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectExec(`INSERT INTO users (name, email, state) VALUES ($1, $2, $3)`).
		WithArgs("Ali", "ali@veli", int64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := r.Insert(context.Background(), types.InsertUser{Name: "Ali", Email: "ali@veli", State: types.UserStateActive})
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectQuery(`INSERT INTO users (name, email, state) VALUES ($1, $2, $3) RETURNING id`).
		WithArgs("Ali", "ali@veli", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(17)))

	id, err := r.Create(context.Background(), types.InsertUser{Name: "Ali", Email: "ali@veli"})
	require.NoError(t, err)
	require.Equal(t, int64(17), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectExec(`UPDATE users SET name = $1, email = $2 WHERE id = $3`).
		WithArgs("Veli", "veli@ali", int64(17)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := r.Update(context.Background(), types.UpdateUser{ID: 17, Name: "Veli", Email: "veli@ali", State: types.UserStateDisabled})
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateState_NoMatch(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectExec(`UPDATE users SET state = $1 WHERE id = $2`).
		WithArgs(int64(1), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := r.UpdateState(context.Background(), types.UpdateUserState{ID: 99, State: types.UserStateDisabled})
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectExec(`DELETE FROM users WHERE id = $1`).
		WithArgs(int64(17)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := r.Delete(context.Background(), types.DeleteUser{ID: 17})
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectQuery(`SELECT id, name, email, state FROM users WHERE id = $1`).
		WithArgs(int64(17)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "state"}).
			AddRow(int64(17), "Ali", "ali@veli", int64(0)))

	u, err := r.GetByID(context.Background(), 17)
	require.NoError(t, err)
	require.Equal(t, types.User{ID: 17, Name: "Ali", Email: "ali@veli", State: types.UserStateActive}, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectQuery(`SELECT id, name, email, state FROM users WHERE id = $1`).
		WithArgs(int64(17)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "state"}))

	_, err := r.GetByID(context.Background(), 17)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_DriverError(t *testing.T) {
	r, mock := newRepo(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery(`SELECT id, name, email, state FROM users WHERE id = $1`).
		WithArgs(int64(17)).
		WillReturnError(boom)

	_, err := r.GetByID(context.Background(), 17)
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListByState(t *testing.T) {
	r, mock := newRepo(t)
	mock.ExpectQuery(`SELECT id, name, email, state FROM users WHERE state = $1`).
		WithArgs(int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "state"}).
			AddRow(int64(1), "Ali", "ali@veli", int64(0)).
			AddRow(int64(2), "Ayse", "ayse@veli", int64(0)))

	users, err := r.ListByState(context.Background(), types.UserStateActive)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		require.Equal(t, types.UserStateActive, u.State)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}
