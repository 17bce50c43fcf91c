package app

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usersdb/usersdb/internal/storage"
	"github.com/usersdb/usersdb/types"
)

func newState(t *testing.T) (*State, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	return &State{DB: sqlx.NewDb(conn, "postgres"), Log: zerolog.Nop()}, mock
}

func TestUsersWithoutEventsUsesSharedConnection(t *testing.T) {
	state, mock := newState(t)

	mock.ExpectExec("INSERT INTO users (name, email, state) VALUES ($1, $2, $3)").
		WithArgs("Ali", "ali@veli", int64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := state.Users().InsertUser(context.Background(), types.InsertUser{
		Name:  "Ali",
		Email: "ali@veli",
		State: types.UserStateActive,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublisherIsNilWithoutEvents(t *testing.T) {
	state, _ := newState(t)
	assert.Nil(t, state.publisher())
}

func TestExportsDisabled(t *testing.T) {
	state, _ := newState(t)
	_, err := state.Exports(context.Background())
	require.ErrorIs(t, err, storage.ErrDisabled)
}

func TestClose(t *testing.T) {
	state, mock := newState(t)
	mock.ExpectClose()

	require.NoError(t, state.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}
