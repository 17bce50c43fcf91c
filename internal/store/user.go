package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/usersdb/usersdb/internal/query"
	"github.com/usersdb/usersdb/types"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) *UserRepository {
	return &UserRepository{db: db}
}

// Insert returns the number of rows written, 1 on success.
func (r *UserRepository) Insert(ctx context.Context, user types.InsertUser) (int64, error) {
	return query.Insert(ctx, r.db, user)
}

// Create inserts the user and returns the id the database assigned.
func (r *UserRepository) Create(ctx context.Context, user types.InsertUser) (int64, error) {
	return query.InsertReturning[int64](ctx, r.db, user, "id")
}

func (r *UserRepository) Update(ctx context.Context, user types.UpdateUser) (bool, error) {
	return query.Update(ctx, r.db, user)
}

func (r *UserRepository) UpdateState(ctx context.Context, user types.UpdateUserState) (bool, error) {
	return query.Update(ctx, r.db, user)
}

func (r *UserRepository) Delete(ctx context.Context, user types.DeleteUser) (int64, error) {
	return query.Delete(ctx, r.db, user)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (types.User, error) {
	user, err := query.Get[types.User](ctx, r.db, types.GetUser{ID: id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

func (r *UserRepository) ListByState(ctx context.Context, state types.UserState) ([]types.User, error) {
	return query.GetAll[types.User](ctx, r.db, types.GetUsersByState{State: state})
}
