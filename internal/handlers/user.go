package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/usersdb/usersdb/internal/store"
	"github.com/usersdb/usersdb/types"
)

// UserService is the set of user use-cases exposed over HTTP.
type UserService interface {
	CreateUser(ctx context.Context, user types.InsertUser) (int64, error)
	UpdateUser(ctx context.Context, user types.UpdateUser) (bool, error)
	SetUserActive(ctx context.Context, id int64) (bool, error)
	SetUserDisabled(ctx context.Context, id int64) (bool, error)
	DeleteUser(ctx context.Context, user types.DeleteUser) (int64, error)
	GetUser(ctx context.Context, id int64) (types.User, error)
	GetActiveUsers(ctx context.Context) ([]types.User, error)
}

// CreateUserRequest is the body of POST /users. State defaults to active.
type CreateUserRequest struct {
	Name  string           `json:"name"`
	Email string           `json:"email"`
	State *types.UserState `json:"state,omitempty"`
}

// UpdateUserRequest is the body of PUT /users/{id}.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateUserResponse struct {
	ID int64 `json:"id"`
}

type UpdateUserResponse struct {
	Updated bool `json:"updated"`
}

type DeleteUserResponse struct {
	Deleted int64 `json:"deleted"`
}

// UserHandler provides HTTP handlers for users.
type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// UserRouter registers user routes on the given router.
func UserRouter(r chi.Router, users UserService) {
	handler := NewUserHandler(users)

	r.Post("/", handler.CreateUser)
	r.Get("/active", handler.ListActiveUsers)
	r.Route("/{userID}", func(r chi.Router) {
		r.Get("/", handler.GetUser)
		r.Put("/", handler.UpdateUser)
		r.Delete("/", handler.DeleteUser)
		r.Post("/activate", handler.ActivateUser)
		r.Post("/disable", handler.DisableUser)
	})
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := types.UserStateActive
	if req.State != nil {
		state = *req.State
	}

	id, err := h.users.CreateUser(r.Context(), types.InsertUser{
		Name:  req.Name,
		Email: req.Email,
		State: state,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, CreateUserResponse{ID: id})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) ListActiveUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetActiveUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.users.UpdateUser(r.Context(), types.UpdateUser{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, UpdateUserResponse{Updated: updated})
}

func (h *UserHandler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	h.setState(w, r, h.users.SetUserActive)
}

func (h *UserHandler) DisableUser(w http.ResponseWriter, r *http.Request) {
	h.setState(w, r, h.users.SetUserDisabled)
}

func (h *UserHandler) setState(w http.ResponseWriter, r *http.Request, set func(context.Context, int64) (bool, error)) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := set(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update user state")
		return
	}

	writeJSON(w, http.StatusOK, UpdateUserResponse{Updated: updated})
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := h.users.DeleteUser(r.Context(), types.DeleteUser{ID: id})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, DeleteUserResponse{Deleted: deleted})
}
