package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/usersdb/usersdb/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Insert(ctx context.Context, user types.InsertUser) (int64, error)
	Create(ctx context.Context, user types.InsertUser) (int64, error)
	Update(ctx context.Context, user types.UpdateUser) (bool, error)
	UpdateState(ctx context.Context, user types.UpdateUserState) (bool, error)
	Delete(ctx context.Context, user types.DeleteUser) (int64, error)
	GetByID(ctx context.Context, id int64) (types.User, error)
	ListByState(ctx context.Context, state types.UserState) ([]types.User, error)
}

// EventPublisher receives a notification after every successful mutation.
type EventPublisher interface {
	PublishUserEvent(ctx context.Context, event types.UserEvent) error
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo   UserRepository
	events EventPublisher
	log    zerolog.Logger
	now    func() time.Time
}

// NewUserService wires the service. events may be nil, in which case no
// notifications are sent.
func NewUserService(repo UserRepository, events EventPublisher, log zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		events: events,
		log:    log.With().Str("component", "user_service").Logger(),
		now:    time.Now,
	}
}

// InsertUser writes a new row and returns the number of rows affected.
func (s *UserService) InsertUser(ctx context.Context, user types.InsertUser) (int64, error) {
	n, err := s.repo.Insert(ctx, user)
	if err != nil {
		return 0, err
	}
	state := user.State
	s.publish(ctx, types.UserEvent{Type: types.UserInserted, Name: user.Name, Email: user.Email, State: &state})
	return n, nil
}

// CreateUser writes a new row and returns its id.
func (s *UserService) CreateUser(ctx context.Context, user types.InsertUser) (int64, error) {
	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return 0, err
	}
	state := user.State
	s.publish(ctx, types.UserEvent{Type: types.UserInserted, UserID: id, Name: user.Name, Email: user.Email, State: &state})
	return id, nil
}

// UpdateUser rewrites name and email. It reports whether a row matched.
func (s *UserService) UpdateUser(ctx context.Context, user types.UpdateUser) (bool, error) {
	ok, err := s.repo.Update(ctx, user)
	if err != nil {
		return false, err
	}
	if ok {
		s.publish(ctx, types.UserEvent{Type: types.UserUpdated, UserID: user.ID, Name: user.Name, Email: user.Email})
	}
	return ok, nil
}

func (s *UserService) SetUserActive(ctx context.Context, id int64) (bool, error) {
	return s.setState(ctx, id, types.UserStateActive)
}

func (s *UserService) SetUserDisabled(ctx context.Context, id int64) (bool, error) {
	return s.setState(ctx, id, types.UserStateDisabled)
}

func (s *UserService) setState(ctx context.Context, id int64, state types.UserState) (bool, error) {
	ok, err := s.repo.UpdateState(ctx, types.UpdateUserState{ID: id, State: state})
	if err != nil {
		return false, err
	}
	if ok {
		s.publish(ctx, types.UserEvent{Type: types.UserUpdated, UserID: id, State: &state})
	}
	return ok, nil
}

// DeleteUser returns the number of rows removed.
func (s *UserService) DeleteUser(ctx context.Context, user types.DeleteUser) (int64, error) {
	n, err := s.repo.Delete(ctx, user)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.publish(ctx, types.UserEvent{Type: types.UserDeleted, UserID: user.ID})
	}
	return n, nil
}

// GetUser returns store.ErrNotFound when no row has id.
func (s *UserService) GetUser(ctx context.Context, id int64) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetActiveUsers lists every user in UserStateActive, in no particular order.
func (s *UserService) GetActiveUsers(ctx context.Context) ([]types.User, error) {
	return s.repo.ListByState(ctx, types.UserStateActive)
}

// publish never fails the caller; the mutation is already committed.
func (s *UserService) publish(ctx context.Context, event types.UserEvent) {
	if s.events == nil {
		return
	}
	event.OccurredAt = s.now().UTC()
	if err := s.events.PublishUserEvent(ctx, event); err != nil {
		s.log.Warn().
			Err(err).
			Str("event", string(event.Type)).
			Int64("user_id", event.UserID).
			Msg("failed to publish user event")
	}
}
