// Package app holds the process-wide dependencies shared by every command.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/usersdb/usersdb/config"
	"github.com/usersdb/usersdb/internal/db"
	"github.com/usersdb/usersdb/internal/mq"
	"github.com/usersdb/usersdb/internal/services"
	"github.com/usersdb/usersdb/internal/storage"
	"github.com/usersdb/usersdb/internal/store"
)

// State is built once per process and handed to whatever needs the
// database. Events is nil when no broker is configured.
type State struct {
	Config config.Config
	DB     *sqlx.DB
	Log    zerolog.Logger
	Events *mq.UserEvents
}

// New opens the database and, when configured, the event broker.
func New(ctx context.Context, cfg config.Config, log zerolog.Logger) (*State, error) {
	conn, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	state := &State{Config: cfg, DB: conn, Log: log}

	backend, err := mq.NewBackend(ctx, cfg.MQ)
	switch {
	case errors.Is(err, mq.ErrDisabled):
		log.Debug().Msg("no message broker configured, user events disabled")
	case err != nil:
		_ = conn.Close()
		return nil, fmt.Errorf("connect %s: %w", cfg.MQ.Backend, err)
	default:
		state.Events = mq.NewUserEvents(backend, cfg.MQ.Channel)
	}

	return state, nil
}

// Users returns a service bound to the shared connection.
func (s *State) Users() *services.UserService {
	return services.NewUserService(store.NewUserRepository(s.DB), s.publisher(), s.Log)
}

// Exports connects to the configured object store. It returns
// storage.ErrDisabled when none is configured.
func (s *State) Exports(ctx context.Context) (*services.ExportService, error) {
	objects, err := storage.NewBackend(ctx, s.Config.Storage)
	if err != nil {
		return nil, err
	}
	return services.NewExportService(store.NewUserRepository(s.DB), objects, s.Log), nil
}

// publisher keeps a nil *mq.UserEvents from turning into a non-nil interface.
func (s *State) publisher() services.EventPublisher {
	if s.Events == nil {
		return nil
	}
	return s.Events
}

// Close releases the broker and the database connection.
func (s *State) Close() error {
	var errs []error
	if s.Events != nil {
		errs = append(errs, s.Events.Close())
	}
	if s.DB != nil {
		errs = append(errs, s.DB.Close())
	}
	return errors.Join(errs...)
}
