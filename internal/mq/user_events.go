package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/usersdb/usersdb/types"
)

const (
	attrEventType   = "type"
	attrOrderingKey = "user_id"
)

// UserEvents publishes and consumes user change notifications on a single
// channel.
type UserEvents struct {
	backend Backend
	channel string
}

func NewUserEvents(backend Backend, channel string) *UserEvents {
	return &UserEvents{backend: backend, channel: channel}
}

// PublishUserEvent encodes event as JSON. The event type and, when known,
// the user id travel as attributes.
func (u *UserEvents) PublishUserEvent(ctx context.Context, event types.UserEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	attrs := map[string]string{attrEventType: string(event.Type)}
	if event.UserID != 0 {
		attrs[attrOrderingKey] = strconv.FormatInt(event.UserID, 10)
	}
	_, err = u.backend.Publish(ctx, u.channel, data, attrs)
	return err
}

// Watch blocks delivering decoded events to fn until ctx is done or the
// subscription fails. Undecodable messages are acknowledged and dropped.
func (u *UserEvents) Watch(ctx context.Context, fn func(context.Context, types.UserEvent) error) error {
	err := u.backend.Subscribe(ctx, u.channel, func(ctx context.Context, msg Message) error {
		var event types.UserEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			return nil
		}
		if event.Type == "" {
			event.Type = types.UserEventType(msg.Attributes[attrEventType])
		}
		return fn(ctx, event)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("watch %s: %w", u.channel, err)
	}
	return nil
}

// Close closes the underlying broker connection.
func (u *UserEvents) Close() error {
	return u.backend.Close()
}
