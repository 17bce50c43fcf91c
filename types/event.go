package types

import "time"

type UserEventType string

const (
	UserInserted UserEventType = "user.inserted"
	UserUpdated  UserEventType = "user.updated"
	UserDeleted  UserEventType = "user.deleted"
)

// UserEvent is published after a successful mutation of the users table.
// Fields that the mutation did not touch are left zero.
type UserEvent struct {
	Type       UserEventType `json:"type"`
	UserID     int64         `json:"user_id,omitempty"`
	Name       string        `json:"name,omitempty"`
	Email      string        `json:"email,omitempty"`
	State      *UserState    `json:"state,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
