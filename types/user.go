package types

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

const usersTable = "users"

var userColumns = []string{"id", "name", "email", "state"}

// UserState is the lifecycle state stored in users.state.
type UserState int16

const (
	UserStateActive   UserState = 0
	UserStateDisabled UserState = 1
)

// Valid reports whether s is one of the known states.
func (s UserState) Valid() bool {
	return s == UserStateActive || s == UserStateDisabled
}

func (s UserState) String() string {
	switch s {
	case UserStateActive:
		return "active"
	case UserStateDisabled:
		return "disabled"
	default:
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseUserState accepts a state name ("active", "disabled") or its
// numeric value.
func ParseUserState(raw string) (UserState, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active", "0":
		return UserStateActive, nil
	case "disabled", "1":
		return UserStateDisabled, nil
	}
	return 0, fmt.Errorf("unknown user state %q", raw)
}

// Value implements driver.Valuer.
func (s UserState) Value() (driver.Value, error) {
	return int64(s), nil
}

// Scan implements sql.Scanner.
func (s *UserState) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*s = UserState(v)
	case int32:
		*s = UserState(v)
	case int:
		*s = UserState(v)
	case []byte:
		return s.parse(string(v))
	case string:
		return s.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into UserState", src)
	}
	return nil
}

func (s *UserState) parse(raw string) error {
	n, err := strconv.ParseInt(raw, 10, 16)
	if err != nil {
		return fmt.Errorf("cannot scan %q into UserState: %w", raw, err)
	}
	*s = UserState(n)
	return nil
}

// User represents a row of the users table.
type User struct {
	// ID is assigned by the database on insert.
	ID int64 `json:"id" db:"id"`

	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`

	// State is either UserStateActive or UserStateDisabled.
	State UserState `json:"state" db:"state"`
}
