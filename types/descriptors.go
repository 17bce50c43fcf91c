package types

// The descriptors below each parametrize exactly one statement against the
// users table. They are built per call and discarded afterwards.

// InsertUser inserts a row with the given name, email and state.
type InsertUser struct {
	Name  string
	Email string
	State UserState
}

func (InsertUser) Table() string { return usersTable }

func (InsertUser) InsertColumns() []string { return []string{"name", "email", "state"} }

func (u InsertUser) InsertArgs() []any { return []any{u.Name, u.Email, u.State} }

// UpdateUser rewrites name and email of the row with ID. State is carried
// along but never written; use UpdateUserState for that.
type UpdateUser struct {
	ID    int64
	Name  string
	Email string
	State UserState
}

func (UpdateUser) Table() string { return usersTable }

func (UpdateUser) UpdateColumns() []string { return []string{"name", "email"} }

func (u UpdateUser) UpdateArgs() []any { return []any{u.Name, u.Email} }

func (UpdateUser) Where() string { return "id = $" }

func (u UpdateUser) WhereArgs() []any { return []any{u.ID} }

// UpdateUserState changes only the state of the row with ID.
type UpdateUserState struct {
	ID    int64
	State UserState
}

func (UpdateUserState) Table() string { return usersTable }

func (UpdateUserState) UpdateColumns() []string { return []string{"state"} }

func (u UpdateUserState) UpdateArgs() []any { return []any{u.State} }

func (UpdateUserState) Where() string { return "id = $" }

func (u UpdateUserState) WhereArgs() []any { return []any{u.ID} }

// DeleteUser removes the row with ID.
type DeleteUser struct {
	ID int64
}

func (DeleteUser) Table() string { return usersTable }

func (DeleteUser) Where() string { return "id = $" }

func (u DeleteUser) WhereArgs() []any { return []any{u.ID} }

// GetUser selects the row with ID.
type GetUser struct {
	ID int64
}

func (GetUser) Table() string { return usersTable }

func (GetUser) SelectColumns() []string { return userColumns }

func (GetUser) Where() string { return "id = $" }

func (u GetUser) WhereArgs() []any { return []any{u.ID} }

// GetUsersByState selects every row in State. With UserStateActive it is the
// "active users" listing.
type GetUsersByState struct {
	State UserState
}

func (GetUsersByState) Table() string { return usersTable }

func (GetUsersByState) SelectColumns() []string { return userColumns }

func (GetUsersByState) Where() string { return "state = $" }

func (u GetUsersByState) WhereArgs() []any { return []any{u.State} }
