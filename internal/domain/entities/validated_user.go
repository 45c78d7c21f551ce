package entities

// ValidatedUser is the only form of User the repository accepts for Create,
// so an unvalidated record can never reach the store.
type ValidatedUser struct {
	*User
}

func NewValidatedUser(user *User) (*ValidatedUser, error) {
	if err := user.validate(); err != nil {
		return nil, err
	}

	return &ValidatedUser{User: user}, nil
}

func (vu *ValidatedUser) GetUser() *User {
	return vu.User
}
