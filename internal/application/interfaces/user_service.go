package interfaces

import (
	"user-service/internal/application/command"
	"user-service/internal/application/query"
)

// PasswordHasher abstracts the hashing collaborator so the algorithm can be
// swapped without touching the service.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

type UserService interface {
	RegisterUser(registerCommand *command.RegisterUserCommand) (*command.RegisterUserCommandResult, error)
	GetUserByID(id int64) (*query.UserQueryResult, error)
	GetUserByUsername(username string) (*query.UserQueryResult, error)
	UpdateUser(id int64, updateCommand *command.UpdateUserCommand) (*command.UpdateUserCommandResult, error)
	DeleteUser(id int64) error
	SearchUsers(searchQuery string) (*query.UserQueryListResult, error)
	GetAllActiveUsers() (*query.UserQueryListResult, error)
	CountActiveUsers() (int64, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	IncrementFollowerCount(id int64) error
	DecrementFollowerCount(id int64) error
	IncrementFollowingCount(id int64) error
	DecrementFollowingCount(id int64) error
	IncrementTweetCount(id int64) error
}
