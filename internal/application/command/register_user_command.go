package command

import "user-service/internal/application/common"

type RegisterUserCommand struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

type RegisterUserCommandResult struct {
	Result *common.UserResult `json:"result"`
}
