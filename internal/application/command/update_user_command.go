package command

import "user-service/internal/application/common"

// UpdateUserCommand carries a partial profile update. Pointer fields
// distinguish "leave unchanged" (nil) from "set to this value".
type UpdateUserCommand struct {
	FullName        *string `json:"full_name,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

type UpdateUserCommandResult struct {
	Result *common.UserResult `json:"result"`
}
