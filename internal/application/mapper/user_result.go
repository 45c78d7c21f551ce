package mapper

import (
	"user-service/internal/application/common"
	"user-service/internal/domain/entities"
)

func NewUserResultFromEntity(user *entities.User) *common.UserResult {
	return &common.UserResult{
		Id:              user.Id,
		Username:        user.Username,
		Email:           user.Email,
		FullName:        user.FullName,
		Bio:             user.Bio,
		ProfileImageURL: user.ProfileImageURL,
		FollowersCount:  user.FollowersCount,
		FollowingCount:  user.FollowingCount,
		TweetsCount:     user.TweetsCount,
		IsVerified:      user.IsVerified,
		IsActive:        user.IsActive,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

func NewUserResultsFromEntities(users []*entities.User) []*common.UserResult {
	results := make([]*common.UserResult, 0, len(users))
	for _, user := range users {
		results = append(results, NewUserResultFromEntity(user))
	}
	return results
}
