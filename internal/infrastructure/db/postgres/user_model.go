package postgres

import (
	"time"

	"user-service/internal/domain/entities"
)

type UserModel struct {
	Id              int64     `gorm:"primaryKey;autoIncrement"`
	Username        string    `gorm:"uniqueIndex;size:50;not null"`
	Email           string    `gorm:"uniqueIndex;size:255;not null"`
	Password        string    `gorm:"not null"`
	FullName        string    `gorm:"column:full_name;size:100"`
	Bio             string    `gorm:"size:160"`
	ProfileImageURL string    `gorm:"column:profile_image_url"`
	FollowersCount  int       `gorm:"column:followers_count;not null;default:0"`
	FollowingCount  int       `gorm:"column:following_count;not null;default:0"`
	TweetsCount     int       `gorm:"column:tweets_count;not null;default:0"`
	IsVerified      bool      `gorm:"column:is_verified;not null;default:false"`
	IsActive        bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time
}

func (UserModel) TableName() string {
	return "users"
}

func modelFromEntity(user *entities.User) UserModel {
	return UserModel{
		Id:              user.Id,
		Username:        user.Username,
		Email:           user.Email,
		Password:        user.Password,
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

func (m *UserModel) toEntity() *entities.User {
	return &entities.User{
		Id:              m.Id,
		Username:        m.Username,
		Email:           m.Email,
		Password:        m.Password,
		FullName:        m.FullName,
		Bio:             m.Bio,
		ProfileImageURL: m.ProfileImageURL,
		FollowersCount:  m.FollowersCount,
		FollowingCount:  m.FollowingCount,
		TweetsCount:     m.TweetsCount,
		IsVerified:      m.IsVerified,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
