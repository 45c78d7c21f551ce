package common

import (
	"time"
)

// UserResult is the externally-safe projection of a user record: everything
// except the password hash. It is what crosses the API boundary and what the
// cache stores.
type UserResult struct {
	Id              int64     `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	FollowersCount  int       `json:"followers_count"`
	FollowingCount  int       `json:"following_count"`
	TweetsCount     int       `json:"tweets_count"`
	IsVerified      bool      `json:"is_verified"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
