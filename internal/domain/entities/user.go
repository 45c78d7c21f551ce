package entities

import (
	"fmt"
	"regexp"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type User struct {
	Id              int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Username        string
	Email           string
	Password        string
	FullName        string
	Bio             string
	ProfileImageURL string
	FollowersCount  int
	FollowingCount  int
	TweetsCount     int
	IsVerified      bool
	IsActive        bool
}

// NewUser builds a fresh account record. Password must already be hashed;
// the id is assigned by the store on create.
func NewUser(username, email, passwordHash, fullName, bio string) *User {
	now := time.Now()
	return &User{
		CreatedAt:      now,
		UpdatedAt:      now,
		Username:       username,
		Email:          email,
		Password:       passwordHash,
		FullName:       fullName,
		Bio:            bio,
		FollowersCount: 0,
		FollowingCount: 0,
		TweetsCount:    0,
		IsVerified:     false,
		IsActive:       true,
	}
}

func (u *User) validate() error {
	if len(u.Username) < 3 || len(u.Username) > 50 {
		return &ValidationError{Message: "username must be between 3 and 50 characters"}
	}
	if u.Email == "" || !emailPattern.MatchString(u.Email) {
		return &ValidationError{Message: "a valid email is required"}
	}
	if u.Password == "" {
		return &ValidationError{Message: "password must not be empty"}
	}
	if len(u.FullName) > 100 {
		return &ValidationError{Message: "full name cannot exceed 100 characters"}
	}
	if len(u.Bio) > 160 {
		return &ValidationError{Message: "bio cannot exceed 160 characters"}
	}
	if u.CreatedAt.After(u.UpdatedAt) {
		return &ValidationError{Message: "created_at must not be after updated_at"}
	}
	return nil
}

// ApplyProfileUpdate merges the supplied fields into the record. A nil field
// means "leave unchanged", not "clear".
func (u *User) ApplyProfileUpdate(fullName, bio, profileImageURL *string) error {
	if fullName != nil {
		u.FullName = *fullName
	}
	if bio != nil {
		u.Bio = *bio
	}
	if profileImageURL != nil {
		u.ProfileImageURL = *profileImageURL
	}
	u.UpdatedAt = time.Now()
	return u.validate()
}

// Deactivate soft-deletes the account. The row stays in the store.
func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now()
}

func (u *User) String() string {
	return fmt.Sprintf("User[id=%d username=%s active=%t]", u.Id, u.Username, u.IsActive)
}
