package repositories

import (
	"user-service/internal/domain/entities"
)

// Counter names a denormalized count column that collaborating services
// adjust through the counter endpoints. The type doubles as a column
// whitelist for the store-level atomic update.
type Counter string

const (
	CounterFollowers Counter = "followers_count"
	CounterFollowing Counter = "following_count"
	CounterTweets    Counter = "tweets_count"
)

// UserRepository is the durable store capability. Point lookups return
// (nil, nil) when no record matches; absence is not an error.
type UserRepository interface {
	Create(user *entities.ValidatedUser) (*entities.User, error)
	FindByID(id int64) (*entities.User, error)
	FindByUsername(username string) (*entities.User, error)
	FindByEmail(email string) (*entities.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	Update(user *entities.User) (*entities.User, error)

	// FindActive returns active users ordered by creation time, newest first.
	FindActive() ([]*entities.User, error)

	// Search matches the query as a case-insensitive substring of the
	// username or the full name.
	Search(query string) ([]*entities.User, error)

	CountActive() (int64, error)

	// AdjustCounter applies delta to the named counter in a single atomic
	// statement, clamping the result at zero. It returns the refreshed
	// record, or (nil, nil) when the id is absent.
	AdjustCounter(id int64, counter Counter, delta int) (*entities.User, error)
}
