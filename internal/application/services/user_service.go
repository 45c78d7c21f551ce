package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"user-service/internal/application/command"
	"user-service/internal/application/common"
	"user-service/internal/application/interfaces"
	"user-service/internal/application/mapper"
	"user-service/internal/application/query"
	"user-service/internal/domain/entities"
	"user-service/internal/domain/repositories"
)

const userCachePrefix = "cache:user:"

const minPasswordLength = 6

type UserService struct {
	userRepo repositories.UserRepository
	cache    repositories.Cache
	hasher   interfaces.PasswordHasher
	cacheTTL time.Duration
}

func NewUserService(
	userRepo repositories.UserRepository,
	cache repositories.Cache,
	hasher interfaces.PasswordHasher,
	cacheTTL time.Duration,
) interfaces.UserService {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &UserService{
		userRepo: userRepo,
		cache:    cache,
		hasher:   hasher,
		cacheTTL: cacheTTL,
	}
}

// RegisterUser creates a new account. Uniqueness is pre-checked against the
// store for a field-naming fast path; the unique constraints remain the
// authoritative signal, so a losing racer still gets a duplicate error from
// Create. Cache population afterwards is best-effort.
func (s *UserService) RegisterUser(registerCommand *command.RegisterUserCommand) (*command.RegisterUserCommandResult, error) {
	ctx := context.Background()

	if len(registerCommand.Password) < minPasswordLength {
		return nil, &entities.ValidationError{Message: "password must be at least 6 characters"}
	}

	taken, err := s.userRepo.ExistsByUsername(registerCommand.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if taken {
		return nil, &entities.DuplicateIdentifierError{Field: "username"}
	}

	taken, err = s.userRepo.ExistsByEmail(registerCommand.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if taken {
		return nil, &entities.DuplicateIdentifierError{Field: "email"}
	}

	passwordHash, err := s.hasher.Hash(registerCommand.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := entities.NewUser(
		registerCommand.Username,
		registerCommand.Email,
		passwordHash,
		registerCommand.FullName,
		registerCommand.Bio,
	)

	validatedUser, err := entities.NewValidatedUser(newUser)
	if err != nil {
		return nil, err
	}

	createdUser, err := s.userRepo.Create(validatedUser)
	if err != nil {
		var dup *entities.DuplicateIdentifierError
		if errors.As(err, &dup) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Printf("User registered with id %d and username %s", createdUser.Id, createdUser.Username)
	s.cacheUser(ctx, createdUser)

	return &command.RegisterUserCommandResult{
		Result: mapper.NewUserResultFromEntity(createdUser),
	}, nil
}

// GetUserByID is the read-through path: cache first, store on miss, then
// populate the cache. A cache hit is returned as-is; staleness up to the TTL
// is accepted. A miss in the store yields (nil, nil), not an error.
func (s *UserService) GetUserByID(id int64) (*query.UserQueryResult, error) {
	ctx := context.Background()

	if cached, ok := s.cachedUser(ctx, id); ok {
		return &query.UserQueryResult{Result: cached}, nil
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	s.cacheUser(ctx, user)

	return &query.UserQueryResult{
		Result: mapper.NewUserResultFromEntity(user),
	}, nil
}

// GetUserByUsername always reads from the store (no cache key derives from a
// username) but opportunistically populates the id-keyed cache entry.
func (s *UserService) GetUserByUsername(username string) (*query.UserQueryResult, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	s.cacheUser(context.Background(), user)

	return &query.UserQueryResult{
		Result: mapper.NewUserResultFromEntity(user),
	}, nil
}

// UpdateUser merges the supplied fields into the record (nil means "leave
// unchanged"), persists it and refreshes the cache entry.
func (s *UserService) UpdateUser(id int64, updateCommand *command.UpdateUserCommand) (*command.UpdateUserCommandResult, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for update: %w", err)
	}
	if user == nil {
		return nil, entities.ErrUserNotFound
	}

	if err := user.ApplyProfileUpdate(updateCommand.FullName, updateCommand.Bio, updateCommand.ProfileImageURL); err != nil {
		return nil, err
	}

	updatedUser, err := s.userRepo.Update(user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Printf("Updated user %d", updatedUser.Id)
	s.cacheUser(context.Background(), updatedUser)

	return &command.UpdateUserCommandResult{
		Result: mapper.NewUserResultFromEntity(updatedUser),
	}, nil
}

// DeleteUser soft-deletes the account and evicts (not refreshes) the cache
// entry, so subsequent reads fall through to the store.
func (s *UserService) DeleteUser(id int64) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to load user for delete: %w", err)
	}
	if user == nil {
		return entities.ErrUserNotFound
	}

	user.Deactivate()
	if _, err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	if err := s.cache.Delete(context.Background(), s.cacheKey(id)); err != nil {
		log.Printf("Failed to evict cache entry for user %d: %v", id, err)
	}

	log.Printf("User deactivated: %d", id)
	return nil
}

func (s *UserService) SearchUsers(searchQuery string) (*query.UserQueryListResult, error) {
	users, err := s.userRepo.Search(searchQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return &query.UserQueryListResult{
		Result: mapper.NewUserResultsFromEntities(users),
	}, nil
}

func (s *UserService) GetAllActiveUsers() (*query.UserQueryListResult, error) {
	users, err := s.userRepo.FindActive()
	if err != nil {
		return nil, fmt.Errorf("failed to get active users: %w", err)
	}

	return &query.UserQueryListResult{
		Result: mapper.NewUserResultsFromEntities(users),
	}, nil
}

func (s *UserService) CountActiveUsers() (int64, error) {
	count, err := s.userRepo.CountActive()
	if err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}
	return count, nil
}

// ExistsByUsername reports whether the username is taken. Absence is a valid
// false, never an error.
func (s *UserService) ExistsByUsername(username string) (bool, error) {
	exists, err := s.userRepo.ExistsByUsername(username)
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return exists, nil
}

func (s *UserService) ExistsByEmail(email string) (bool, error) {
	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

func (s *UserService) IncrementFollowerCount(id int64) error {
	return s.adjustCounter(id, repositories.CounterFollowers, 1)
}

func (s *UserService) DecrementFollowerCount(id int64) error {
	return s.adjustCounter(id, repositories.CounterFollowers, -1)
}

func (s *UserService) IncrementFollowingCount(id int64) error {
	return s.adjustCounter(id, repositories.CounterFollowing, 1)
}

func (s *UserService) DecrementFollowingCount(id int64) error {
	return s.adjustCounter(id, repositories.CounterFollowing, -1)
}

func (s *UserService) IncrementTweetCount(id int64) error {
	return s.adjustCounter(id, repositories.CounterTweets, 1)
}

// adjustCounter applies the delta through the store's atomic clamp-at-zero
// update, then refreshes the cache from the returned record.
func (s *UserService) adjustCounter(id int64, counter repositories.Counter, delta int) error {
	user, err := s.userRepo.AdjustCounter(id, counter, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust %s: %w", counter, err)
	}
	if user == nil {
		return entities.ErrUserNotFound
	}

	s.cacheUser(context.Background(), user)
	return nil
}

func (s *UserService) cacheKey(id int64) string {
	return fmt.Sprintf("%s%d", userCachePrefix, id)
}

// cachedUser returns the cached projection for id, if any. Every cache
// fault, including a corrupt entry, is treated as a miss.
func (s *UserService) cachedUser(ctx context.Context, id int64) (*common.UserResult, bool) {
	raw, err := s.cache.Get(ctx, s.cacheKey(id))
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			log.Printf("Cache read failed for user %d: %v", id, err)
		}
		return nil, false
	}

	var result common.UserResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.Printf("Discarding corrupt cache entry for user %d: %v", id, err)
		return nil, false
	}

	return &result, true
}

// cacheUser writes the projection under cache:user:{id}. Failure must never
// break the calling flow, so it is logged and swallowed.
func (s *UserService) cacheUser(ctx context.Context, user *entities.User) {
	result := mapper.NewUserResultFromEntity(user)

	payload, err := json.Marshal(result)
	if err != nil {
		log.Printf("Failed to serialize user %d for caching: %v", user.Id, err)
		return
	}

	if err := s.cache.Set(ctx, s.cacheKey(user.Id), string(payload), s.cacheTTL); err != nil {
		log.Printf("Failed to cache user %d: %v", user.Id, err)
	}
}
