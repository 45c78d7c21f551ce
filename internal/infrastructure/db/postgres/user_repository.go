package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"user-service/internal/domain/entities"
	"user-service/internal/domain/repositories"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

// Create persists the record in a single insert. The unique constraints on
// username and email are the authoritative duplicate signal: a violation is
// mapped to DuplicateIdentifierError with the offending field attributed by
// re-probing the two predicates.
func (r *UserRepository) Create(user *entities.ValidatedUser) (*entities.User, error) {
	userModel := modelFromEntity(user.GetUser())
	userModel.Id = 0 // id is assigned by the store

	if err := r.db.Create(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, r.duplicateIdentifier(user.GetUser())
		}
		return nil, err
	}

	// Read back the created row so defaults and the assigned id are reflected.
	return r.FindByID(userModel.Id)
}

func (r *UserRepository) duplicateIdentifier(user *entities.User) error {
	if taken, err := r.ExistsByUsername(user.Username); err == nil && taken {
		return &entities.DuplicateIdentifierError{Field: "username"}
	}
	if taken, err := r.ExistsByEmail(user.Email); err == nil && taken {
		return &entities.DuplicateIdentifierError{Field: "email"}
	}
	// The colliding row may have been removed in between; blame the username.
	return &entities.DuplicateIdentifierError{Field: "username"}
}

func (r *UserRepository) FindByID(id int64) (*entities.User, error) {
	return r.findOne("id = ?", id)
}

func (r *UserRepository) FindByUsername(username string) (*entities.User, error) {
	return r.findOne("username = ?", username)
}

func (r *UserRepository) FindByEmail(email string) (*entities.User, error) {
	return r.findOne("email = ?", email)
}

func (r *UserRepository) findOne(condition string, value interface{}) (*entities.User, error) {
	var userModel UserModel
	if err := r.db.Where(condition, value).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return userModel.toEntity(), nil
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	return r.exists("username = ?", username)
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	return r.exists("email = ?", email)
}

func (r *UserRepository) exists(condition string, value interface{}) (bool, error) {
	var count int64
	if err := r.db.Model(&UserModel{}).Where(condition, value).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) Update(user *entities.User) (*entities.User, error) {
	userModel := modelFromEntity(user)

	if err := r.db.Save(&userModel).Error; err != nil {
		return nil, err
	}

	return r.FindByID(user.Id)
}

func (r *UserRepository) FindActive() ([]*entities.User, error) {
	var userModels []UserModel
	err := r.db.
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&userModels).Error
	if err != nil {
		return nil, err
	}

	return toEntities(userModels), nil
}

// Search matches the query case-insensitively against username or full name.
// LOWER(...) LIKE keeps the behavior identical on PostgreSQL and SQLite.
func (r *UserRepository) Search(query string) ([]*entities.User, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var userModels []UserModel
	err := r.db.
		Where("LOWER(username) LIKE ? OR LOWER(full_name) LIKE ?", pattern, pattern).
		Find(&userModels).Error
	if err != nil {
		return nil, err
	}

	return toEntities(userModels), nil
}

func (r *UserRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&UserModel{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// AdjustCounter applies the delta and the zero floor in one UPDATE, so
// concurrent calls cannot lose increments or drive a counter negative.
// The counter type restricts the interpolated column name to the three
// known count columns.
func (r *UserRepository) AdjustCounter(id int64, counter repositories.Counter, delta int) (*entities.User, error) {
	column := string(counter)
	clamped := fmt.Sprintf("CASE WHEN %s + ? < 0 THEN 0 ELSE %s + ? END", column, column)

	result := r.db.Model(&UserModel{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			column:       gorm.Expr(clamped, delta, delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.FindByID(id)
}

func toEntities(userModels []UserModel) []*entities.User {
	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userModels[i].toEntity())
	}
	return users
}
