// Package repository persists credentials, token revocations and screening audits.
package repository

import (
	"errors"

	"gorm.io/gorm"

	"gramhealth-go/internal/model"
)

var (
	// ErrUserNotFound is returned when no credential exists for a username.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned when creating a username that already exists.
	ErrDuplicateUsername = errors.New("username already exists")
)

// UserRepository stores username -> password digest. Credentials are created and
// read, never updated or deleted.
type UserRepository interface {
	Create(user *model.User) error
	FindByUsername(username string) (*model.User, error)
}

// userRepository is the GORM implementation.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepository backed by the users table.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts user. The unique index on username closes the race between
// concurrent signups; its violation is reported as ErrDuplicateUsername.
func (r *userRepository) Create(user *model.User) error {
	if _, err := r.FindByUsername(user.Username); err == nil {
		return ErrDuplicateUsername
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}
	err := r.db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateUsername
	}
	return err
}

// FindByUsername returns the user with username or ErrUserNotFound.
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
