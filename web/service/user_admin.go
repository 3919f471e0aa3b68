// Package service implements the business logic of the gm-panel: staff
// account administration, record queries, login checks and the events API
// side channel.
package service

import (
	"errors"
	"fmt"

	"github.com/imperiumao/gm-panel/database"
	"github.com/imperiumao/gm-panel/database/model"
	"github.com/imperiumao/gm-panel/util/crypto"
)

var (
	// ErrUserNotFound is returned when an id does not resolve to a user.
	ErrUserNotFound = errors.New("user not found")
	// ErrProtectedUser is returned when a mutation targets a protected account.
	ErrProtectedUser = errors.New("user is protected")
)

// UserAdminService manages staff accounts: partitioned listing, creation,
// edition, soft deletion, restoration and the ban toggle. Protected accounts
// are excluded from listings and refused by every mutation.
type UserAdminService struct{}

// ListUsers returns all active non-protected users ordered by descending
// power, then ascending username.
func (s *UserAdminService) ListUsers() ([]model.User, error) {
	db := database.GetDB()

	var users []model.User
	err := db.Where("protected = ?", false).
		Order("power DESC").
		Order("username ASC").
		Find(&users).
		Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListTrashedUsers returns all soft-deleted non-protected users, with the
// same ordering as ListUsers.
func (s *UserAdminService) ListTrashedUsers() ([]model.User, error) {
	db := database.GetDB()

	var users []model.User
	err := db.Unscoped().
		Where("deleted_at IS NOT NULL").
		Where("protected = ?", false).
		Order("power DESC").
		Order("username ASC").
		Find(&users).
		Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns the active user with the given id.
func (s *UserAdminService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.First(user, id).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetUserWithTrashed returns the user with the given id, soft-deleted ones
// included.
func (s *UserAdminService) GetUserWithTrashed(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Unscoped().First(user, id).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// CreateUser hashes the password and persists a new staff account.
func (s *UserAdminService) CreateUser(username, email string, power int, password string) (*model.User, error) {
	db := database.GetDB()

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Power:    power,
		Password: hash,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// UpdateUser assigns the new fields in place. An empty password keeps the
// stored hash; a non-empty one is re-hashed.
func (s *UserAdminService) UpdateUser(id int, username, email string, power int, password string) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user.Protected {
		return nil, ErrProtectedUser
	}

	user.Username = username
	user.Email = email
	user.Power = power

	if password != "" {
		hash, err := crypto.HashPasswordAsBcrypt(password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = hash
	}

	if err := database.GetDB().Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser soft-deletes the user and returns it. The row stays queryable
// through the trashed lookups and can be restored.
func (s *UserAdminService) DeleteUser(id int) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user.Protected {
		return nil, ErrProtectedUser
	}

	if err := database.GetDB().Delete(user).Error; err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	return user, nil
}

// RestoreUser clears the soft-delete marker of the user with the given id.
func (s *UserAdminService) RestoreUser(id int) (*model.User, error) {
	user, err := s.GetUserWithTrashed(id)
	if err != nil {
		return nil, err
	}
	if user.Protected {
		return nil, ErrProtectedUser
	}

	db := database.GetDB()
	err = db.Unscoped().
		Model(user).
		Update("deleted_at", nil).
		Error
	if err != nil {
		return nil, fmt.Errorf("restore user: %w", err)
	}
	user.DeletedAt.Valid = false
	return user, nil
}

// ToggleBan flips the banned flag between 0 and 1 and persists the
// transition. Any other stored value is left untouched and reported as no
// transition. The returned bool tells whether a transition happened.
func (s *UserAdminService) ToggleBan(id int) (*model.User, bool, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, false, err
	}
	if user.Protected {
		return nil, false, ErrProtectedUser
	}

	switch user.Banned {
	case 0:
		user.Banned = 1
	case 1:
		user.Banned = 0
	default:
		return user, false, nil
	}

	if err := database.GetDB().Save(user).Error; err != nil {
		return nil, false, fmt.Errorf("toggle ban: %w", err)
	}
	return user, true, nil
}
