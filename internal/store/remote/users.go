// internal/store/remote/users.go

package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/autoaidc6/school-planner/models"
)

// ErrUserNotFound is returned by the lookup helpers below.
var ErrUserNotFound = errors.New("user not found")

// CreateUser stores a new profile document. The id is server-assigned.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	u.ID = NewID()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id string) (models.User, error) {
	return s.findUser(ctx, "id = ?", id)
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findUser(ctx, "email = ?", email)
}

func (s *Store) UserByGoogleID(ctx context.Context, googleID string) (models.User, error) {
	return s.findUser(ctx, "google_id = ?", googleID)
}

func (s *Store) findUser(ctx context.Context, query string, arg string) (models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("fetch user: %w", err)
	}
	return u, nil
}

// UpdateUser merges the provided non-empty profile fields into the stored
// document.
func (s *Store) UpdateUser(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
