package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/solekicks/storefront/internal/models"
	"github.com/solekicks/storefront/internal/repo"
)

type UserService struct {
	Repo *repo.GormRepo
}

// SyncUser upserts the caller's profile row from token claims and returns the
// stored user. Tokens without an email claim cannot provision a row, so those
// callers only resolve users that already exist.
func (s *UserService) SyncUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil || user.ID == uuid.Nil {
		return nil, fmt.Errorf("user id is required: %w", ErrValidation)
	}

	if user.Email != "" {
		if err := s.Repo.UpsertUser(ctx, user); err != nil {
			return nil, fmt.Errorf("sync user: %w", err)
		}
	}

	stored, err := s.Repo.GetUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return stored, nil
}
