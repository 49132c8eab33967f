package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/solekicks/storefront/internal/models"
	"gorm.io/gorm/clause"
)

func (r *GormRepo) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UpsertUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "role", "updated_at"}),
		}).
		Create(user).Error
}
