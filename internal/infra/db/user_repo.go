package db

import (
	"context"

	"gorm.io/gorm"

	"stockwatch/internal/domain"
)

// UserRepository backs the owner-directory lookup the monitoring job depends
// on. Account creation itself happens in the identity layer, not here.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) EmailByID(ctx context.Context, ownerID string) (string, error) {
	var model userModel
	if err := r.db.WithContext(ctx).Where("id = ?", ownerID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return model.Email, nil
}
