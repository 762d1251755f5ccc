package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cromados/barberia/internal/models"
	ucauth "github.com/cromados/barberia/internal/usecase/auth"
)

type AuthGormRepository struct {
	db *gorm.DB
}

func NewAuthGormRepository(db *gorm.DB) *AuthGormRepository {
	return &AuthGormRepository{db: db}
}

func (r *AuthGormRepository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AdminUser{}).
		Count(&count).Error
	return count, err
}

func (r *AuthGormRepository) CreateAdmin(
	ctx context.Context,
	u *models.AdminUser,
) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// Compile-time check
var _ ucauth.Repository = (*AuthGormRepository)(nil)
