package repository

import (
	"context"

	"gorm.io/gorm"

	"moviehub/models"
)

// UserStore is the gorm implementation of UserRepository.
type UserStore struct {
	conn *gorm.DB
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	return s.conn.WithContext(ctx).Create(user).Error
}

func (s *UserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.conn.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.conn.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
