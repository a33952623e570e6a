package repository

import (
	"context"

	"gorm.io/gorm"

	"moviehub/models"
)

// PlatformStore is the gorm implementation of PlatformRepository.
type PlatformStore struct {
	conn *gorm.DB
}

func (s *PlatformStore) Create(ctx context.Context, platform *models.Platform) error {
	return s.conn.WithContext(ctx).Create(platform).Error
}

func (s *PlatformStore) List(ctx context.Context) ([]models.Platform, error) {
	var platforms []models.Platform
	err := s.conn.WithContext(ctx).
		Preload("Movies.Reviews").
		Order("id").
		Find(&platforms).Error
	if err != nil {
		return nil, err
	}
	return platforms, nil
}

func (s *PlatformStore) GetByID(ctx context.Context, id uint) (*models.Platform, error) {
	var platform models.Platform
	err := s.conn.WithContext(ctx).
		Preload("Movies.Reviews").
		First(&platform, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &platform, nil
}

func (s *PlatformStore) Update(ctx context.Context, platform *models.Platform) error {
	return s.conn.WithContext(ctx).Omit("Movies").Save(platform).Error
}

func (s *PlatformStore) Delete(ctx context.Context, id uint) error {
	// Select(clause.Associations) is not needed; the FK constraints carry
	// OnDelete:CASCADE, so movies and their reviews go with the platform.
	res := s.conn.WithContext(ctx).Delete(&models.Platform{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
