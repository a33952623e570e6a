package repository

import (
	"context"

	"gorm.io/gorm"

	"moviehub/models"
)

// MovieStore is the gorm implementation of MovieRepository.
type MovieStore struct {
	conn *gorm.DB
}

func (s *MovieStore) Create(ctx context.Context, movie *models.Movie) error {
	return s.conn.WithContext(ctx).Create(movie).Error
}

func (s *MovieStore) List(ctx context.Context, page, pageSize int) ([]models.Movie, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	if err := s.conn.WithContext(ctx).Model(&models.Movie{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movies []models.Movie
	err := s.conn.WithContext(ctx).
		Preload("Reviews").
		Order("id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&movies).Error
	if err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}

func (s *MovieStore) GetByID(ctx context.Context, id uint) (*models.Movie, error) {
	var movie models.Movie
	err := s.conn.WithContext(ctx).
		Preload("Reviews").
		First(&movie, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &movie, nil
}

func (s *MovieStore) Update(ctx context.Context, movie *models.Movie) error {
	return s.conn.WithContext(ctx).Omit("Reviews").Save(movie).Error
}

func (s *MovieStore) Delete(ctx context.Context, id uint) error {
	res := s.conn.WithContext(ctx).Delete(&models.Movie{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
