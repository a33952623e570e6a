package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moviehub/models"
)

// ReviewStore is the gorm implementation of ReviewRepository.
type ReviewStore struct {
	conn *gorm.DB
}

// CreateForMovie runs the whole submission workflow in one transaction:
// lock the movie row, reject duplicates, fold the rating into the aggregate,
// save the movie, then insert the review. The row lock serializes concurrent
// submissions for the same movie so the aggregate never loses an update; the
// unique index on (user_id, movie_id) backs the duplicate check for the same
// user racing against themselves.
func (s *ReviewStore) CreateForMovie(ctx context.Context, movieID, userID uint, input models.ReviewInput) (*models.Review, error) {
	var created models.Review

	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var movie models.Movie
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&movie, movieID).Error; err != nil {
			return translate(err)
		}

		var existing int64
		err := tx.Model(&models.Review{}).
			Where("movie_id = ? AND user_id = ?", movieID, userID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateReview
		}

		movie.ApplyRating(input.Rating)

		// The movie update lands before the review row, per the workflow
		// contract. Both roll back together on any failure.
		if err := tx.Save(&movie).Error; err != nil {
			return err
		}

		isActive := true
		if input.IsActive != nil {
			isActive = *input.IsActive
		}
		created = models.Review{
			UserID:      userID,
			MovieID:     movieID,
			Rating:      input.Rating,
			Description: input.Description,
			IsActive:    isActive,
		}
		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateReview
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, created.ID)
}

func (s *ReviewStore) ListByMovie(ctx context.Context, movieID uint, filter models.ReviewFilter) ([]models.Review, error) {
	q := s.conn.WithContext(ctx).
		Preload("User").
		Preload("Movie").
		Where("reviews.movie_id = ?", movieID)

	if filter.Username != "" {
		q = q.Joins("JOIN users ON users.id = reviews.user_id").
			Where("users.username = ?", filter.Username)
	}
	if filter.IsActive != nil {
		q = q.Where("reviews.is_active = ?", *filter.IsActive)
	}

	var reviews []models.Review
	if err := q.Order("reviews.id").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewStore) ListByUsername(ctx context.Context, username string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.conn.WithContext(ctx).
		Preload("User").
		Preload("Movie").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("users.username = ?", username).
		Order("reviews.id").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewStore) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	err := s.conn.WithContext(ctx).
		Preload("User").
		Preload("Movie").
		First(&review, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (s *ReviewStore) Update(ctx context.Context, review *models.Review) error {
	// Ratings changed after creation deliberately do not reopen the movie
	// aggregate; only creation feeds it.
	return s.conn.WithContext(ctx).
		Omit("User", "Movie").
		Save(review).Error
}

func (s *ReviewStore) Delete(ctx context.Context, id uint) error {
	res := s.conn.WithContext(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
