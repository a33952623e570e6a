package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"moviehub/models"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrDuplicateReview indicates the user has already reviewed the movie.
var ErrDuplicateReview = errors.New("repository: you have already submitted a review")

// UserRepository handles account records.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// PlatformRepository handles streaming platform records.
type PlatformRepository interface {
	Create(ctx context.Context, platform *models.Platform) error

	// List returns all platforms with their movies and the movies' reviews
	// preloaded, since the platform representation nests full movies.
	List(ctx context.Context) ([]models.Platform, error)

	GetByID(ctx context.Context, id uint) (*models.Platform, error)
	Update(ctx context.Context, platform *models.Platform) error

	// Delete removes the platform and cascades to its movies and reviews.
	Delete(ctx context.Context, id uint) error
}

// MovieRepository handles movie records.
type MovieRepository interface {
	Create(ctx context.Context, movie *models.Movie) error

	// List returns one page of movies plus the total count across all pages.
	List(ctx context.Context, page, pageSize int) ([]models.Movie, int64, error)

	GetByID(ctx context.Context, id uint) (*models.Movie, error)
	Update(ctx context.Context, movie *models.Movie) error
	Delete(ctx context.Context, id uint) error
}

// ReviewRepository handles review records and the rating aggregation that
// rides along with review creation.
type ReviewRepository interface {
	// CreateForMovie validates the one-review-per-user rule, folds the rating
	// into the movie's aggregate and persists both inside one transaction.
	// Returns ErrNotFound when the movie does not exist and
	// ErrDuplicateReview when the user already reviewed it.
	CreateForMovie(ctx context.Context, movieID, userID uint, input models.ReviewInput) (*models.Review, error)

	ListByMovie(ctx context.Context, movieID uint, filter models.ReviewFilter) ([]models.Review, error)
	ListByUsername(ctx context.Context, username string) ([]models.Review, error)
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
}

// Repository aggregates the per-entity repositories.
type Repository struct {
	Users     UserRepository
	Platforms PlatformRepository
	Movies    MovieRepository
	Reviews   ReviewRepository
}

// New constructs gorm-backed repositories over one connection.
func New(conn *gorm.DB) *Repository {
	return &Repository{
		Users:     &UserStore{conn: conn},
		Platforms: &PlatformStore{conn: conn},
		Movies:    &MovieStore{conn: conn},
		Reviews:   &ReviewStore{conn: conn},
	}
}

// translate maps gorm sentinel errors onto repository errors.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
