package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"moviehub/models"
	"moviehub/repository"
)

// fakeStore is an in-memory stand-in for the gorm repositories. It mirrors
// the store semantics the handlers rely on: duplicate detection, cascade
// deletes and the transactional rating aggregation on review creation.
type fakeStore struct {
	mu        sync.Mutex
	users     map[uint]models.User
	platforms map[uint]models.Platform
	movies    map[uint]models.Movie
	reviews   map[uint]models.Review
	nextID    uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[uint]models.User),
		platforms: make(map[uint]models.Platform),
		movies:    make(map[uint]models.Movie),
		reviews:   make(map[uint]models.Review),
	}
}

func (f *fakeStore) repo() *repository.Repository {
	return &repository.Repository{
		Users:     &fakeUsers{f},
		Platforms: &fakePlatforms{f},
		Movies:    &fakeMovies{f},
		Reviews:   &fakeReviews{f},
	}
}

func (f *fakeStore) id() uint {
	f.nextID++
	return f.nextID
}

// reviewsForMovie returns the movie's reviews ordered by id.
func (f *fakeStore) reviewsForMovie(movieID uint) []models.Review {
	var out []models.Review
	for _, r := range f.reviews {
		if r.MovieID == movieID {
			out = append(out, f.hydrate(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// hydrate fills the User and Movie references the way gorm preloads do.
func (f *fakeStore) hydrate(r models.Review) models.Review {
	r.User = f.users[r.UserID]
	movie := f.movies[r.MovieID]
	movie.Reviews = nil
	r.Movie = movie
	return r
}

type fakeUsers struct{ s *fakeStore }

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = f.s.id()
	f.s.users[user.ID] = *user
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakePlatforms struct{ s *fakeStore }

func (f *fakePlatforms) Create(_ context.Context, platform *models.Platform) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	platform.ID = f.s.id()
	f.s.platforms[platform.ID] = *platform
	return nil
}

func (f *fakePlatforms) List(_ context.Context) ([]models.Platform, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Platform
	for _, p := range f.s.platforms {
		out = append(out, f.withMovies(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePlatforms) GetByID(_ context.Context, id uint) (*models.Platform, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.platforms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = f.withMovies(p)
	return &p, nil
}

func (f *fakePlatforms) withMovies(p models.Platform) models.Platform {
	p.Movies = nil
	for _, m := range f.s.movies {
		if m.PlatformID == p.ID {
			m.Reviews = f.s.reviewsForMovie(m.ID)
			p.Movies = append(p.Movies, m)
		}
	}
	sort.Slice(p.Movies, func(i, j int) bool { return p.Movies[i].ID < p.Movies[j].ID })
	return p
}

func (f *fakePlatforms) Update(_ context.Context, platform *models.Platform) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	stored := *platform
	stored.Movies = nil
	f.s.platforms[platform.ID] = stored
	return nil
}

func (f *fakePlatforms) Delete(_ context.Context, id uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.platforms[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.platforms, id)
	for mid, m := range f.s.movies {
		if m.PlatformID == id {
			delete(f.s.movies, mid)
			for rid, r := range f.s.reviews {
				if r.MovieID == mid {
					delete(f.s.reviews, rid)
				}
			}
		}
	}
	return nil
}

type fakeMovies struct{ s *fakeStore }

func (f *fakeMovies) Create(_ context.Context, movie *models.Movie) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	movie.ID = f.s.id()
	movie.CreatedAt = time.Now()
	stored := *movie
	stored.Reviews = nil
	f.s.movies[movie.ID] = stored
	return nil
}

func (f *fakeMovies) List(_ context.Context, page, pageSize int) ([]models.Movie, int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var all []models.Movie
	for _, m := range f.s.movies {
		m.Reviews = f.s.reviewsForMovie(m.ID)
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return []models.Movie{}, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeMovies) GetByID(_ context.Context, id uint) (*models.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m, ok := f.s.movies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	m.Reviews = f.s.reviewsForMovie(id)
	return &m, nil
}

func (f *fakeMovies) Update(_ context.Context, movie *models.Movie) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	stored := *movie
	stored.Reviews = nil
	f.s.movies[movie.ID] = stored
	return nil
}

func (f *fakeMovies) Delete(_ context.Context, id uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.movies[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.movies, id)
	for rid, r := range f.s.reviews {
		if r.MovieID == id {
			delete(f.s.reviews, rid)
		}
	}
	return nil
}

type fakeReviews struct{ s *fakeStore }

func (f *fakeReviews) CreateForMovie(_ context.Context, movieID, userID uint, input models.ReviewInput) (*models.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	movie, ok := f.s.movies[movieID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, r := range f.s.reviews {
		if r.MovieID == movieID && r.UserID == userID {
			return nil, repository.ErrDuplicateReview
		}
	}

	movie.ApplyRating(input.Rating)
	f.s.movies[movieID] = movie

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	now := time.Now()
	review := models.Review{
		ID:          f.s.id(),
		UserID:      userID,
		MovieID:     movieID,
		Rating:      input.Rating,
		Description: input.Description,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.s.reviews[review.ID] = review
	hydrated := f.s.hydrate(review)
	return &hydrated, nil
}

func (f *fakeReviews) ListByMovie(_ context.Context, movieID uint, filter models.ReviewFilter) ([]models.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Review
	for _, r := range f.s.reviewsForMovie(movieID) {
		if filter.Username != "" && r.User.Username != filter.Username {
			continue
		}
		if filter.IsActive != nil && r.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReviews) ListByUsername(_ context.Context, username string) ([]models.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Review
	for _, r := range f.s.reviews {
		hydrated := f.s.hydrate(r)
		if hydrated.User.Username == username {
			out = append(out, hydrated)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReviews) GetByID(_ context.Context, id uint) (*models.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	r, ok := f.s.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	hydrated := f.s.hydrate(r)
	return &hydrated, nil
}

func (f *fakeReviews) Update(_ context.Context, review *models.Review) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.reviews[review.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *review
	stored.User = models.User{}
	stored.Movie = models.Movie{}
	stored.UpdatedAt = time.Now()
	f.s.reviews[review.ID] = stored
	return nil
}

func (f *fakeReviews) Delete(_ context.Context, id uint) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.reviews, id)
	return nil
}
