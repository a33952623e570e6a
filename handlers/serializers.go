package handlers

import (
	"fmt"
	"time"

	"moviehub/models"
)

// Wire representations. Reviews render their author as a display string and
// drop the movie back-reference; movies embed their reviews in short display
// form; platforms embed their movies in full.

type ReviewResponse struct {
	ID          uint      `json:"id"`
	User        string    `json:"user"`
	Rating      int       `json:"rating"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MovieResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	PlatformID   uint      `json:"platform_id"`
	IsActive     bool      `json:"is_active"`
	AvgRating    float64   `json:"avg_rating"`
	NumberRating int       `json:"number_rating"`
	CreatedAt    time.Time `json:"created_at"`
	Reviews      []string  `json:"reviews"`
}

type PlatformResponse struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	About   string          `json:"about"`
	Website string          `json:"website"`
	Movies  []MovieResponse `json:"movies"`
}

// MoviePage is the page-based envelope for the movie list.
type MoviePage struct {
	Count   int64           `json:"count"`
	Page    int             `json:"page"`
	Pages   int             `json:"pages"`
	Results []MovieResponse `json:"results"`
}

func serializeReview(r models.Review) ReviewResponse {
	return ReviewResponse{
		ID:          r.ID,
		User:        r.User.Username,
		Rating:      r.Rating,
		Description: r.Description,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func serializeReviews(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, serializeReview(r))
	}
	return out
}

func serializeMovie(m models.Movie) MovieResponse {
	summaries := make([]string, 0, len(m.Reviews))
	for _, r := range m.Reviews {
		summaries = append(summaries, fmt.Sprintf("%d | %s", r.Rating, m.Name))
	}
	return MovieResponse{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		PlatformID:   m.PlatformID,
		IsActive:     m.IsActive,
		AvgRating:    m.AvgRating,
		NumberRating: m.NumberRating,
		CreatedAt:    m.CreatedAt,
		Reviews:      summaries,
	}
}

func serializeMovies(movies []models.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, serializeMovie(m))
	}
	return out
}

func serializePlatform(p models.Platform) PlatformResponse {
	return PlatformResponse{
		ID:      p.ID,
		Name:    p.Name,
		About:   p.About,
		Website: p.Website,
		Movies:  serializeMovies(p.Movies),
	}
}
