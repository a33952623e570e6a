package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"moviehub/cache"
	"moviehub/middleware"
	"moviehub/models"
	"moviehub/monitoring"
	"moviehub/repository"
	"moviehub/utils"
)

// CreateReview submits a review for the movie in the path. The repository
// runs the duplicate check and the rating aggregation in one transaction, so
// by the time this handler sees a review the movie's aggregate is already
// updated.
func (a *API) CreateReview(c *gin.Context) {
	movieID, ok := paramID(c)
	if !ok {
		return
	}
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	review, err := a.Repo.Reviews.CreateForMovie(c.Request.Context(), movieID, user.ID, input)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
		case errors.Is(err, repository.ErrDuplicateReview):
			monitoring.DuplicateReviewsTotal.Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have already submitted a review"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		}
		return
	}

	monitoring.ReviewsCreatedTotal.Inc()

	// Invalidate the cached review list for this movie
	go func(mID uint) {
		if cache.IsRedisAvailable() {
			cache.InvalidateReviews(mID)
			utils.Log.Debug(fmt.Sprintf("Reviews cache invalidated for movie %d", mID))
		}
	}(movieID)

	c.JSON(http.StatusCreated, serializeReview(*review))
}

// GetMovieReviews lists reviews for one movie, filterable by username and
// is_active. Unfiltered listings are served from the Redis cache when warm.
func (a *API) GetMovieReviews(c *gin.Context) {
	movieID, ok := paramID(c)
	if !ok {
		return
	}

	if _, err := a.Repo.Movies.GetByID(c.Request.Context(), movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	filter := models.ReviewFilter{Username: c.Query("username")}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}
	unfiltered := filter.Username == "" && filter.IsActive == nil

	if unfiltered && cache.IsRedisAvailable() {
		var cached []ReviewResponse
		if err := cache.GetReviews(movieID, &cached); err == nil {
			utils.Log.Debug(fmt.Sprintf("Cache HIT: reviews for movie %d", movieID))
			c.JSON(http.StatusOK, cached)
			return
		}
		utils.Log.Debug(fmt.Sprintf("Cache MISS: reviews for movie %d", movieID))
	}

	reviews, err := a.Repo.Reviews.ListByMovie(c.Request.Context(), movieID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	out := serializeReviews(reviews)

	if unfiltered && cache.IsRedisAvailable() {
		cache.SetReviews(movieID, out)
	}

	c.JSON(http.StatusOK, out)
}

// GetReviews lists all reviews written by the user named in the query string.
func (a *API) GetReviews(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"username": "username is required"}})
		return
	}

	reviews, err := a.Repo.Reviews.ListByUsername(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, serializeReviews(reviews))
}

func (a *API) GetReviewByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	review, err := a.Repo.Reviews.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
		return
	}

	c.JSON(http.StatusOK, serializeReview(*review))
}

// UpdateReview lets the review's author change its rating text and fields.
// The movie aggregate is not recomputed on update; only creation feeds it.
func (a *API) UpdateReview(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	review, err := a.Repo.Reviews.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	if user.ID != review.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the review author can edit it"})
		return
	}

	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	review.Rating = input.Rating
	review.Description = input.Description
	if input.IsActive != nil {
		review.IsActive = *input.IsActive
	}
	if err := a.Repo.Reviews.Update(c.Request.Context(), review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	go func(mID uint) {
		if cache.IsRedisAvailable() {
			cache.InvalidateReviews(mID)
		}
	}(review.MovieID)

	c.JSON(http.StatusOK, serializeReview(*review))
}

// DeleteReview removes a review. Authors can delete their own reviews and
// admins can delete anyone's. The movie aggregate keeps the rating it
// absorbed at creation time; deletion does not unwind it.
func (a *API) DeleteReview(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	review, err := a.Repo.Reviews.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	if !user.IsAdmin() && user.ID != review.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins or the review author can delete"})
		return
	}

	if err := a.Repo.Reviews.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	go func(mID uint) {
		if cache.IsRedisAvailable() {
			cache.InvalidateReviews(mID)
			utils.Log.Debug(fmt.Sprintf("Reviews cache invalidated for movie %d", mID))
		}
	}(review.MovieID)

	c.Status(http.StatusNoContent)
}
