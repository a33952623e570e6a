package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moviehub/models"
	"moviehub/repository"
	"moviehub/utils"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// GetMovies returns one page of movies in a count/page/pages envelope.
func (a *API) GetMovies(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	movies, total, err := a.Repo.Movies.List(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movies"})
		return
	}

	pages := int(total) / pageSize
	if int(total)%pageSize != 0 || pages == 0 {
		pages++
	}

	c.JSON(http.StatusOK, MoviePage{
		Count:   total,
		Page:    page,
		Pages:   pages,
		Results: serializeMovies(movies),
	})
}

func (a *API) CreateMovie(c *gin.Context) {
	var input models.MovieInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	// The platform reference is client input, so a dangling id is a 400,
	// not a 404.
	if _, err := a.Repo.Platforms.GetByID(c.Request.Context(), input.PlatformID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"platform_id": "platform does not exist"}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create movie"})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	movie := models.Movie{
		Name:        input.Name,
		Description: input.Description,
		PlatformID:  input.PlatformID,
		IsActive:    isActive,
	}
	if err := a.Repo.Movies.Create(c.Request.Context(), &movie); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create movie"})
		return
	}

	c.JSON(http.StatusCreated, serializeMovie(movie))
}

func (a *API) GetMovieByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	movie, err := a.Repo.Movies.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movie"})
		return
	}

	c.JSON(http.StatusOK, serializeMovie(*movie))
}

// UpdateMovie rewrites the client-writable fields. The derived rating
// aggregate is owned by review creation and is deliberately untouched here.
func (a *API) UpdateMovie(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	movie, err := a.Repo.Movies.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movie"})
		return
	}

	var input models.MovieInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if input.PlatformID != movie.PlatformID {
		if _, err := a.Repo.Platforms.GetByID(c.Request.Context(), input.PlatformID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"platform_id": "platform does not exist"}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update movie"})
			return
		}
	}

	movie.Name = input.Name
	movie.Description = input.Description
	movie.PlatformID = input.PlatformID
	if input.IsActive != nil {
		movie.IsActive = *input.IsActive
	}
	if err := a.Repo.Movies.Update(c.Request.Context(), movie); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update movie"})
		return
	}

	c.JSON(http.StatusOK, serializeMovie(*movie))
}

func (a *API) DeleteMovie(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := a.Repo.Movies.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete movie"})
		return
	}

	c.Status(http.StatusNoContent)
}
