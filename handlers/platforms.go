package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moviehub/models"
	"moviehub/repository"
	"moviehub/utils"
)

func (a *API) GetPlatforms(c *gin.Context) {
	platforms, err := a.Repo.Platforms.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch platforms"})
		return
	}

	out := make([]PlatformResponse, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, serializePlatform(p))
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) CreatePlatform(c *gin.Context) {
	var input models.PlatformInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	platform := models.Platform{
		Name:    input.Name,
		About:   input.About,
		Website: input.Website,
	}
	if err := a.Repo.Platforms.Create(c.Request.Context(), &platform); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create platform"})
		return
	}

	c.JSON(http.StatusCreated, serializePlatform(platform))
}

func (a *API) GetPlatformByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	platform, err := a.Repo.Platforms.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Platform not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch platform"})
		return
	}

	c.JSON(http.StatusOK, serializePlatform(*platform))
}

func (a *API) UpdatePlatform(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	platform, err := a.Repo.Platforms.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Platform not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch platform"})
		return
	}

	var input models.PlatformInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	platform.Name = input.Name
	platform.About = input.About
	platform.Website = input.Website
	if err := a.Repo.Platforms.Update(c.Request.Context(), platform); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update platform"})
		return
	}

	c.JSON(http.StatusOK, serializePlatform(*platform))
}

func (a *API) DeletePlatform(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := a.Repo.Platforms.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Platform not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete platform"})
		return
	}

	c.Status(http.StatusNoContent)
}
