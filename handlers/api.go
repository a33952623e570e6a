package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moviehub/repository"
)

// API carries the injected repositories. Handlers never touch a global
// connection; everything goes through the repository interfaces.
type API struct {
	Repo *repository.Repository
}

func New(repo *repository.Repository) *API {
	return &API{Repo: repo}
}

// Health is a plain liveness probe.
func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// paramID parses the :id path segment. A non-numeric id can never reference
// a record, so it reports not found rather than a validation error.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}
