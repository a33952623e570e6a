package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/middleware"
	"moviehub/monitoring"
)

// Quotas configures the named rate limit tiers.
type Quotas struct {
	Anon         int
	ReviewList   int
	ReviewCreate int
	Window       time.Duration
}

// RegisterRoutes wires authentication and the resource surface onto the
// engine. Quota tiers are tracked independently: the general anonymous tier
// covers the movie list, the review list carries its own tier on top of the
// anonymous one, and review creation has a per-user tier.
func (a *API) RegisterRoutes(r *gin.Engine, limiter middleware.Limiter, q Quotas) {
	r.Use(middleware.Authenticate(a.Repo.Users))

	anonLimit := middleware.RateLimit(limiter, "anon", q.Anon, q.Window)
	reviewListLimit := middleware.RateLimit(limiter, "review-list", q.ReviewList, q.Window)
	reviewCreateLimit := middleware.RateLimit(limiter, "review-create", q.ReviewCreate, q.Window)

	r.GET("/health", a.Health)
	r.GET("/metrics", monitoring.PrometheusHandler())

	r.POST("/register", a.Register)
	r.POST("/login", a.Login)

	// Movies: public reads, admin writes
	r.GET("/movie/", anonLimit, a.GetMovies)
	r.POST("/movie/", middleware.AdminOnly(), a.CreateMovie)
	r.GET("/movie/:id/", a.GetMovieByID)
	r.PUT("/movie/:id/", middleware.AdminOnly(), a.UpdateMovie)
	r.DELETE("/movie/:id/", middleware.AdminOnly(), a.DeleteMovie)

	// Platforms: public reads, admin writes
	r.GET("/platform/", a.GetPlatforms)
	r.POST("/platform/", middleware.AdminOnly(), a.CreatePlatform)
	r.GET("/platform/:id/", a.GetPlatformByID)
	r.PUT("/platform/:id/", middleware.AdminOnly(), a.UpdatePlatform)
	r.DELETE("/platform/:id/", middleware.AdminOnly(), a.DeletePlatform)

	// Reviews
	r.GET("/movie/:id/reviews/", reviewListLimit, anonLimit, a.GetMovieReviews)
	r.POST("/movie/:id/review-create/", middleware.RequireAuth(), reviewCreateLimit, a.CreateReview)
	r.GET("/reviews/", a.GetReviews)
	r.GET("/reviews/:id/", a.GetReviewByID)
	r.PUT("/reviews/:id/", middleware.RequireAuth(), a.UpdateReview)
	r.DELETE("/reviews/:id/", middleware.RequireAuth(), a.DeleteReview)
}
