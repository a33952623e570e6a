package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"moviehub/cache"
	"moviehub/db"
	"moviehub/handlers"
	"moviehub/middleware"
	"moviehub/models"
	"moviehub/monitoring"
	"moviehub/repository"
	"moviehub/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	utils.InitLogger()
	monitoring.InitMetrics()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=postgres dbname=moviehub password=postgres sslmode=disable"
	}
	conn, err := db.Open(dsn)
	if err != nil {
		utils.Log.Fatal("Database init failed: ", err)
	}

	if err := cache.InitRedis(); err != nil {
		// Rate limiting and review caching degrade to no-ops without Redis
		utils.Log.Warn("Redis unavailable, rate limiting disabled: ", err)
	}
	defer cache.CloseRedis()

	repo := repository.New(conn)
	seedAdmin(repo)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(monitoring.PrometheusMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	api := handlers.New(repo)
	api.RegisterRoutes(r, middleware.RedisLimiter{}, handlers.Quotas{
		Anon:         envInt("RATE_LIMIT_ANON", 100),
		ReviewList:   envInt("RATE_LIMIT_REVIEW_LIST", 50),
		ReviewCreate: envInt("RATE_LIMIT_REVIEW_CREATE", 20),
		Window:       envDuration("RATE_LIMIT_WINDOW", time.Hour),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.Log.Info("Starting server on port ", port)
	if err := r.Run(":" + port); err != nil {
		utils.Log.Fatal("Failed to start server: ", err)
	}
}

// seedAdmin provisions the administrative account from the environment when
// it does not exist yet. Registration never hands out the admin role.
func seedAdmin(repo *repository.Repository) {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.Users.GetByUsername(ctx, username); err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.Log.Error("Failed to hash admin password: ", err)
		return
	}

	admin := models.User{
		Username: username,
		Email:    envStr("ADMIN_EMAIL", username+"@moviehub.local"),
		Password: string(hash),
		Role:     "admin",
	}
	if err := repo.Users.Create(ctx, &admin); err != nil {
		utils.Log.Error("Failed to seed admin user: ", err)
		return
	}
	utils.Log.Info("Seeded admin user ", username)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
