package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"moviehub/models"
	"moviehub/repository"
	"moviehub/utils"
)

type staticUsers map[uint]models.User

func (s staticUsers) Create(context.Context, *models.User) error { return nil }

func (s staticUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := s[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s staticUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range s {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newAuthEngine(users staticUsers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authenticate(users))
	r.GET("/public", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	r.POST("/admin", AdminOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func get(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticateAnonymousPassesThrough(t *testing.T) {
	r := newAuthEngine(staticUsers{})

	if rec := get(r, http.MethodGet, "/public", ""); rec.Code != http.StatusOK {
		t.Fatalf("public status = %d, want 200", rec.Code)
	}
	if rec := get(r, http.MethodGet, "/private", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("private status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	r := newAuthEngine(staticUsers{})

	if rec := get(r, http.MethodGet, "/public", "garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d, want 401", rec.Code)
	}

	// Valid signature but the account no longer exists.
	token, err := utils.GenerateToken(99)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if rec := get(r, http.MethodGet, "/private", token); rec.Code != http.StatusUnauthorized {
		t.Fatalf("orphan token status = %d, want 401", rec.Code)
	}
}

func TestAdminOnly(t *testing.T) {
	users := staticUsers{
		1: {ID: 1, Username: "alice", Role: "user"},
		2: {ID: 2, Username: "root", Role: "admin"},
	}
	r := newAuthEngine(users)

	userToken, _ := utils.GenerateToken(1)
	adminToken, _ := utils.GenerateToken(2)

	if rec := get(r, http.MethodPost, "/admin", ""); rec.Code != http.StatusForbidden {
		t.Fatalf("anonymous status = %d, want 403", rec.Code)
	}
	if rec := get(r, http.MethodPost, "/admin", userToken); rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin status = %d, want 403", rec.Code)
	}
	if rec := get(r, http.MethodPost, "/admin", adminToken); rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", rec.Code)
	}
}
