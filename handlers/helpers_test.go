package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/models"
	"moviehub/utils"
)

// allowAll is a Limiter that never rejects; quota behavior has its own tests
// in the middleware package.
type allowAll struct{}

func (allowAll) Allow(string, int, time.Duration) (bool, int, error) {
	return true, 0, nil
}

func newTestServer(t *testing.T) (*gin.Engine, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newFakeStore()
	api := New(store.repo())

	r := gin.New()
	api.RegisterRoutes(r, allowAll{}, Quotas{
		Anon:         1000,
		ReviewList:   1000,
		ReviewCreate: 1000,
		Window:       time.Minute,
	})
	return r, store
}

// addUser seeds an account and returns it with a valid bearer token.
func addUser(t *testing.T, s *fakeStore, username, role string) (models.User, string) {
	t.Helper()
	user := models.User{
		ID:       s.id(),
		Username: username,
		Email:    username + "@example.com",
		Password: "unused",
		Role:     role,
	}
	s.users[user.ID] = user

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user, token
}

func addPlatform(t *testing.T, s *fakeStore, name string) models.Platform {
	t.Helper()
	platform := models.Platform{ID: s.id(), Name: name, About: "About " + name, Website: "https://example.com"}
	s.platforms[platform.ID] = platform
	return platform
}

func addMovie(t *testing.T, s *fakeStore, platformID uint, name string) models.Movie {
	t.Helper()
	movie := models.Movie{ID: s.id(), Name: name, Description: "A movie", PlatformID: platformID, IsActive: true, CreatedAt: time.Now()}
	s.movies[movie.ID] = movie
	return movie
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
