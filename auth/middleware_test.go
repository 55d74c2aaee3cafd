package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ruman-Islam/doctors-portal-server/auth"
	"github.com/Ruman-Islam/doctors-portal-server/models"
	"github.com/Ruman-Islam/doctors-portal-server/store"
)

const secret = "test-secret"

type stubUsers struct {
	users map[string]models.User
}

func (s *stubUsers) Upsert(context.Context, string, models.User) (*store.UpsertResult, error) {
	return nil, nil
}

func (s *stubUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *stubUsers) All(context.Context) ([]models.User, error) { return nil, nil }

func (s *stubUsers) SetRole(context.Context, string, string) (*store.UpsertResult, error) {
	return nil, nil
}

func newRouter(users store.UserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", auth.RequireAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString(auth.EmailKey)})
	})
	router.GET("/admin-only", auth.RequireAuth(secret), auth.RequireAdmin(users), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func get(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	router := newRouter(&stubUsers{})

	token, err := auth.Sign("alice@example.com", secret)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header is unauthenticated", "", http.StatusUnauthorized},
		{"malformed header is forbidden", "nonsense", http.StatusForbidden},
		{"wrong scheme is forbidden", "Basic " + token, http.StatusForbidden},
		{"garbage token is forbidden", "Bearer garbage", http.StatusForbidden},
		{"valid token passes", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(router, "/protected", tt.header)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireAuthSetsEmail(t *testing.T) {
	router := newRouter(&stubUsers{})
	token, err := auth.Sign("alice@example.com", secret)
	require.NoError(t, err)

	w := get(router, "/protected", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestRequireAdmin(t *testing.T) {
	users := &stubUsers{users: map[string]models.User{
		"root@example.com":  {Email: "root@example.com", Role: "admin"},
		"plain@example.com": {Email: "plain@example.com"},
	}}
	router := newRouter(users)

	adminToken, err := auth.Sign("root@example.com", secret)
	require.NoError(t, err)
	plainToken, err := auth.Sign("plain@example.com", secret)
	require.NoError(t, err)
	ghostToken, err := auth.Sign("ghost@example.com", secret)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, get(router, "/admin-only", "Bearer "+adminToken).Code)
	assert.Equal(t, http.StatusForbidden, get(router, "/admin-only", "Bearer "+plainToken).Code)
	assert.Equal(t, http.StatusForbidden, get(router, "/admin-only", "Bearer "+ghostToken).Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, "/admin-only", "").Code)
}
