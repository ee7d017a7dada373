package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/primeauto/showroom-api/internal/admins"
	"github.com/primeauto/showroom-api/internal/config"
	"github.com/primeauto/showroom-api/internal/tokens"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "middleware-test-secret-32-bytes-xx"
	return cfg
}

func protectedRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.GET("/admin", AuthRequired(cfg), AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func signToken(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	a := &admins.Admin{ID: primitive.NewObjectID(), Email: "a@example.com", Role: role}
	tok, err := tokens.GenerateAccessToken(cfg, a, time.Minute)
	require.NoError(t, err)
	return tok
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	r := protectedRouter(testConfig())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_MalformedHeader(t *testing.T) {
	r := protectedRouter(testConfig())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	r := protectedRouter(testConfig())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	cfg := testConfig()
	a := &admins.Admin{ID: primitive.NewObjectID(), Email: "a@example.com", Role: admins.RoleAdmin}
	tok, err := tokens.GenerateAccessToken(cfg, a, -time.Minute)
	require.NoError(t, err)

	r := protectedRouter(cfg)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnly_AllowsAdminRole(t *testing.T) {
	cfg := testConfig()
	r := protectedRouter(cfg)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg, admins.RoleAdmin))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

// A validly signed token whose role is not admin must be rejected with 403.
func TestAdminOnly_RejectsOtherRoles(t *testing.T) {
	cfg := testConfig()
	r := protectedRouter(cfg)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg, "customer"))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}
