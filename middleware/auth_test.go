package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmoralesv/event-night-backend/config"
)

func authTestRouter(secret string) (*gin.Engine, *StaffContext) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTAccessSecret: secret}

	var captured StaffContext
	r := gin.New()
	r.GET("/ping", AuthMiddleware(cfg), func(c *gin.Context) {
		staff, _ := GetStaffFromContext(c)
		captured = staff
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, &captured
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	r, captured := authTestRouter("secret")

	token := signToken(t, "secret", jwt.MapClaims{"user_id": float64(42), "email": "staff@club.com"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(42), captured.UserID)
	assert.Equal(t, "staff@club.com", captured.Email)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	r, _ := authTestRouter("secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsBadSignature(t *testing.T) {
	r, _ := authTestRouter("secret")

	token := signToken(t, "other-secret", jwt.MapClaims{"user_id": float64(1)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	r, _ := authTestRouter("secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
