package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.RegisteredClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthRouter(issuer string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware("secret", issuer), func(c *gin.Context) {
		userID, _ := middleware.GetUserIDFromContext(c)
		fromCtx, _ := middleware.GetUserIDFromCtx(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user": userID, "ctx": fromCtx})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := jwt.RegisteredClaims{
		Subject:   "u-1",
		Issuer:    "identity",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	noSubject := valid
	noSubject.Subject = ""

	tests := []struct {
		name     string
		issuer   string
		header   string
		wantCode int
		wantBody string
	}{
		{"missing header", "", "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "", "Basic abc", http.StatusUnauthorized, "Bearer {token}"},
		{"valid", "", "Bearer " + signed(t, valid, "secret"), http.StatusOK, `"user":"u-1"`},
		{"valid with issuer", "identity", "Bearer " + signed(t, valid, "secret"), http.StatusOK, `"ctx":"u-1"`},
		{"wrong issuer", "other", "Bearer " + signed(t, valid, "secret"), http.StatusUnauthorized, "Invalid token"},
		{"expired", "", "Bearer " + signed(t, expired, "secret"), http.StatusUnauthorized, "Token has expired"},
		{"bad signature", "", "Bearer " + signed(t, valid, "nope"), http.StatusUnauthorized, "Invalid token"},
		{"no subject", "", "Bearer " + signed(t, noSubject, "secret"), http.StatusUnauthorized, "Invalid token claims"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter(tt.issuer).ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter, err := middleware.NewMemoryRateLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.RateLimit(limiter))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes[i] = w.Code
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewMemoryRateLimiter_BadFormat(t *testing.T) {
	_, err := middleware.NewMemoryRateLimiter("lots")
	assert.Error(t, err)
}
