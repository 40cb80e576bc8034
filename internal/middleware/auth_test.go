package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"identity-service/internal/service"
)

func newGateRouter(tokens *service.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokens, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet(ContextUserID).(int64)})
	})
	return r
}

func TestAuthMiddleware_UniformRejection(t *testing.T) {
	tokens := service.NewTokenService("test-secret", 24*time.Hour)
	r := newGateRouter(tokens)

	expired, err := tokens.Issue(1, time.Now().Add(-25*time.Hour))
	require.NoError(t, err)
	forged, err := service.NewTokenService("other-secret", 24*time.Hour).Issue(1, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "malformed token", header: "Bearer not-a-token"},
		{name: "expired token", header: "Bearer " + expired},
		{name: "forged token", header: "Bearer " + forged},
	}

	// Every rejection must be byte-identical so the response does not reveal
	// why the token was refused.
	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			bodies = append(bodies, w.Body.String())
		})
	}

	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i])
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := service.NewTokenService("test-secret", 24*time.Hour)
	r := newGateRouter(tokens)

	tokenString, err := tokens.Issue(42, time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 42}`, w.Body.String())
}

func TestAuthMiddleware_BearerPrefixOptional(t *testing.T) {
	tokens := service.NewTokenService("test-secret", 24*time.Hour)
	r := newGateRouter(tokens)

	tokenString, err := tokens.Issue(42, time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", tokenString)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
