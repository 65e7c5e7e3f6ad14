package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElenaAntonenko/foodgram-project-react/internal/service"
)

type stubValidator struct {
	userID uint
	err    error
}

func (s *stubValidator) ValidateToken(token string) (*service.TokenClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &service.TokenClaims{UserID: s.userID}, nil
}

func performRequest(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(validator TokenValidator) *gin.Engine {
		router := gin.New()
		router.GET("/protected", AuthMiddleware(validator), func(c *gin.Context) {
			id, ok := CurrentUserID(c)
			require.True(t, ok)
			c.JSON(http.StatusOK, gin.H{"user_id": id})
		})
		return router
	}

	t.Run("missing header", func(t *testing.T) {
		router := setup(&stubValidator{userID: 7})
		w := performRequest(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		router := setup(&stubValidator{userID: 7})
		w := performRequest(router, "Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		router := setup(&stubValidator{err: errors.New("token is expired")})
		w := performRequest(router, "Bearer abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		router := setup(&stubValidator{userID: 7})
		w := performRequest(router, "Bearer abc")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "7")
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(validator TokenValidator) *gin.Engine {
		router := gin.New()
		router.GET("/protected", OptionalAuthMiddleware(validator), func(c *gin.Context) {
			caller := Caller(c)
			if caller == nil {
				c.JSON(http.StatusOK, gin.H{"caller": nil})
				return
			}
			c.JSON(http.StatusOK, gin.H{"caller": *caller})
		})
		return router
	}

	t.Run("anonymous passes through", func(t *testing.T) {
		router := setup(&stubValidator{userID: 7})
		w := performRequest(router, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "null")
	})

	t.Run("bad token treated as anonymous", func(t *testing.T) {
		router := setup(&stubValidator{err: errors.New("bad token")})
		w := performRequest(router, "Bearer abc")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "null")
	})

	t.Run("valid token sets the caller", func(t *testing.T) {
		router := setup(&stubValidator{userID: 7})
		w := performRequest(router, "Bearer abc")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"caller":7`)
	})
}
