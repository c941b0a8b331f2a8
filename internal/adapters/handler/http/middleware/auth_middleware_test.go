package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

type MockSession struct {
	mock.Mock
}

func (m *MockSession) Current() (domain.User, error) {
	args := m.Called()
	return args.Get(0).(domain.User), args.Error(1)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Parallel()

	setupRouter := func(tokens TokenValidator) *gin.Engine {
		router := gin.New()
		router.Use(AuthMiddleware(tokens))
		router.GET("/protected", func(c *gin.Context) {
			userID, ok := GetUserID(c)
			if !ok {
				c.String(http.StatusInternalServerError, "user id not found in context")
				return
			}
			c.String(http.StatusOK, "Hello "+strconv.Itoa(userID))
		})
		return router
	}

	secret := "test-secret-middleware"
	issuer := "test-issuer"

	t.Run("Success: Valid token of the current user", func(t *testing.T) {
		t.Parallel()
		session := new(MockSession)
		session.On("Current").Return(domain.User{ID: 2, Username: "jane_smith"}, nil)
		tokenService := services.NewTokenService(secret, issuer, time.Hour, session)
		router := setupRouter(tokenService)

		token, _ := tokenService.GenerateToken(2)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Hello 2", w.Body.String())
	})

	t.Run("Fail: Missing Authorization header", func(t *testing.T) {
		t.Parallel()
		router := setupRouter(services.NewTokenService(secret, issuer, time.Hour, new(MockSession)))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "authorization header required")
	})

	t.Run("Fail: Invalid header format", func(t *testing.T) {
		t.Parallel()
		router := setupRouter(services.NewTokenService(secret, issuer, time.Hour, new(MockSession)))

		for _, h := range []string{"Bearer", "Token 12345", "Bearer12345", "Bearer a b"} {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", h)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code, "should fail for header: "+h)
		}
	})

	t.Run("Fail: Token signed with another secret", func(t *testing.T) {
		t.Parallel()
		session := new(MockSession)
		session.On("Current").Return(domain.User{ID: 1}, nil).Maybe()
		router := setupRouter(services.NewTokenService(secret, issuer, time.Hour, session))
		forged, _ := services.NewTokenService("wrong-secret", issuer, time.Hour, session).GenerateToken(1)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid or expired token")
	})

	t.Run("Fail: Expired token", func(t *testing.T) {
		t.Parallel()
		session := new(MockSession)
		session.On("Current").Return(domain.User{ID: 1}, nil).Maybe()
		expired := services.NewTokenService(secret, issuer, -time.Second, session)
		router := setupRouter(expired)

		token, _ := expired.GenerateToken(1)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: Token of a logged out user", func(t *testing.T) {
		t.Parallel()
		session := new(MockSession)
		session.On("Current").Return(domain.User{}, domain.ErrNotLoggedIn)
		tokenService := services.NewTokenService(secret, issuer, time.Hour, session)
		router := setupRouter(tokenService)

		token, _ := tokenService.GenerateToken(1)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		session.AssertExpectations(t)
	})
}
