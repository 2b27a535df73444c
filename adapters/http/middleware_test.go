package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/hireboard/internal/domain/user"
	"github.com/khoahotran/hireboard/pkg/apperror"
	"github.com/khoahotran/hireboard/pkg/auth"
	"github.com/khoahotran/hireboard/pkg/logger"
)

func newTestEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func TestAuthMiddleware_SetsIdentity(t *testing.T) {
	jwtSvc := auth.NewJWTService("mw-secret", time.Hour)
	userID := uuid.New()
	token, err := jwtSvc.GenerateToken(userID, user.RoleEmployer)
	require.NoError(t, err)

	r := newTestEngine(AuthMiddleware(jwtSvc, logger.NewNop()), RequireRole(user.RoleEmployer))
	r.GET("/whoami", func(c *gin.Context) {
		id, _ := GetUserIDFromGinContext(c)
		role, _ := GetRoleFromGinContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "role": role})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
	assert.Contains(t, rec.Body.String(), user.RoleEmployer)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	jwtSvc := auth.NewJWTService("mw-secret", time.Hour)
	other := auth.NewJWTService("other-secret", time.Hour)
	foreign, err := other.GenerateToken(uuid.New(), user.RoleCandidate)
	require.NoError(t, err)

	r := newTestEngine(AuthMiddleware(jwtSvc, logger.NewNop()))
	r.GET("/private", func(c *gin.Context) { c.Status(http.StatusOK) })

	for name, header := range map[string]string{
		"missing":       "",
		"no bearer":     foreign,
		"wrong signing": "Bearer " + foreign,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	r := newTestEngine(func(c *gin.Context) {
		c.Set(GinContextKeyRole, user.RoleCandidate)
		c.Next()
	}, RequireRole(user.RoleEmployer, user.RoleAdmin))
	r.POST("/jobs", func(c *gin.Context) { c.Status(http.StatusCreated) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestErrorMiddleware_WrapsUnknownErrors(t *testing.T) {
	r := newTestEngine(ErrorMiddleware(logger.NewNop()))
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("socket closed")) })
	r.GET("/missing", func(c *gin.Context) { _ = c.Error(apperror.NewNotFound("company", "x")) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "socket closed")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTimeoutMiddleware_BoundsContext(t *testing.T) {
	r := newTestEngine(TimeoutMiddleware(50 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, time.Second)
		<-c.Request.Context().Done()
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestLogger_KeepsIncomingID(t *testing.T) {
	r := newTestEngine(RequestLogger(logger.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
}
