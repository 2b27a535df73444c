package http

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/pkg/apperror"
	"github.com/khoahotran/hireboard/pkg/auth"
	"github.com/khoahotran/hireboard/pkg/logger"
)

const (
	GinContextKeyUserID = "userID"
	GinContextKeyRole   = "role"
	HeaderRequestID     = "X-Request-ID"
)

func AuthMiddleware(jwtSvc *auth.JWTService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, apperror.NewUnauthorized("Authorization header is required", nil))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			abortWith(c, apperror.NewUnauthorized("Invalid token format", nil))
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			log.Debug("Rejected token", zap.Error(err))
			abortWith(c, apperror.NewUnauthorized("Invalid or expired token", err))
			return
		}

		c.Set(GinContextKeyUserID, claims.UserID)
		c.Set(GinContextKeyRole, claims.Role)

		c.Next()
	}
}

// RequireRole lets the request through only when the authenticated role is one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := GetRoleFromGinContext(c)
		if !slices.Contains(roles, role) {
			abortWith(c, apperror.NewPermissionDenied("role '"+role+"' may not access this resource"))
			return
		}
		c.Next()
	}
}

func GetUserIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(GinContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return userUUID, true
}

func GetRoleFromGinContext(c *gin.Context) (string, bool) {
	role, ok := c.Get(GinContextKeyRole)
	if !ok {
		return "", false
	}
	s, ok := role.(string)
	return s, ok
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	c.AbortWithStatusJSON(apperror.ToHTTPStatus(err), err.ToJSON())
}

// ErrorMiddleware renders the last error pushed with c.Error as the JSON envelope.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unexpected error", err)
		}

		status := apperror.ToHTTPStatus(appErr)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.String("request_id", c.GetString(HeaderRequestID)),
		}
		if status >= http.StatusInternalServerError {
			log.Error(appErr.Message, appErr, fields...)
		} else {
			log.Warn(appErr.Message, append(fields, zap.String("details", appErr.Details))...)
		}

		c.JSON(status, appErr.ToJSON())
	}
}

// TimeoutMiddleware bounds every request context; store calls hitting the
// deadline surface as persist errors.
func TimeoutMiddleware(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(HeaderRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()

		log.Info("HTTP request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
