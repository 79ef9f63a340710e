package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/propertyops/backend/internal/infrastructure/auth"
	"github.com/propertyops/backend/internal/infrastructure/logger"
	"github.com/propertyops/backend/internal/interfaces/http/dto"
)

// Auth context keys and header constants
const (
	ActorIDKey    = "actor_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the bearer token middleware
type AuthConfig struct {
	Verifier *auth.Verifier
	// SkipPaths are exact paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultAuthConfig returns the default auth middleware configuration
func DefaultAuthConfig(verifier *auth.Verifier) AuthConfig {
	return AuthConfig{
		Verifier: verifier,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/api/v1/system/health",
		},
	}
}

// Auth creates bearer token authentication middleware. Verified
// requests carry the actor id in both the gin context and the request
// context for downstream audit recording.
func Auth(verifier *auth.Verifier) gin.HandlerFunc {
	return AuthWithConfig(DefaultAuthConfig(verifier))
}

// AuthWithConfig creates authentication middleware with custom config
func AuthWithConfig(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Missing token")
			return
		}

		claims, err := cfg.Verifier.Verify(tokenString)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Debug("Token verification failed",
					zap.String("path", path),
					zap.Error(err),
				)
			}
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrCodeTokenExpired, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Token verification failed")
			return
		}

		actorID := claims.ActorID()
		c.Set(ActorIDKey, actorID)

		ctx := c.Request.Context()
		ctx, _ = logger.WithActorID(ctx, logger.FromContext(ctx), actorID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetActorID returns the authenticated actor id from the gin context,
// or an empty string when the request is unauthenticated
func GetActorID(c *gin.Context) string {
	return c.GetString(ActorIDKey)
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, requestID))
}
