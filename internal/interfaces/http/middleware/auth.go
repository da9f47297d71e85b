// Package middleware holds the gin middleware chain: request id, CORS,
// JWT authentication and role checks.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festivo/backend/internal/infrastructure/auth"
	"github.com/festivo/backend/internal/infrastructure/logger"
	"github.com/festivo/backend/internal/interfaces/http/dto"
)

// Context keys for the authenticated principal
const (
	ClaimsKey     = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTAuth validates the bearer token and stores the claims in the gin
// context. Every route behind it is scoped to the token's tenant.
func JWTAuth(jwtService *auth.JWTService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if log != nil {
				log.Warn("JWT validation failed",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
			}
			switch err {
			case auth.ErrExpiredToken:
				abortUnauthorized(c, dto.ErrCodeTokenExpired, "Token has expired")
			default:
				abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid token")
			}
			return
		}

		c.Set(ClaimsKey, claims)

		// propagate principal fields into the request context for logging
		ctx := c.Request.Context()
		ctxLog := logger.FromContext(ctx)
		ctx, ctxLog = logger.WithUserID(ctx, ctxLog, claims.UserID)
		ctx, _ = logger.WithTenantID(ctx, ctxLog, claims.TenantID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetClaims retrieves the validated claims from the gin context
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(ClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}
