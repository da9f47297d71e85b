package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festivo/backend/internal/domain/identity"
	"github.com/festivo/backend/internal/interfaces/http/dto"
)

// RoleCheck is a predicate over the principal's role
type RoleCheck func(identity.Role) bool

// RequireRole aborts with 403 unless the principal's role passes the check.
// It must run after JWTAuth.
func RequireRole(check RoleCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}
		if !check(claims.GetRole()) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient role for this operation"))
			return
		}
		c.Next()
	}
}

// RequireFinanceEditor limits a route to roles that may edit finance entries
func RequireFinanceEditor() gin.HandlerFunc {
	return RequireRole(identity.Role.CanManageFinance)
}

// RequireExporter limits a route to roles that may download exports
func RequireExporter() gin.HandlerFunc {
	return RequireRole(identity.Role.CanExport)
}

// RequireSponsorManager limits a route to roles that may edit sponsors
func RequireSponsorManager() gin.HandlerFunc {
	return RequireRole(identity.Role.CanManageSponsors)
}

// RequireSyncTrigger limits a route to roles that may trigger a manual sync
func RequireSyncTrigger() gin.HandlerFunc {
	return RequireRole(identity.Role.CanTriggerSync)
}
