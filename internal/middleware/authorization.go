// Package middleware provides role and permission checks for protected routes.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/dto"
	"github.com/bounswe/bounswe2025group9-sub004/internal/i18n"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service"
)

// AuthorizationConfig describes what a route demands from the caller.
// Routes guard themselves by permission (plans:write on POST /plans) rather
// than by role, so RequiredRoles is usually empty.
type AuthorizationConfig struct {
	// RequiredRoles grants access when the caller holds ANY listed role ID.
	// Empty means any authenticated account passes the role check.
	RequiredRoles []string
	// RequiredPermissions lists permission IDs the caller's roles must grant.
	RequiredPermissions []string
	// RequireAllPermissions demands every listed permission instead of any one.
	RequireAllPermissions bool
}

// RequireAuthorization checks the JWT claims set by JWTAuth against cfg.
// Role documents are loaded per request so a permission revoked mid-session
// takes effect without waiting for the token to expire.
func RequireAuthorization(cfg AuthorizationConfig, roleService service.RoleService, permissionService service.PermissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		if claims == nil {
			abortAuthz(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyUnauthorized)
			return
		}

		if len(cfg.RequiredRoles) > 0 && !holdsAny(claims.Roles, cfg.RequiredRoles) {
			abortAuthz(c, http.StatusForbidden, dto.ErrCodeForbidden, i18n.ErrKeyForbidden)
			return
		}

		if len(cfg.RequiredPermissions) > 0 {
			granted := grantedPermissions(c, claims.Roles, roleService)
			if !permitted(granted, cfg.RequiredPermissions, cfg.RequireAllPermissions) {
				abortAuthz(c, http.StatusForbidden, dto.ErrCodeForbidden, i18n.ErrKeyForbidden)
				return
			}
		}

		c.Next()
	}
}

// claimsFrom extracts the claims stored by JWTAuth, nil when absent or of
// the wrong type.
func claimsFrom(c *gin.Context) *dto.Claims {
	v, exists := c.Get("user_claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*dto.Claims)
	if !ok {
		return nil
	}
	return claims
}

// grantedPermissions resolves the caller's role documents and collects every
// permission ID they grant. Malformed or unknown role IDs are skipped, which
// leaves those roles contributing nothing.
func grantedPermissions(c *gin.Context, roleIDs []string, roleService service.RoleService) map[string]bool {
	granted := make(map[string]bool)
	if roleService == nil {
		return granted
	}
	for _, hexID := range roleIDs {
		roleID, err := primitive.ObjectIDFromHex(hexID)
		if err != nil {
			continue
		}
		role, err := roleService.FindByID(c.Request.Context(), roleID)
		if err != nil || role == nil {
			continue
		}
		for _, permID := range role.Permissions {
			granted[permID] = true
		}
	}
	return granted
}

// permitted reports whether the granted set satisfies the required list,
// either completely or by at least one entry.
func permitted(granted map[string]bool, required []string, requireAll bool) bool {
	if requireAll {
		for _, permID := range required {
			if !granted[permID] {
				return false
			}
		}
		return true
	}
	for _, permID := range required {
		if granted[permID] {
			return true
		}
	}
	return false
}

// holdsAny reports whether held and wanted intersect.
func holdsAny(held, wanted []string) bool {
	for _, w := range wanted {
		for _, h := range held {
			if h == w {
				return true
			}
		}
	}
	return false
}

func abortAuthz(c *gin.Context, status int, code string, msgKey string) {
	message := i18n.GetTranslator().Translate(msgKey, i18n.GetLocale(c))
	c.AbortWithStatusJSON(status, dto.NewError(code, message).WithRequestID(GetRequestID(c)))
}
