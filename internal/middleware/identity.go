package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"recycle-service/pkg/common"

	"github.com/gin-gonic/gin"
)

const (
	userIdKey    = "identity_user_id"
	userRolesKey = "identity_user_roles"

	RoleAdmin = "ADMIN"
)

// Identity reads the caller identity forwarded by the gateway. The gateway
// terminates authentication upstream; this service trusts X-User-Id and
// X-User-Roles.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-User-Id"); raw != "" {
			if id, err := strconv.Atoi(raw); err == nil && id > 0 {
				c.Set(userIdKey, id)
			}
		}
		if raw := c.GetHeader("X-User-Roles"); raw != "" {
			roles := []string{}
			for _, r := range strings.Split(raw, ",") {
				if r = strings.TrimSpace(r); r != "" {
					roles = append(roles, strings.ToUpper(r))
				}
			}
			c.Set(userRolesKey, roles)
		}
		c.Next()
	}
}

// CurrentUserId returns the caller's user id, 0 when anonymous.
func CurrentUserId(c *gin.Context) int {
	if v, ok := c.Get(userIdKey); ok {
		if id, ok := v.(int); ok {
			return id
		}
	}
	return 0
}

func HasRole(c *gin.Context, role string) bool {
	v, ok := c.Get(userRolesKey)
	if !ok {
		return false
	}
	roles, ok := v.([]string)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUserId(c) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("authentication required", nil, http.StatusUnauthorized))
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects callers without the ADMIN role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUserId(c) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("authentication required", nil, http.StatusUnauthorized))
			return
		}
		if !HasRole(c, RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				common.NewErrorResponse("admin role required", nil, http.StatusForbidden))
			return
		}
		c.Next()
	}
}
