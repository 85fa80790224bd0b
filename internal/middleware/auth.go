package middleware

import (
	"net/http"

	"tcu-system/internal/models"

	"github.com/gin-gonic/gin"
)

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireRole(kinds ...models.RoleKind) gin.HandlerFunc {
	kindSet := map[models.RoleKind]struct{}{}
	for _, k := range kinds {
		kindSet[k] = struct{}{}
	}

	return func(c *gin.Context) {
		kind, ok := CurrentRole(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if _, ok := kindSet[kind]; !ok {
			c.String(http.StatusForbidden, "No tienes permiso para acceder a esta página")
			c.Abort()
			return
		}
		c.Next()
	}
}

// JSON variants for the delete endpoints, which answer structured payloads
// instead of redirects.

func RequireAuthJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "No autenticado",
			})
			return
		}
		c.Next()
	}
}

func RequireRoleJSON(kinds ...models.RoleKind) gin.HandlerFunc {
	kindSet := map[models.RoleKind]struct{}{}
	for _, k := range kinds {
		kindSet[k] = struct{}{}
	}

	return func(c *gin.Context) {
		kind, ok := CurrentRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "No autenticado",
			})
			return
		}
		if _, ok := kindSet[kind]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "No autorizado",
			})
			return
		}
		c.Next()
	}
}
