package middleware

import (
	"log"

	"tcu-system/internal/database"
	"tcu-system/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	ctxUserKey = "CurrentUser"
	ctxRoleKey = "CurrentRole"
)

// InjectUser resolves the session into a fresh User record and its RoleKind
// and puts both into the gin context. The stored role name is parsed exactly
// once, here; a name the parser does not know is logged and the request
// continues unauthenticated.
func InjectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uidRaw := sess.Get("user_id"); uidRaw != nil {
			if uid, ok := uidRaw.(uint); ok && uid > 0 {
				var user models.User
				if err := database.DB.Preload("Role").Preload("Project").First(&user, uid).Error; err == nil {
					kind, err := models.ParseRoleKind(user.Role.Name)
					if err != nil {
						log.Printf("session user %d: %v", uid, err)
					} else {
						c.Set(ctxUserKey, user)
						c.Set(ctxRoleKey, kind)
					}
				}
			}
		}

		c.Next()
	}
}

// CurrentUser returns the user InjectUser resolved for this request.
func CurrentUser(c *gin.Context) (models.User, bool) {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(models.User); ok {
			return u, true
		}
	}
	return models.User{}, false
}

// CurrentRole returns the role kind InjectUser resolved for this request.
func CurrentRole(c *gin.Context) (models.RoleKind, bool) {
	if v, ok := c.Get(ctxRoleKey); ok {
		if k, ok := v.(models.RoleKind); ok {
			return k, true
		}
	}
	return "", false
}
