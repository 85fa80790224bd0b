package handlers

import (
	"tcu-system/internal/middleware"
	"tcu-system/internal/storage"

	"github.com/gin-gonic/gin"
)

// Uploads is the content store request attachments go into. Wired up in main.
var Uploads storage.Store

// render wraps c.HTML and hands every template the current user.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if user, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = user
		data["CurrentUserName"] = user.FullName()
	}
	if kind, ok := middleware.CurrentRole(c); ok {
		data["CurrentRole"] = string(kind)
	}

	c.HTML(status, tmpl, data)
}
