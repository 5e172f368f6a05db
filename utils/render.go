package utils

import (
	"github.com/gin-gonic/gin"

	"spareparts-app/models"
)

// ContextUserKey is the gin context field holding the request's loaded
// *models.User, populated once per request by the CurrentUser middleware.
const ContextUserKey = "current_user"

// CurrentUser returns the request's authenticated user, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// Render executes an HTML template with the view context every page needs:
// the current user and the drained flash messages, merged with the
// handler-provided data.
func Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["currentUser"] = CurrentUser(c)
	data["messages"] = DrainFlashes(c)
	c.HTML(status, name, data)
}
