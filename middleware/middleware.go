package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"spareparts-app/models"
	"spareparts-app/utils"
)

// SessionUserKey is the session field holding the authenticated user's ID.
const SessionUserKey = "user_id"

// CurrentUser loads the session's user once per request and stores it in the
// request-scoped gin context for guards, handlers and templates. A session
// that references a vanished user is destroyed on the spot.
func CurrentUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, _ := session.Get(SessionUserKey).(string)
		if userID == "" {
			c.Next()
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			session.Clear()
			session.Save()
			c.Next()
			return
		}

		c.Set(utils.ContextUserKey, &user)
		c.Next()
	}
}

// UserFromContext returns the user loaded by CurrentUser, or nil for
// anonymous requests.
func UserFromContext(c *gin.Context) *models.User {
	return utils.CurrentUser(c)
}

// RequireAuth rejects anonymous requests with a redirect to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFromContext(c) == nil {
			utils.FlashError(c, "Please log in to access this page")
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireGuest keeps logged-in users off the login and register pages.
func RequireGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFromContext(c) != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin requires an authenticated session with the admin role. The
// anonymous case redirects to login; the authenticated-but-not-admin case is
// an access-denied redirect home, so the two are distinguishable.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := UserFromContext(c)
		if user == nil {
			utils.FlashError(c, "Please log in to access this page")
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}
		if !user.IsAdmin() {
			utils.FlashError(c, "Access denied. Admin privileges required.")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// MethodOverride lets HTML forms issue PUT and DELETE by POSTing with a
// ?_method= query parameter. It must wrap the engine rather than run as a
// gin middleware, since gin matches routes before handlers execute.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch r.URL.Query().Get("_method") {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders middleware adds security headers
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
