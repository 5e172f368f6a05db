package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"spareparts-app/config"
	"spareparts-app/controllers"
	"spareparts-app/middleware"
	"spareparts-app/repositories"
	"spareparts-app/services"
	"spareparts-app/storage"
	"spareparts-app/utils"
)

const sessionMaxAge = 7 * 24 * 60 * 60 // 7 days, matching the cookie the original app set

// SetupCORS returns the CORS middleware used by the engine.
func SetupCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService, blobs storage.BlobStore) {
	// Session store backs both authentication and flash messages
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("spareparts_session", store))
	r.Use(middleware.CurrentUser(db))

	// Controllers
	partRepo := repositories.NewSparePartRepository(db, blobs)
	authController := controllers.NewAuthController(db, cfg, emailService)
	sparePartController := controllers.NewSparePartController(db, partRepo, blobs)
	userController := controllers.NewUserController(db)
	adminController := controllers.NewAdminController(db, partRepo)
	apiController := controllers.NewAPIController(db)
	homeController := controllers.NewHomeController(partRepo)

	// Static assets; uploaded images only when stored locally
	r.Static("/css", "public/css")
	r.Static("/js", "public/js")
	if cfg.UploadBackend == "" || cfg.UploadBackend == "local" {
		r.Static("/uploads", cfg.UploadDir)
	}

	r.GET("/", homeController.Index)

	// Convenience redirects
	r.GET("/login", func(c *gin.Context) { c.Redirect(http.StatusFound, "/auth/login") })
	r.GET("/register", func(c *gin.Context) { c.Redirect(http.StatusFound, "/auth/register") })

	auth := r.Group("/auth")
	{
		credentialLimit := middleware.RateLimit(20, 10)

		auth.GET("/register", middleware.RequireGuest(), authController.RenderRegisterForm)
		auth.POST("/register", middleware.RequireGuest(), credentialLimit, authController.Register)
		auth.GET("/login", middleware.RequireGuest(), authController.RenderLoginForm)
		auth.POST("/login", middleware.RequireGuest(), credentialLimit, authController.Login)
		auth.POST("/logout", middleware.RequireAuth(), authController.Logout)

		auth.GET("/reset-password", authController.RenderResetForm)
		auth.POST("/reset-password", credentialLimit, authController.SendResetLink)
		auth.GET("/reset-password/:token", authController.RenderNewPasswordForm)
		auth.POST("/reset-password/new", authController.ResetPassword)
	}

	spareParts := r.Group("/spare-parts")
	{
		spareParts.GET("", sparePartController.Index)
		spareParts.GET("/mine", middleware.RequireAuth(), sparePartController.Mine)
		spareParts.GET("/new", middleware.RequireAuth(), sparePartController.RenderCreateForm)
		spareParts.POST("", middleware.RequireAuth(), sparePartController.Create)
		spareParts.GET("/:id", sparePartController.Show)
		spareParts.GET("/:id/edit", middleware.RequireAuth(), sparePartController.RenderEditForm)
		spareParts.PUT("/:id", middleware.RequireAuth(), sparePartController.Update)
		spareParts.DELETE("/:id", middleware.RequireAuth(), sparePartController.Delete)
	}

	users := r.Group("/users")
	users.Use(middleware.RequireAuth())
	{
		users.GET("/profile", userController.Profile)
		users.GET("/profile/edit", userController.RenderEditForm)
		users.PUT("/profile", userController.Update)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/dashboard", adminController.Dashboard)
		admin.GET("/parts", adminController.ManageParts)
		admin.DELETE("/users/:id", adminController.DeleteUser)
	}

	api := r.Group("/api")
	{
		api.GET("/car-models", apiController.CarModels)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.Render(c, http.StatusNotFound, "errors/404.html", gin.H{
			"title": "Page Not Found",
			"url":   c.Request.URL.Path,
		})
	})
}
