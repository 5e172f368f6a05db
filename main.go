package main

import (
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"spareparts-app/config"
	"spareparts-app/database"
	"spareparts-app/jobs"
	"spareparts-app/middleware"
	"spareparts-app/routes"
	"spareparts-app/services"
	"spareparts-app/storage"
	"spareparts-app/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	// Seed database with catalog data (optional - for development)
	if err := database.SeedData(db); err != nil {
		logrus.WithError(err).Warn("Failed to seed database")
	}

	// Blob store for uploaded part images
	blobs, err := storage.NewFromConfig(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize blob store")
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Create router
	router := gin.Default()

	// Setup CORS middleware
	router.Use(routes.SetupCORS())

	// Security headers
	router.Use(middleware.SecurityHeaders())

	// HTML templates
	tmpl, err := loadTemplates("templates", template.FuncMap{
		"imageURL": blobs.PublicPath,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load templates")
	}
	router.SetHTMLTemplate(tmpl)

	// Render the error page for anything unhandled
	router.Use(gin.CustomRecovery(func(c *gin.Context, _ interface{}) {
		utils.Render(c, http.StatusInternalServerError, "errors/500.html", gin.H{
			"title": "Server Error",
		})
	}))

	// Email service for password resets
	emailService := services.NewEmailService(cfg)

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService, blobs)

	// Background sweep for expired reset tokens
	cleanupJob := jobs.NewResetTokenCleanupJob(db, time.Hour)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	// Start server; MethodOverride must wrap the engine so HTML forms can
	// issue PUT and DELETE
	logrus.Infof("Starting Spare Parts App server on port %s", cfg.Port)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: middleware.MethodOverride(router),
	}
	if err := srv.ListenAndServe(); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}

// loadTemplates parses every .html file under dir into one template set.
// Each file carries its own {{define}} with a path-style name, so pages can
// live in nested directories.
func loadTemplates(dir string, funcs template.FuncMap) (*template.Template, error) {
	tmpl := template.New("").Funcs(funcs)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".html") {
			return err
		}
		_, err = tmpl.ParseFiles(path)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}
