package entrypoint

import (
	"fmt"
	"log"
	"time"

	"github.com/Meenakshi1402/project-ReadRater/internal/auth"
	"github.com/Meenakshi1402/project-ReadRater/internal/config"
	"github.com/Meenakshi1402/project-ReadRater/internal/database"
	"github.com/Meenakshi1402/project-ReadRater/internal/database/books"
	"github.com/Meenakshi1402/project-ReadRater/internal/database/reviews"
	"github.com/Meenakshi1402/project-ReadRater/internal/database/users"
	http_controllers "github.com/Meenakshi1402/project-ReadRater/internal/http"
)

// Run wires the database, repositories, auth and HTTP layer together and
// serves until interrupted.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting ReadRater v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	userRepo := users.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	reviewRepo := reviews.NewRepository(db.DB)

	authService := auth.NewService(userRepo, cfg.Auth)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	csrfSecret := cfg.Auth.SessionSecret
	if csrfSecret == "" {
		csrfSecret, err = auth.GenerateSessionSecret()
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	}

	router, err := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		Books:          bookRepo,
		Reviews:        reviewRepo,
		AuthService:    authService,
		SessionManager: sessionManager,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		Version:        version,
	})
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	log.Printf("Serving at %s", addr)
	if err := http_controllers.Serve(router, addr, timeout); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
