package http

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Meenakshi1402/project-ReadRater/internal/auth"
	"github.com/Meenakshi1402/project-ReadRater/internal/database"
	"github.com/Meenakshi1402/project-ReadRater/internal/database/books"
	"github.com/Meenakshi1402/project-ReadRater/internal/database/reviews"
)

// RouterConfig carries everything the HTTP layer needs to serve the
// catalogue: repositories, the auth service, session handling and the
// on-disk locations of templates and static assets.
type RouterConfig struct {
	Database       *database.Database
	Books          *books.Repository
	Reviews        *reviews.Repository
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	TemplatesPath  string
	StaticPath     string
	CSRFSecret     string
	SecureCookies  bool
	Version        string
}

// NewRouter wires middleware, controllers and routes into a gin engine.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(auth.SecurityHeadersMiddleware())

	if cfg.CSRFSecret != "" {
		router.Use(auth.CSRFMiddleware([]byte(cfg.CSRFSecret), cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
		router.Use(auth.CurrentUser(cfg.SessionManager))
	}

	if cfg.TemplatesPath != "" {
		pattern := filepath.Join(cfg.TemplatesPath, "*.html")
		if templates, err := template.ParseGlob(pattern); err == nil {
			router.SetHTMLTemplate(templates)
		} else {
			log.Printf("Templates not loaded from %s: %v", pattern, err)
		}
	}

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	healthController := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", healthController.Health)

	booksController := NewBooksController(cfg.Books, cfg.Reviews)
	router.GET("/", booksController.ListPage)
	router.GET("/books/:id", booksController.DetailPage)
	router.GET("/books/add",
		auth.RequireAuth("You must be logged in to add books."),
		booksController.AddPage)
	router.POST("/books/add",
		auth.RequireAuth("You must be logged in to add books."),
		booksController.Add)
	router.GET("/books/:id/edit",
		auth.RequireAuth("You must be logged in to edit books."),
		booksController.EditPage)
	router.POST("/books/:id/edit",
		auth.RequireAuth("You must be logged in to edit books."),
		booksController.Edit)
	router.POST("/books/:id/delete",
		auth.RequireAuth("You must be logged in to delete books."),
		booksController.Delete)

	reviewsController := NewReviewsController(cfg.Reviews, cfg.Books)
	router.POST("/books/:id/review",
		auth.RequireAuth("You must be logged in to post a review."),
		reviewsController.Create)
	router.POST("/reviews/:id/delete",
		auth.RequireAuth("You must be logged in to delete reviews."),
		reviewsController.Delete)

	if cfg.AuthService != nil && cfg.SessionManager != nil {
		authController, err := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.TemplatesPath)
		if err != nil {
			return nil, fmt.Errorf("setting up auth controller: %w", err)
		}
		authController.RegisterRoutes(router)
	}

	return router, nil
}

// Serve runs the engine until SIGINT or SIGTERM, then drains in-flight
// requests within shutdownTimeout before returning.
func Serve(router *gin.Engine, addr string, shutdownTimeout time.Duration) error {
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
