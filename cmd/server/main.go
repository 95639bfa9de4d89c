package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/joho/godotenv"

	"inmohub/application"
	"inmohub/database"
	"inmohub/domain/contracts"
	"inmohub/infrastructure/blobstore"
	"inmohub/infrastructure/config"
	"inmohub/infrastructure/repositories"
	"inmohub/interfaces/web/handlers"
	"inmohub/interfaces/web/presenters"
	"inmohub/logging"
)

func main() {
	// Initialize configuration
	loadEnvironment()
	cfg := config.LoadAppConfigFromEnv()

	// Initialize logging
	logger := initializeLogging(cfg)

	// Initialize database
	db := initializeDatabase(cfg, logger)
	defer db.Close()

	// Build dependencies
	deps := buildDependencies(cfg, db, logger)

	// Setup routes and start server
	router := setupRoutes(deps, cfg)
	startServer(router, cfg.HTTPAddr, logger)
}

// ApplicationServices holds application services.
type ApplicationServices struct {
	CatalogService *application.CatalogService
	AdminService   *application.AdminService
	ChatService    *application.ChatService
}

// PresentationLayer groups all presentation components
type PresentationLayer struct {
	// Presenters
	PropertyPresenter *presenters.PropertyPresenter
	AdminPresenter    *presenters.AdminPresenter

	// Handlers
	PublicHandlers *handlers.PublicHandlers
	AdminHandlers  *handlers.AdminHandlers
	Sessions       *handlers.SessionManager
}

// Dependencies holds all application dependencies organized by layer
type Dependencies struct {
	// Infrastructure
	DB     *database.Database
	Media  *blobstore.DiskStore
	Logger *logging.Logger

	// Repositories
	PropertyRepo contracts.PropertyRepository

	// Application Layer
	Services *ApplicationServices

	// Presentation Layer
	Presentation *PresentationLayer
}

func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		println("No .env file found, using environment variables")
	} else {
		println("Loaded configuration from .env file")
	}
}

func initializeLogging(cfg *config.AppConfig) *logging.Logger {
	logger := logging.NewLogger(cfg.Logging)
	logging.SetDefault(logger)

	logger.Info("Application starting",
		"version", "1.0.0",
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format,
		"db_path", cfg.Database.Path,
	)

	return logger
}

func initializeDatabase(cfg *config.AppConfig, logger *logging.Logger) *database.Database {
	db, err := database.New(*cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	return db
}

// buildApplicationServices creates application services with dependency injection.
func buildApplicationServices(repo contracts.PropertyRepository, media *blobstore.DiskStore, logger *logging.Logger) *ApplicationServices {
	return &ApplicationServices{
		CatalogService: application.NewCatalogService(repo),
		AdminService:   application.NewAdminService(repo, media, logger),
		ChatService:    application.NewChatService(),
	}
}

// buildPresentationLayer creates all presenters and handlers
func buildPresentationLayer(cfg *config.AppConfig, services *ApplicationServices, logger *logging.Logger) *PresentationLayer {
	// Build presenters (view logic)
	propertyPresenter := presenters.NewPropertyPresenter()
	adminPresenter := presenters.NewAdminPresenter(propertyPresenter)

	// Build session manager for the back office
	sessions := handlers.NewSessionManager(cfg.AdminUser, cfg.AdminPasswordHash, cfg.SessionTTL, logger)
	if cfg.AdminPasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH is not set, back office logins are disabled")
	}

	// Build handlers - orchestrate services & presenters
	publicHandlers := handlers.NewPublicHandlers(
		services.CatalogService,
		services.ChatService,
		propertyPresenter,
		logger,
	)
	adminHandlers := handlers.NewAdminHandlers(
		services.AdminService,
		sessions,
		cfg.SessionTTL,
		adminPresenter,
		propertyPresenter,
		logger,
	)

	return &PresentationLayer{
		PropertyPresenter: propertyPresenter,
		AdminPresenter:    adminPresenter,
		PublicHandlers:    publicHandlers,
		AdminHandlers:     adminHandlers,
		Sessions:          sessions,
	}
}

// buildDependencies creates all application dependencies
func buildDependencies(cfg *config.AppConfig, db *database.Database, logger *logging.Logger) *Dependencies {
	media, err := blobstore.NewDiskStore(cfg.MediaDir, cfg.MediaBaseURL, logger)
	if err != nil {
		logger.Error("Failed to initialize media storage", "error", err, "dir", cfg.MediaDir)
		os.Exit(1)
	}

	propertyRepo := repositories.NewSqlxPropertyRepository(db)
	services := buildApplicationServices(propertyRepo, media, logger)
	presentation := buildPresentationLayer(cfg, services, logger)

	return &Dependencies{
		DB:           db,
		Media:        media,
		Logger:       logger,
		PropertyRepo: propertyRepo,
		Services:     services,
		Presentation: presentation,
	}
}

func setupRoutes(deps *Dependencies, cfg *config.AppConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	setupHTTPLogging(r, deps, cfg)
	r.Use(middleware.Recoverer)

	// Uploaded media files
	mountMediaFiles(r, deps, cfg)

	// System endpoints
	setupSystemRoutes(r, deps)

	// Public storefront and chatbot
	setupPublicRoutes(r, deps)

	// Back office
	setupAdminRoutes(r, deps)

	return r
}

func setupHTTPLogging(r *chi.Mux, deps *Dependencies, cfg *config.AppConfig) {
	if cfg.HTTPLogPath == "" {
		// No HTTP logging configured, skip
		return
	}

	logFile, err := os.OpenFile(cfg.HTTPLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		deps.Logger.Error("Failed to open HTTP log file", "error", err, "path", cfg.HTTPLogPath)
		return
	}
	// Note: logFile is not closed here as it needs to stay open for the server lifetime

	httpLogger := httplog.NewLogger("inmohub", httplog.Options{
		Writer: logFile,
		JSON:   true,
	})
	r.Use(httplog.RequestLogger(httpLogger))

	deps.Logger.Info("HTTP request logging enabled", "path", cfg.HTTPLogPath)
}

func mountMediaFiles(r chi.Router, deps *Dependencies, cfg *config.AppConfig) {
	prefix := cfg.MediaBaseURL
	if prefix == "" || prefix[0] != '/' {
		prefix = "/media"
	}
	fileServer := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(deps.Media.Dir())))
	r.Handle(prefix+"/*", fileServer)
}

func setupSystemRoutes(r *chi.Mux, deps *Dependencies) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		stats, err := deps.DB.Health()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		response := map[string]interface{}{
			"status":   "ok",
			"database": stats,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})
}

func setupPublicRoutes(r *chi.Mux, deps *Dependencies) {
	public := deps.Presentation.PublicHandlers

	r.Get("/api/properties", public.Storefront)
	r.Get("/api/properties/featured", public.Featured)
	r.Get("/api/properties/{id}", public.Detail)
	r.Post("/api/chat", public.Chat)
}

func setupAdminRoutes(r *chi.Mux, deps *Dependencies) {
	admin := deps.Presentation.AdminHandlers
	sessions := deps.Presentation.Sessions

	r.Post("/api/admin/login", admin.Login)

	r.Group(func(r chi.Router) {
		r.Use(sessions.RequireAdmin)

		r.Post("/api/admin/logout", admin.Logout)
		r.Get("/api/admin/properties", admin.ListProperties)
		r.Get("/api/admin/properties/{id}", admin.GetProperty)
		r.Post("/api/admin/properties", admin.CreateProperty)
		r.Put("/api/admin/properties/{id}", admin.UpdateProperty)
		r.Delete("/api/admin/properties/{id}", admin.DeleteProperty)
		r.Post("/api/admin/uploads", admin.UploadImage)
		r.Get("/api/admin/stats", admin.Dashboard)
	})
}

func startServer(router *chi.Mux, addr string, logger *logging.Logger) {
	server := &http.Server{Addr: addr, Handler: router}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sig
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				logger.Error("Graceful shutdown timed out, forcing exit")
				os.Exit(1)
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			os.Exit(1)
		}
		serverStopCtx()
	}()

	logger.Info("Server starting", "address", addr)
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}

	<-serverCtx.Done()
	logger.Info("Server stopped")
}
