package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/drishyamitra/server/internal/config"
	"github.com/drishyamitra/server/internal/handlers"
	"github.com/drishyamitra/server/internal/llm"
	custommw "github.com/drishyamitra/server/internal/middleware"
	"github.com/drishyamitra/server/internal/observability"
	"github.com/drishyamitra/server/internal/repository"
	"github.com/drishyamitra/server/internal/services"
)

const serviceVersion = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Telemetry
	telemetry, err := observability.Initialize(context.Background(),
		observability.NewConfig("drishyamitra-server", serviceVersion))
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(ctx); err != nil {
			log.Printf("Telemetry shutdown error: %v", err)
		}
	}()

	// Record stores
	var stores repository.Stores
	if cfg.UseSQLite() {
		log.Println("Using SQLite record stores")
		db, err := repository.NewSQLiteDB(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite database: %v", err)
		}
		defer db.Close()
		stores = repository.NewSQLiteStores(db)
	} else {
		log.Printf("Using JSON record stores in %s", cfg.DataDir)
		stores = repository.NewJSONStores(cfg.DataDir)
	}

	// Services
	storageService, err := services.NewStorageService(
		cfg.PhotoStorage.BasePath,
		cfg.PhotoStorage.AllowedExtensions,
		cfg.PhotoStorage.MaxFileSizeMB,
	)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}

	var keywordModel llm.Model
	if cfg.Keyword.APIKey != "" {
		keywordModel = llm.NewGroqClient(cfg.Keyword.APIKey, cfg.Keyword.BaseURL, cfg.Keyword.Model)
		log.Printf("Keyword model: %s", cfg.Keyword.Model)
	} else {
		log.Println("No GROQ_API_KEY set, keyword extraction runs locally")
	}

	keywordService := services.NewKeywordService(keywordModel,
		time.Duration(cfg.Keyword.TimeoutSeconds)*time.Second)
	shareService := services.NewShareService(stores.Profile, stores.Shares, cfg.Share.DefaultCountryCode)

	eventHub := services.NewEventHub()
	go eventHub.Run()

	chatService := services.NewChatService(keywordService, shareService, stores, storageService, eventHub)

	// Handlers
	chatHandler := handlers.NewChatHandler(chatService)
	photoHandler := handlers.NewPhotoHandler(stores.Photos, storageService,
		services.NewTaggingService(), services.NewEXIFService(), eventHub, cfg.PublicBaseURL)
	contactHandler := handlers.NewContactHandler(stores.Contacts, stores.Profile)
	shareHandler := handlers.NewShareHandler(shareService, stores, eventHub)
	eventsHandler := handlers.NewEventsHandler(eventHub)
	healthHandler := handlers.NewHealthHandler()

	// Setup router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommw.CORS(cfg.CORS.AllowedOrigins))
	r.Use(observability.TracingMiddleware("drishyamitra-server"))
	if metrics, err := observability.NewHTTPMetrics(); err == nil {
		r.Use(observability.MetricsMiddleware(metrics))
	} else {
		log.Printf("Warning: HTTP metrics disabled: %v", err)
	}
	r.Use(custommw.APIKeyAuth(cfg.Security.APIKey, cfg.Security.APIKeyHeader))

	// Routes
	r.Get("/health", healthHandler.HealthCheck)
	r.Get("/api/health", healthHandler.HealthCheck)

	r.Post("/api/chat", chatHandler.Chat)

	r.Get("/api/photos", photoHandler.List)
	r.Post("/api/upload", photoHandler.Upload)
	r.Delete("/api/photos/{id}", photoHandler.Delete)

	r.Route("/api/contacts", func(r chi.Router) {
		r.Get("/", contactHandler.List)
		r.Post("/", contactHandler.Create)
		r.Delete("/{id}", contactHandler.Delete)
	})

	r.Get("/api/user/profile", contactHandler.GetProfile)
	r.Post("/api/user/profile", contactHandler.SetProfile)

	r.Post("/api/share", shareHandler.Share)
	r.Get("/api/shares", shareHandler.List)
	r.Get("/api/shares/sent", shareHandler.Sent)
	r.Get("/api/shares/received", shareHandler.Received)
	r.Get("/api/shares/contact/{name}", shareHandler.ByContact)
	r.Get("/api/share/history", shareHandler.History)

	r.Get("/api/events", eventsHandler.Subscribe)

	// Static photo files
	fileServer := http.StripPrefix("/storage/images/",
		http.FileServer(http.Dir(storageService.BasePath())))
	r.Get("/storage/images/*", fileServer.ServeHTTP)

	// Create server
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Drishyamitra server starting on %s", cfg.ServerAddress)
		log.Printf("Photo storage path: %s", storageService.BasePath())

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
