package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/yair/billettlyst/pkg/collectors"
	"github.com/yair/billettlyst/pkg/config"
	"github.com/yair/billettlyst/pkg/domain"
	"github.com/yair/billettlyst/pkg/integrations"
	"github.com/yair/billettlyst/pkg/interfaces"
	"github.com/yair/billettlyst/pkg/telemetry"
)

func main() {
	log.Println("Starting Billettlyst...")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Failed to load .env: %v", err)
	}

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Telemetry)
	if err != nil {
		log.Printf("Warning: Failed to set up tracing: %v", err)
	}

	// Wishlist storage
	newWishlist := func(string) domain.WishlistStore {
		return collectors.NewMemoryWishlist()
	}
	if cfg.Session.WishlistBackend == config.BackendSQLite {
		db, err := collectors.NewSQLiteDB("billettlyst")
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()

		wishlistRepo, err := collectors.NewWishlistRepository(db)
		if err != nil {
			log.Fatalf("Failed to create wishlist repository: %v", err)
		}
		newWishlist = func(sessionID string) domain.WishlistStore {
			return wishlistRepo.ForSession(sessionID)
		}
	}

	discoveryClient, err := integrations.NewDiscoveryClient(integrations.DiscoveryConfig{
		APIKey:                cfg.Discovery.APIKey,
		BaseURL:               cfg.Discovery.BaseURL,
		Locale:                cfg.Discovery.Locale,
		Timeout:               time.Duration(cfg.Discovery.Timeout) * time.Second,
		DailyLimit:            cfg.Discovery.DailyLimit,
		MaxConcurrentRequests: cfg.Discovery.MaxConcurrentRequests,
		FestivalNames:         cfg.Discovery.FestivalNames,
	})
	if err != nil {
		log.Fatalf("Failed to create discovery client: %v", err)
	}

	sessions := interfaces.NewSessions(newWishlist, cfg.Session.DefaultCity,
		time.Duration(cfg.Session.IdleMinutes)*time.Minute)

	// Initialize services
	eventService := interfaces.NewDiscoveryService(discoveryClient, cfg.Session.Cities)

	// Initialize HTTP handlers
	eventHandler := interfaces.NewEventHandler(eventService, sessions, cfg.Session.CookieName)

	// Setup router
	router := mux.NewRouter()
	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer)
	eventHandler.RegisterRoutes(router)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Log available routes
	log.Println("Available routes:")
	router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		path, _ := route.GetPathTemplate()
		methods, _ := route.GetMethods()
		log.Printf("  %v %s", methods, path)
		return nil
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("Failed to flush traces: %v", err)
	}

	log.Println("Server stopped.")
}
