package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/unai-a/MusicFlow/internal/config"
	"github.com/unai-a/MusicFlow/internal/handlers"
	"github.com/unai-a/MusicFlow/internal/logger"
	"github.com/unai-a/MusicFlow/internal/player"
	"github.com/unai-a/MusicFlow/internal/search"
	"github.com/unai-a/MusicFlow/internal/store"
	"github.com/unai-a/MusicFlow/internal/widget"
	"github.com/unai-a/MusicFlow/web"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Initialize DB
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize player store and restore the persisted snapshot
	settingsRepo := store.NewSettingsRepo(db)
	stateRepo := store.NewPlayerStateRepo(settingsRepo)
	playerStore := player.New(stateRepo, appLogger)
	defer playerStore.Close()

	if snap, found, err := stateRepo.LoadState(); err != nil {
		appLogger.Warn("Failed to restore player state", "error", err)
	} else if found {
		playerStore.Restore(snap)
	}

	// Initialize search
	searcher, err := search.NewWebSearcher(cfg.SearchURL, cfg.SearchRPS)
	if err != nil {
		appLogger.Error("Failed to init search capability", "error", err)
		os.Exit(1)
	}
	searchService := search.NewService(searcher, db, appLogger)

	// Initialize widget bridge and adapter loop
	bridge := widget.NewBridge(appLogger)
	adapter := widget.NewAdapter(playerStore, bridge, appLogger)

	adapterCtx, stopAdapter := context.WithCancel(context.Background())
	adapterDone := make(chan struct{})
	go func() {
		defer close(adapterDone)
		adapter.Run(adapterCtx)
	}()

	// Initialize Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Serve Static Files from embedded filesystem
	r.Handle("/static/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := "static" + r.URL.Path[len("/static"):]
		data, err := web.Files.ReadFile(path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		contentType := "application/octet-stream"
		switch {
		case strings.HasSuffix(path, ".css"):
			contentType = "text/css"
		case strings.HasSuffix(path, ".js"):
			contentType = "application/javascript"
		case strings.HasSuffix(path, ".html"):
			contentType = "text/html"
		}
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		data, err := web.Files.ReadFile("static/index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write(data)
	})

	// Routes
	h := handlers.NewHandler(searchService, playerStore, adapter, bridge, appLogger)
	h.RegisterRoutes(r)

	// Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	stopAdapter()
	<-adapterDone

	log.Println("Server exiting")
}
