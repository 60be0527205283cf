package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"noteful-server/internal/config"
	"noteful-server/internal/events"
	"noteful-server/internal/handler"
	"noteful-server/internal/logger"
	"noteful-server/internal/middleware"
	"noteful-server/internal/repository"
	"noteful-server/internal/service"

	_ "github.com/go-kivik/kivik/v4/couchdb"

	"github.com/go-kivik/kivik/v4"
	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("server", cfg.Logging.Level)

	couchURL := fmt.Sprintf("http://%s:%s@%s:%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
	)

	client, err := kivik.New("couch", couchURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to CouchDB")
	}

	exists, err := client.DBExists(context.Background(), cfg.Database.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to check database existence")
	}

	if !exists {
		if err := client.CreateDB(context.Background(), cfg.Database.Name); err != nil {
			log.Fatal().Err(err).Msg("failed to create database")
		}
		log.Info().Str("database", cfg.Database.Name).Msg("created database")
	}

	userRepo := repository.NewUserRepository(client, cfg.Database.Name)
	folderRepo := repository.NewFolderRepository(client, cfg.Database.Name)
	noteRepo := repository.NewNoteRepository(client, cfg.Database.Name)
	tagRepo := repository.NewTagRepository(client, cfg.Database.Name)

	hub := events.NewHub(log)
	go hub.Run()

	authService := service.NewAuthService(userRepo, cfg.Token.Secret, cfg.Token.Expiration)
	userService := service.NewUserService(userRepo)
	folderService := service.NewFolderService(folderRepo, noteRepo, hub)
	noteService := service.NewNoteService(noteRepo, folderRepo, tagRepo, hub)
	tagService := service.NewTagService(tagRepo, noteRepo, hub)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService, userService)
	folderHandler := handler.NewFolderHandler(folderService)
	noteHandler := handler.NewNoteHandler(noteService)
	tagHandler := handler.NewTagHandler(tagService)
	eventsHandler := handler.NewEventsHandler(hub, cfg.Token.Secret, log)

	r := mux.NewRouter()

	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	r.HandleFunc("/users", userHandler.Register).Methods("POST", "OPTIONS")
	r.HandleFunc("/login", authHandler.Login).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions", authHandler.CreateSession).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/refresh", authHandler.RefreshSession).Methods("POST", "OPTIONS")

	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Token.Secret))

	protected.HandleFunc("/users/me", userHandler.GetMe).Methods("GET", "OPTIONS")

	protected.HandleFunc("/folders", folderHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/folders", folderHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/folders/{id}", folderHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/folders/{id}", folderHandler.Update).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/folders/{id}", folderHandler.Delete).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/notes", noteHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes", noteHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Update).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Delete).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/tags", tagHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/tags", tagHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/tags/{id}", tagHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/tags/{id}", tagHandler.Update).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/tags/{id}", tagHandler.Delete).Methods("DELETE", "OPTIONS")

	r.HandleFunc("/events", eventsHandler.HandleConnection)

	r.HandleFunc("/health", healthHandler).Methods("GET")

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Server.Env).Msg("starting noteful server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped gracefully")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"noteful-server"}`))
}
