package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/interview-prep/backend/internal/config"
	"github.com/zhouzirui/interview-prep/backend/internal/database"
	"github.com/zhouzirui/interview-prep/backend/internal/handler"
	"github.com/zhouzirui/interview-prep/backend/internal/repository"
	"github.com/zhouzirui/interview-prep/backend/internal/service/ai"
	"github.com/zhouzirui/interview-prep/backend/internal/service/events"
	"github.com/zhouzirui/interview-prep/backend/internal/service/question"
	"github.com/zhouzirui/interview-prep/backend/internal/service/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if cfg.Auth.Secret == "" {
		log.Fatalf("JWT_SECRET must be set")
	}

	db, err := database.Init(database.Config{
		Path:     cfg.Database.Path,
		LogLevel: database.ParseLogLevel(cfg.Database.LogLevel),
	})
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("warning: failed to close database: %v", err)
		}
	}()
	log.Printf("database ready at %s", cfg.Database.Path)

	store := repository.NewStore(db)
	hub := events.NewHub(16)

	sessionSvc := session.NewService(store, hub)
	questionSvc := question.NewService(store, hub)

	// Generation is optional; without it the ai routes answer 503.
	var gateway *ai.Gateway
	if cfg.AI.Enabled() {
		chatModel, err := cfg.AI.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to create %s chat model: %v", cfg.AI.Provider, err)
		} else if gateway, err = ai.NewGateway(ctx, chatModel, ai.WithTimeout(cfg.AI.Timeout)); err != nil {
			log.Printf("warning: failed to initialize AI gateway: %v", err)
			gateway = nil
		} else {
			log.Printf("AI gateway initialized with provider %s", cfg.AI.Provider)
		}
	} else {
		log.Printf("AI provider %s not configured, skipping generation setup", cfg.AI.Provider)
	}

	router := handler.NewRouter(handler.Services{
		Sessions:  sessionSvc,
		Questions: questionSvc,
		Gateway:   gateway,
		Hub:       hub,
	}, []byte(cfg.Auth.Secret))

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("interview prep backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Printf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
