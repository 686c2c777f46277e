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
	"github.com/zhouzirui/todo-api/backend/internal/config"
	"github.com/zhouzirui/todo-api/backend/internal/handler"
	"github.com/zhouzirui/todo-api/backend/internal/metrics"
	"github.com/zhouzirui/todo-api/backend/internal/model/todo"
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

	todos, err := loadTodos(cfg.Dataset)
	if err != nil {
		log.Fatalf("failed to load todo dataset: %v", err)
	}
	store := todo.NewMemoryStore(todos)
	metrics.SetDatasetSize(store.Count())

	router := handler.NewRouter(store, cfg.Server, cfg.Metrics)

	startServer(ctx, cfg.Server, router, store.Count())
}

func loadTodos(cfg config.DatasetConfig) ([]todo.Todo, error) {
	if cfg.Embedded() {
		todos, err := todo.LoadEmbedded()
		if err == nil {
			log.Printf("loaded %d todos from embedded dataset", len(todos))
		}
		return todos, err
	}

	todos, err := todo.LoadFile(cfg.Path)
	if err == nil {
		log.Printf("loaded %d todos from %s", len(todos), cfg.Path)
	}
	return todos, err
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, todoCount int) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("serving %d todos on %s (cors origin %q)", todoCount, srv.Addr, serverCfg.AllowedOrigin)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("todo API stopped")
}

const shutdownGrace = 10 * time.Second

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutting down, draining for up to %s", shutdownGrace)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
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
