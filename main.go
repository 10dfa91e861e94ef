package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/wilson-adhikari/Insight-Bridge/internal/api"
	"github.com/wilson-adhikari/Insight-Bridge/internal/recommend"
	"github.com/wilson-adhikari/Insight-Bridge/internal/session"
	"github.com/wilson-adhikari/Insight-Bridge/internal/version"
)

var (
	listen     = flag.String("listen", ":8080", "Listen address")
	dbFile     = flag.String("db", "sessions.db", "Path to the session database (empty disables persistence)")
	configFile = flag.String("config", "", "Path to a JSON config file overriding engine thresholds")
)

func main() {
	flag.Parse()

	log.Printf("insight-bridge %s (%s, built %s)", version.Version, version.GitSHA, version.BuildTime)

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	cfg := recommend.EmptyConfig()
	if *configFile != "" {
		var err error
		cfg, err = recommend.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	var store *session.Store
	if *dbFile != "" {
		var err error
		store, err = session.Open(*dbFile, nil)
		if err != nil {
			log.Fatalf("Failed to open session database: %v", err)
		}
		defer store.Close()
	}

	engine := recommend.NewEngine(cfg)

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := http.NewServeMux()

		apiMux := api.NewServer(engine, store).ServeMux()
		mux.Handle("/api/", http.StripPrefix("/api", apiMux))

		server := &http.Server{
			Addr:    *listen,
			Handler: api.LoggingMiddleware(mux),
		}

		// Start server in a goroutine so it doesn't block
		go func() {
			log.Printf("listening on %s", *listen)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		// Wait for context cancellation to shut down server
		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}

		log.Printf("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
