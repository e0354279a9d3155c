package main

import (
	"context"
	"delivery-route-optimizer/internal/api"
	"delivery-route-optimizer/internal/app"
	"delivery-route-optimizer/internal/config"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires the configured route provider and leg cache behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	optimizer, closeFn, err := app.NewRouteOptimizer(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeFn()

	router := api.NewRouter(optimizer)

	// Write timeout covers a cold cache: N*(N-1) provider calls, each bounded by ROUTING_TIMEOUT.
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
