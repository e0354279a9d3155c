package main

import (
	"context"
	"delivery-route-optimizer/internal/adapters/repositories"
	"delivery-route-optimizer/internal/api/dto"
	"delivery-route-optimizer/internal/app"
	"delivery-route-optimizer/internal/config"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/services"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// optimize runs one optimization for a waypoint file and prints the route as JSON.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	path := flag.String("file", config.Get("WAYPOINTS_PATH", "data/waypoints.json"), "JSON array of {label, lat, lon}; the first entry is the depot")
	flag.Parse()

	if err := run(*path); err != nil {
		fmt.Fprintf(os.Stderr, "optimize failed: kind=%s err=%v\n", services.ErrorKind(err), err)
		os.Exit(1)
	}
}

func run(path string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := obs.WithRequestID(context.Background(), uuid.NewString())

	inputs, err := repositories.NewJSONWaypointSource(path).LoadWaypoints(ctx)
	if err != nil {
		return fmt.Errorf("%v: %w", err, services.ErrInvalidInput)
	}

	optimizer, closeFn, err := app.NewRouteOptimizer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	route, err := optimizer.Optimize(ctx, inputs)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewOptimizeResponse(route))
}
