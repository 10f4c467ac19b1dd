package ports

import (
	"context"
	"healthnav-service/internal/domain"
)

// Contract for computing a drivable path between two coordinates.
type RouteProvider interface {
	// Compute a route from origin to destination. Latency is unbounded;
	// callers that issue overlapping requests must discard completions
	// for destinations they no longer care about.
	ComputeRoute(ctx context.Context, origin, destination domain.Coordinate) (*domain.Route, error)
}
