package routing

import (
	"context"
	"fmt"

	"healthnav-service/internal/domain"
)

type MockLeg struct {
	From, To domain.Coordinate
	Route    domain.Route
}

// MockRouteProvider serves canned routes for known coordinate pairs.
type MockRouteProvider struct {
	m map[string]domain.Route
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[string]domain.Route, len(legs))
	for _, l := range legs {
		m[pairKey(l.From, l.To)] = l.Route
	}
	return &MockRouteProvider{m: m}
}

func pairKey(from, to domain.Coordinate) string {
	return fmt.Sprintf("%v,%v|%v,%v", from.Lat, from.Lon, to.Lat, to.Lon)
}

func (p *MockRouteProvider) ComputeRoute(ctx context.Context, origin, destination domain.Coordinate) (*domain.Route, error) {
	r, ok := p.m[pairKey(origin, destination)]
	if !ok {
		return nil, fmt.Errorf("missing pair %v -> %v", origin, destination)
	}

	return &r, nil
}
