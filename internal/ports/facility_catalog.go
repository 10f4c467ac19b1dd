package ports

import (
	"context"
	"healthnav-service/internal/domain"
)

// Port: a boundary for retrieving Facility entities from a data source.
// The catalog is read-only and safely shared across sessions.
type FacilityCatalog interface {
	// Retrieve all facilities available for display and routing.
	ListFacilities(ctx context.Context) ([]domain.Facility, error)
}
