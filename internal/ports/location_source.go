package ports

import (
	"context"
	"healthnav-service/internal/domain"
)

// Thin wrapper over a geolocation provider's watch-position capability.
type LocationSource interface {
	// Watch starts a long-lived position subscription. The updates channel
	// may deliver zero, one, or many coordinates; a permission or
	// availability failure is reported once on errs. Both channels are
	// closed when ctx is cancelled.
	Watch(ctx context.Context) (updates <-chan domain.Coordinate, errs <-chan error)
}
