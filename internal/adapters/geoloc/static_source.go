package geoloc

import (
	"context"

	"healthnav-service/internal/domain"
)

// FallbackLocation is used when no geolocation provider is available
// (Islamabad, the reference deployment's city).
var FallbackLocation = domain.Coordinate{Lat: 33.6844, Lon: 73.0479}

// StaticSource is a LocationSource that delivers a single fixed position
// and then goes quiet. It backs sessions whose client never grants
// location access.
type StaticSource struct {
	Position domain.Coordinate
}

func NewStaticSource(pos domain.Coordinate) *StaticSource {
	return &StaticSource{Position: pos}
}

func (s *StaticSource) Watch(ctx context.Context) (<-chan domain.Coordinate, <-chan error) {
	updates := make(chan domain.Coordinate, 1)
	errs := make(chan error)

	go func() {
		defer close(updates)
		defer close(errs)

		select {
		case updates <- s.Position:
		case <-ctx.Done():
			return
		}

		<-ctx.Done()
	}()

	return updates, errs
}
