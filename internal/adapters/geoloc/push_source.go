package geoloc

import (
	"context"
	"sync"

	"healthnav-service/internal/domain"
)

// PushSource adapts an external feed that pushes position fixes (the
// navigation websocket) into the LocationSource watch contract. Zero,
// one, or many updates may arrive; Fail reports a one-shot permission or
// availability error the way a browser geolocation watch would.
type PushSource struct {
	mu      sync.Mutex
	updates chan domain.Coordinate
	errs    chan error
	watched bool
}

func NewPushSource() *PushSource {
	return &PushSource{
		updates: make(chan domain.Coordinate, 16),
		errs:    make(chan error, 1),
	}
}

func (s *PushSource) Watch(ctx context.Context) (<-chan domain.Coordinate, <-chan error) {
	s.mu.Lock()
	s.watched = true
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.watched {
			s.watched = false
			close(s.updates)
			close(s.errs)
		}
	}()

	return s.updates, s.errs
}

// Push delivers a position fix to the watcher. Drops the fix when the
// subscription has ended or the watcher is not keeping up.
func (s *PushSource) Push(coord domain.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.watched {
		return
	}

	select {
	case s.updates <- coord:
	default:
	}
}

// Fail reports a provider failure to the watcher.
func (s *PushSource) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.watched {
		return
	}

	select {
	case s.errs <- err:
	default:
	}
}
