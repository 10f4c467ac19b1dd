package nav

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"healthnav-service/internal/domain"
	"healthnav-service/internal/nav/voice"
	"healthnav-service/internal/ports"
)

// State classifies the route lifecycle of a session.
type State int

const (
	// StateIdle: no destination selected.
	StateIdle State = iota
	// StateSelecting: destination selected, route computation in flight.
	StateSelecting
	// StateRouted: a computed route is active.
	StateRouted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateRouted:
		return "routed"
	default:
		return "unknown"
	}
}

func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Errors reported synchronously by session operations.
var (
	ErrLocationUnavailable = errors.New("enable location services to get directions")
	ErrInvalidBasemap      = errors.New("unknown basemap key")
	ErrUnsupportedLanguage = errors.New("unsupported voice language")
	ErrSessionClosed       = errors.New("session closed")
)

// Announcement delays keep status narration from racing: the
// route-request announcement fires shortly after selection, and the
// first instruction waits long enough not to overlap it.
const (
	routeRequestAnnounceDelay     = 500 * time.Millisecond
	firstInstructionAnnounceDelay = 1000 * time.Millisecond
)

// Config wires a session's collaborators.
type Config struct {
	Provider ports.RouteProvider
	Speaker  ports.Speaker
	// Notify receives session events. Called from the session's event
	// loop; implementations must not call back into the session
	// synchronously. Optional.
	Notify func(Event)
}

// Session is the single source of truth for what the map currently shows
// and says: user location, selected basemap, voice toggles, and the
// active facility/route.
//
// It behaves as an actor with a single mailbox: every mutation runs to
// completion on one goroutine before the next event is processed.
// Route-provider completions are delivered as mailbox messages tagged
// with the destination they were issued for; completions for a
// superseded destination are discarded. A session is created per screen
// view and holds no persistent state; Close releases the location
// subscription and pending narration.
type Session struct {
	id        string
	provider  ports.RouteProvider
	announcer *voice.Announcer
	notify    func(Event)

	mailbox chan call
	done    chan struct{}
	stopped chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
	closing sync.Once

	// Owned by the event loop.
	userLocation *domain.Coordinate
	basemapKey   string
	voiceLang    domain.Language
	voiceEnabled bool
	facility     *domain.Facility
	destination  *domain.Coordinate
	route        *domain.Route
	state        State
}

type call struct {
	fn    func() error
	reply chan error
}

// NewSession creates a session with default toggles (default basemap,
// English narration, voice enabled) and starts its event loop.
func NewSession(cfg Config) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		id:           uuid.New().String(),
		provider:     cfg.Provider,
		announcer:    voice.NewAnnouncer(cfg.Speaker),
		notify:       cfg.Notify,
		mailbox:      make(chan call),
		done:         make(chan struct{}),
		stopped:      make(chan struct{}),
		ctx:          ctx,
		cancel:       cancel,
		basemapKey:   DefaultBasemap().Key,
		voiceLang:    domain.LanguageEnglish,
		voiceEnabled: true,
		state:        StateIdle,
	}

	go s.run()
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) run() {
	defer close(s.stopped)
	for {
		select {
		case c := <-s.mailbox:
			err := c.fn()
			if c.reply != nil {
				c.reply <- err
			}
		case <-s.done:
			return
		}
	}
}

// do runs fn on the event loop and waits for its result.
func (s *Session) do(fn func() error) error {
	c := call{fn: fn, reply: make(chan error, 1)}
	select {
	case s.mailbox <- c:
		return <-c.reply
	case <-s.done:
		return ErrSessionClosed
	}
}

// cast runs fn on the event loop without waiting (fire-and-forget).
func (s *Session) cast(fn func()) {
	c := call{fn: func() error { fn(); return nil }}
	select {
	case s.mailbox <- c:
	case <-s.done:
	}
}

func (s *Session) emit(e Event) {
	e.State = s.state
	if s.notify != nil {
		s.notify(e)
	}
}

// SetUserLocation replaces the tracked user position. An active route is
// left untouched; location drift does not trigger recomputation.
func (s *Session) SetUserLocation(coord domain.Coordinate) error {
	return s.do(func() error {
		if err := coord.Validate(); err != nil {
			return domain.Invalid(fmt.Sprintf("invalid location: %v", err))
		}

		c := coord
		s.userLocation = &c
		s.emit(Event{Type: EventLocationUpdated, Location: &c})
		return nil
	})
}

// SelectBasemap switches the tile layer. Fails with ErrInvalidBasemap for
// a key outside the registry; the route and markers are unaffected.
func (s *Session) SelectBasemap(key string) error {
	return s.do(func() error {
		b, ok := BasemapByKey(key)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidBasemap, key)
		}

		s.basemapKey = b.Key
		s.emit(Event{Type: EventBasemapChanged, Basemap: &b})
		return nil
	})
}

// SetVoiceLanguage switches narration between the two supported tags.
func (s *Session) SetVoiceLanguage(lang domain.Language) error {
	return s.do(func() error {
		if !lang.Supported() {
			return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
		}

		s.voiceLang = lang
		s.emit(Event{Type: EventVoiceChanged, Voice: &VoiceStatus{Enabled: s.voiceEnabled, Language: lang}})
		return nil
	})
}

// ToggleVoice flips narration on or off and returns the new setting.
func (s *Session) ToggleVoice() bool {
	var enabled bool
	_ = s.do(func() error {
		s.voiceEnabled = !s.voiceEnabled
		enabled = s.voiceEnabled
		s.emit(Event{Type: EventVoiceChanged, Voice: &VoiceStatus{Enabled: enabled, Language: s.voiceLang}})
		return nil
	})
	return enabled
}

// SelectFacility sets the active destination and requests a route from
// the current location. Fails with ErrLocationUnavailable when no
// location is known; on success any prior route is discarded and the
// session moves to StateSelecting until the provider answers. Selecting
// again before the answer arrives supersedes the earlier request.
func (s *Session) SelectFacility(f domain.Facility) error {
	return s.do(func() error {
		if s.userLocation == nil {
			return ErrLocationUnavailable
		}

		fac := f
		dest := f.Location
		s.facility = &fac
		s.destination = &dest
		s.route = nil
		s.state = StateSelecting

		s.emit(Event{Type: EventRouteRequested, Facility: &fac})

		if s.voiceEnabled {
			s.announcer.Announce(voice.CalculatingRoute(fac.Name, s.voiceLang), s.voiceLang, routeRequestAnnounceDelay)
		}

		origin := *s.userLocation
		go s.computeRoute(origin, dest)
		return nil
	})
}

// computeRoute calls the provider off the event loop and posts the
// outcome back as a mailbox message tagged with its destination.
func (s *Session) computeRoute(origin, dest domain.Coordinate) {
	route, err := s.provider.ComputeRoute(s.ctx, origin, dest)
	if err != nil {
		s.cast(func() { s.routeFailed(dest, err) })
		return
	}
	s.cast(func() { s.routeComputed(dest, route) })
}

func (s *Session) routeComputed(dest domain.Coordinate, route *domain.Route) {
	if s.destination == nil || *s.destination != dest {
		// A later SelectFacility superseded this request.
		log.Printf("session=%s discarding stale route result lat=%v lon=%v", s.id, dest.Lat, dest.Lon)
		return
	}

	s.route = route
	s.state = StateRouted
	s.emit(Event{Type: EventRouteComputed, Facility: s.facility, Route: route})

	if s.voiceEnabled && len(route.Instructions) > 0 {
		first := voice.Translate(route.Instructions[0], s.voiceLang)
		s.announcer.Announce(first, s.voiceLang, firstInstructionAnnounceDelay)
	}
}

func (s *Session) routeFailed(dest domain.Coordinate, err error) {
	if s.destination == nil || *s.destination != dest {
		return
	}

	// Stay in StateSelecting; the failure is surfaced, never retried.
	log.Printf("session=%s route computation failed: %v", s.id, err)
	s.emit(Event{Type: EventRouteFailed, Facility: s.facility, Message: "Unable to calculate route"})
}

// ClearRoute drops the active destination, facility, and route.
// Idempotent: with nothing active it only repeats the announcement.
func (s *Session) ClearRoute() error {
	return s.do(func() error {
		s.destination = nil
		s.facility = nil
		s.route = nil
		s.state = StateIdle

		s.emit(Event{Type: EventRouteCleared})

		if s.voiceEnabled {
			s.announcer.Announce(voice.RouteCleared(s.voiceLang), s.voiceLang, 0)
		}
		return nil
	})
}

// Track subscribes the session to a location source. Updates flow into
// SetUserLocation; a source failure is surfaced as a banner event. The
// subscription ends when the session closes.
func (s *Session) Track(src ports.LocationSource) {
	updates, errs := src.Watch(s.ctx)

	go func() {
		for {
			select {
			case coord, ok := <-updates:
				if !ok {
					return
				}
				if err := s.SetUserLocation(coord); err != nil {
					log.Printf("session=%s dropping location update: %v", s.id, err)
				}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				s.cast(func() {
					s.emit(Event{Type: EventLocationError, Message: "Unable to find your location"})
				})
				log.Printf("session=%s location source error: %v", s.id, err)
			case <-s.done:
				return
			}
		}
	}()
}

// Snapshot is a point-in-time copy of session state.
type Snapshot struct {
	State        State
	UserLocation *domain.Coordinate
	BasemapKey   string
	VoiceLang    domain.Language
	VoiceEnabled bool
	Facility     *domain.Facility
	Destination  *domain.Coordinate
	Route        *domain.Route
}

// Snapshot returns a consistent copy of the current state.
func (s *Session) Snapshot() Snapshot {
	var snap Snapshot
	_ = s.do(func() error {
		snap = Snapshot{
			State:        s.state,
			BasemapKey:   s.basemapKey,
			VoiceLang:    s.voiceLang,
			VoiceEnabled: s.voiceEnabled,
		}
		if s.userLocation != nil {
			c := *s.userLocation
			snap.UserLocation = &c
		}
		if s.facility != nil {
			f := *s.facility
			snap.Facility = &f
		}
		if s.destination != nil {
			d := *s.destination
			snap.Destination = &d
		}
		snap.Route = s.route
		return nil
	})
	return snap
}

// Close ends the session: the event loop stops, the location
// subscription and any in-flight route request are cancelled, and
// pending narration is dropped. Close does not return until the event
// loop has finished the message it is processing, so no Notify callback
// or narration runs after it returns. Safe to call more than once; must
// not be called from inside a Notify callback.
func (s *Session) Close() {
	s.closing.Do(func() {
		close(s.done)
		s.cancel()
	})
	<-s.stopped
	s.announcer.Close()
}
