package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"healthnav-service/internal/domain"
)

const osrmFixture = `{
	"code": "Ok",
	"routes": [{
		"distance": 2500.4,
		"duration": 312.9,
		"geometry": {"coordinates": [[73.05, 33.68], [73.07, 33.69], [73.1, 33.7]]},
		"legs": [{"steps": [
			{"name": "Main Road", "maneuver": {"type": "depart", "bearing_after": 10}},
			{"name": "Hospital Ave", "maneuver": {"type": "turn", "modifier": "left"}},
			{"name": "", "maneuver": {"type": "arrive"}}
		]}]
	}]
}`

func TestComputeRouteParsesOSRMResponse(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(osrmFixture))
	}))
	defer srv.Close()

	provider, err := NewOSRMRouteProvider(srv.URL, nil)
	if err != nil {
		t.Fatalf("NewOSRMRouteProvider: %v", err)
	}

	origin := domain.Coordinate{Lat: 33.68, Lon: 73.05}
	dest := domain.Coordinate{Lat: 33.7, Lon: 73.1}

	route, err := provider.ComputeRoute(context.Background(), origin, dest)
	if err != nil {
		t.Fatalf("ComputeRoute: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/route/v1/driving/") {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	// OSRM takes lon,lat pairs.
	if !strings.Contains(gotPath, "73.05") || !strings.Contains(gotPath, "33.68") {
		t.Fatalf("origin missing from path %q", gotPath)
	}

	if route.TotalDistanceMeters != 2500 || route.TotalDurationSeconds != 312 {
		t.Fatalf("unexpected totals: %+v", route)
	}
	if len(route.Waypoints) != 3 {
		t.Fatalf("expected 3 waypoints, got %d", len(route.Waypoints))
	}
	// Geometry arrives lon-first and must flip to lat/lon.
	if route.Waypoints[0] != origin {
		t.Fatalf("first waypoint %+v, want %+v", route.Waypoints[0], origin)
	}

	want := []string{
		"Head north on Main Road",
		"Turn left onto Hospital Ave",
		"Arrive at destination",
	}
	if len(route.Instructions) != len(want) {
		t.Fatalf("expected %d instructions, got %v", len(want), route.Instructions)
	}
	for i, w := range want {
		if route.Instructions[i] != w {
			t.Fatalf("instruction %d = %q, want %q", i, route.Instructions[i], w)
		}
	}
}

func TestComputeRouteRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer srv.Close()

	provider, err := NewOSRMRouteProvider(srv.URL, nil)
	if err != nil {
		t.Fatalf("NewOSRMRouteProvider: %v", err)
	}

	if _, err := provider.ComputeRoute(context.Background(), domain.Coordinate{Lat: 1}, domain.Coordinate{Lat: 2}); err == nil {
		t.Fatal("expected an error for a NoRoute response")
	}
}

func TestComputeRouteValidatesCoordinates(t *testing.T) {
	provider, err := NewOSRMRouteProvider("http://localhost:0", nil)
	if err != nil {
		t.Fatalf("NewOSRMRouteProvider: %v", err)
	}

	if _, err := provider.ComputeRoute(context.Background(), domain.Coordinate{Lat: 999}, domain.Coordinate{}); err == nil {
		t.Fatal("expected an error for an off-globe origin")
	}
}

func TestComputeRouteRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(osrmFixture))
	}))
	defer srv.Close()

	provider, err := NewOSRMRouteProvider(srv.URL, nil)
	if err != nil {
		t.Fatalf("NewOSRMRouteProvider: %v", err)
	}

	route, err := provider.ComputeRoute(context.Background(), domain.Coordinate{Lat: 33.68, Lon: 73.05}, domain.Coordinate{Lat: 33.7, Lon: 73.1})
	if err != nil {
		t.Fatalf("ComputeRoute after retry: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected one retry, saw %d calls", calls)
	}
	if len(route.Waypoints) != 3 {
		t.Fatalf("unexpected route after retry: %+v", route)
	}
}

func TestComputeRouteUsesCache(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(osrmFixture))
	}))
	defer srv.Close()

	cache := newTestCache(t)
	provider, err := NewOSRMRouteProvider(srv.URL, cache)
	if err != nil {
		t.Fatalf("NewOSRMRouteProvider: %v", err)
	}

	origin := domain.Coordinate{Lat: 33.68, Lon: 73.05}
	dest := domain.Coordinate{Lat: 33.7, Lon: 73.1}
	ctx := context.Background()

	if _, err := provider.ComputeRoute(ctx, origin, dest); err != nil {
		t.Fatalf("first ComputeRoute: %v", err)
	}
	if _, err := provider.ComputeRoute(ctx, origin, dest); err != nil {
		t.Fatalf("second ComputeRoute: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected the second call to hit the cache, saw %d upstream calls", calls)
	}
}

func TestInstructionText(t *testing.T) {
	cases := []struct {
		step osrmStep
		want string
	}{
		{step: stepOf("depart", "", 100, "Jinnah Ave"), want: "Head east on Jinnah Ave"},
		{step: stepOf("depart", "", 200, ""), want: "Head south"},
		{step: stepOf("depart", "", 300, ""), want: "Head west"},
		{step: stepOf("turn", "sharp right", 0, "Mall Road"), want: "Turn right onto Mall Road"},
		{step: stepOf("turn", "slight left", 0, ""), want: "Turn left"},
		{step: stepOf("continue", "uturn", 0, "Mall Road"), want: "Turn around"},
		{step: stepOf("continue", "straight", 0, "Mall Road"), want: "Continue straight on Mall Road"},
		{step: stepOf("continue", "", 0, ""), want: "Continue straight"},
		{step: stepOf("arrive", "", 0, "Mall Road"), want: "Arrive at destination"},
	}
	for _, c := range cases {
		if got := instructionText(c.step); got != c.want {
			t.Fatalf("instructionText(%+v) = %q, want %q", c.step, got, c.want)
		}
	}
}

func stepOf(typ, modifier string, bearing float64, name string) osrmStep {
	var s osrmStep
	s.Name = name
	s.Maneuver.Type = typ
	s.Maneuver.Modifier = modifier
	s.Maneuver.BearingAfter = bearing
	return s
}

func TestCompassDirection(t *testing.T) {
	cases := map[float64]string{
		0:   "north",
		350: "north",
		44:  "north",
		90:  "east",
		134: "east",
		180: "south",
		270: "west",
	}
	for bearing, want := range cases {
		if got := compassDirection(bearing); got != want {
			t.Fatalf("compassDirection(%v) = %q, want %q", bearing, got, want)
		}
	}
}

func TestRetryBacksOffBeforeGivingUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	provider, err := NewOSRMRouteProvider(srv.URL, nil)
	if err != nil {
		t.Fatalf("NewOSRMRouteProvider: %v", err)
	}

	start := time.Now()
	_, err = provider.ComputeRoute(context.Background(), domain.Coordinate{Lat: 33.68, Lon: 73.05}, domain.Coordinate{Lat: 33.7, Lon: 73.1})
	if err == nil {
		t.Fatal("expected exhaustion error from a permanently throttling upstream")
	}
	if time.Since(start) < 100*time.Millisecond {
		t.Fatal("expected backoff between attempts")
	}
}
