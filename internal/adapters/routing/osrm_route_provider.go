package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"healthnav-service/internal/domain"
	"healthnav-service/internal/platform/obs"
)

// OSRMRouteProvider implements RouteProvider against an OSRM /route/v1
// endpoint (the public router.project-osrm.org by default).
//
// It coordinates:
//   - Persistent route caching (redis, optional)
//   - External API calls with retry/backoff
//   - Turn-by-turn instruction synthesis from OSRM step maneuvers
//
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	session *http.Client
	baseURL string
	profile string
	cache   *RedisRouteCache
}

func NewOSRMRouteProvider(baseURL string, cache *RedisRouteCache) (*OSRMRouteProvider, error) {
	if baseURL == "" {
		baseURL = "https://router.project-osrm.org"
	}

	provider := &OSRMRouteProvider{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		profile: "driving",
		cache:   cache,
	}

	return provider, nil
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Legs []struct {
			Steps []osrmStep `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

type osrmStep struct {
	Name     string `json:"name"`
	Maneuver struct {
		Type         string  `json:"type"`
		Modifier     string  `json:"modifier"`
		BearingAfter float64 `json:"bearing_after"`
	} `json:"maneuver"`
}

// ComputeRoute fetches a drivable path from origin to destination.
func (o *OSRMRouteProvider) ComputeRoute(
	ctx context.Context,
	origin domain.Coordinate,
	destination domain.Coordinate,
) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "osrm.ComputeRoute")(&err)

	if err := origin.Validate(); err != nil {
		return nil, fmt.Errorf("compute route: origin: %w", err)
	}
	if err := destination.Validate(); err != nil {
		return nil, fmt.Errorf("compute route: destination: %w", err)
	}

	// Check the persistent route cache before issuing external API calls.
	if o.cache != nil {
		if cached, err := o.cache.Get(ctx, origin, destination); err != nil {
			log.Printf("route cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	url := fmt.Sprintf(
		"%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson&steps=true",
		o.baseURL, o.profile,
		origin.Lon, origin.Lat,
		destination.Lon, destination.Lat,
	)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, url)
	})
	if err != nil {
		return nil, fmt.Errorf("compute route: execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("compute route: decode response: %w", err)
	}

	if decoded.Code != "Ok" {
		return nil, fmt.Errorf("compute route: osrm status %q", decoded.Code)
	}
	if len(decoded.Routes) == 0 {
		return nil, errors.New("compute route: no path found")
	}

	best := decoded.Routes[0]

	waypoints := make([]domain.Coordinate, 0, len(best.Geometry.Coordinates))
	for i, pair := range best.Geometry.Coordinates {
		if len(pair) != 2 {
			return nil, fmt.Errorf("compute route: invalid geometry point at index %d", i)
		}
		waypoints = append(waypoints, domain.Coordinate{Lat: pair[1], Lon: pair[0]})
	}

	instructions := make([]string, 0, 8)
	for _, leg := range best.Legs {
		for _, step := range leg.Steps {
			instructions = append(instructions, instructionText(step))
		}
	}

	route := &domain.Route{
		Waypoints:            waypoints,
		Instructions:         instructions,
		TotalDistanceMeters:  int(best.Distance),
		TotalDurationSeconds: int(best.Duration),
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, origin, destination, route); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return route, nil
}

// instructionText renders an OSRM step maneuver as spoken-friendly text.
// The phrasing matches the narration dictionary (Head north, Turn left,
// Continue straight, Arrive at destination, Turn around).
func instructionText(step osrmStep) string {
	onStreet := ""
	if step.Name != "" {
		onStreet = " onto " + step.Name
	}

	switch step.Maneuver.Type {
	case "depart":
		text := "Head " + compassDirection(step.Maneuver.BearingAfter)
		if step.Name != "" {
			text += " on " + step.Name
		}
		return text
	case "arrive":
		return "Arrive at destination"
	}

	switch step.Maneuver.Modifier {
	case "left", "sharp left", "slight left":
		return "Turn left" + onStreet
	case "right", "sharp right", "slight right":
		return "Turn right" + onStreet
	case "uturn":
		return "Turn around"
	default:
		if step.Name != "" {
			return "Continue straight on " + step.Name
		}
		return "Continue straight"
	}
}

func compassDirection(bearing float64) string {
	switch {
	case bearing >= 315 || bearing < 45:
		return "north"
	case bearing < 135:
		return "east"
	case bearing < 225:
		return "south"
	default:
		return "west"
	}
}
