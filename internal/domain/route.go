package domain

// Represents a drivable path between two coordinates.
// A Route is the output of an external routing engine and describes the
// ordered path geometry plus turn-by-turn instructions. It is immutable
// result data; the session holds it but never modifies it.
type Route struct {
	Waypoints            []Coordinate `json:"waypoints"`
	Instructions         []string     `json:"instructions"`
	TotalDistanceMeters  int          `json:"total_distance_meters"`
	TotalDurationSeconds int          `json:"total_duration_seconds"`
}
