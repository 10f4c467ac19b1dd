package nav

import "healthnav-service/internal/domain"

// EventType classifies session events emitted to the UI surface.
type EventType string

const (
	EventLocationUpdated EventType = "location_updated"
	EventBasemapChanged  EventType = "basemap_changed"
	EventVoiceChanged    EventType = "voice_changed"
	EventRouteRequested  EventType = "route_requested"
	EventRouteComputed   EventType = "route_computed"
	EventRouteFailed     EventType = "route_failed"
	EventRouteCleared    EventType = "route_cleared"
	EventLocationError   EventType = "location_error"
)

// Event is a session state-change notification. Route failures and
// location errors carry a user-visible Message intended for an inline
// banner (auto-dismissed client-side, never retried here).
type Event struct {
	Type     EventType          `json:"type"`
	State    State              `json:"state"`
	Location *domain.Coordinate `json:"location,omitempty"`
	Basemap  *Basemap           `json:"basemap,omitempty"`
	Voice    *VoiceStatus       `json:"voice,omitempty"`
	Facility *domain.Facility   `json:"facility,omitempty"`
	Route    *domain.Route      `json:"route,omitempty"`
	Message  string             `json:"message,omitempty"`
}

// VoiceStatus mirrors the session's narration toggles.
type VoiceStatus struct {
	Enabled  bool            `json:"enabled"`
	Language domain.Language `json:"language"`
}
