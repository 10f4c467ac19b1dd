package domain

// Represents a healthcare location with display metadata and coordinates.
// Facilities are immutable once loaded from the catalog; identity is the
// catalog-assigned ID.
type Facility struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Address  string     `json:"address"`
	Phone    string     `json:"phone,omitempty"`
	Category string     `json:"category,omitempty"`
	Services string     `json:"services,omitempty"`
	Location Coordinate `json:"location"`
}
