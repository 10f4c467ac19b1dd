package nav

// Basemap is a selectable tile-rendering style for the background map.
// The set is static; entries are immutable.
type Basemap struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	Icon        string `json:"icon"`
}

// The first entry is the default.
var basemaps = []Basemap{
	{
		Key:         "osm",
		Name:        "OpenStreetMap",
		URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/">OpenStreetMap</a>`,
		Icon:        "🗺",
	},
	{
		Key:         "carto",
		Name:        "CartoDB Positron",
		URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
		Attribution: `&copy; <a href="https://carto.com/">CartoDB</a>`,
		Icon:        "🌐",
	},
	{
		Key:         "cartoDark",
		Name:        "CartoDB Dark",
		URL:         "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
		Attribution: `&copy; <a href="https://carto.com/">CartoDB</a>`,
		Icon:        "🌑",
	},
	{
		Key:         "satellite",
		Name:        "Satellite",
		URL:         "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
		Attribution: `&copy; <a href="https://www.esri.com/">Esri</a>`,
		Icon:        "🛰",
	},
	{
		Key:         "terrain",
		Name:        "Terrain",
		URL:         "https://{s}.tile.opentopomap.org/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://opentopomap.org/">OpenTopoMap</a>`,
		Icon:        "🏔",
	},
}

// Basemaps returns all basemap options in display order.
func Basemaps() []Basemap {
	out := make([]Basemap, len(basemaps))
	copy(out, basemaps)
	return out
}

// BasemapByKey returns the basemap registered under key.
func BasemapByKey(key string) (Basemap, bool) {
	for _, b := range basemaps {
		if b.Key == key {
			return b, true
		}
	}
	return Basemap{}, false
}

// DefaultBasemap returns the basemap selected when a session starts.
func DefaultBasemap() Basemap { return basemaps[0] }
