package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"healthnav-service/internal/domain"
)

type geoJSONFile struct {
	Features []struct {
		Geometry struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Name     string `json:"name"`
			Address  string `json:"address"`
			Phone    string `json:"phone"`
			Contact  string `json:"contact"`
			Type     string `json:"type"`
			Category string `json:"category"`
			Services string `json:"services"`
		} `json:"properties"`
	} `json:"features"`
}

// GeoJSONCatalog is a FacilityCatalog backed by a static geographic
// feature file. The file is parsed once at startup; the resulting
// facility list is immutable and safely shared across sessions.
type GeoJSONCatalog struct {
	facilities []domain.Facility
}

// LoadGeoJSONCatalog reads and validates the facility feature file.
// Features without a usable point geometry are skipped with a log line
// rather than failing the whole catalog.
func LoadGeoJSONCatalog(path string) (*GeoJSONCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load facility catalog: read %q: %w", path, err)
	}

	var file geoJSONFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("load facility catalog: parse json: %w", err)
	}

	facilities := make([]domain.Facility, 0, len(file.Features))
	for i, feat := range file.Features {
		if len(feat.Geometry.Coordinates) != 2 {
			log.Printf("facility catalog: skipping feature %d: geometry is not a [lon, lat] point", i)
			continue
		}

		// GeoJSON order is [lon, lat].
		loc := domain.Coordinate{Lat: feat.Geometry.Coordinates[1], Lon: feat.Geometry.Coordinates[0]}
		if err := loc.Validate(); err != nil {
			log.Printf("facility catalog: skipping feature %d: %v", i, err)
			continue
		}

		name := feat.Properties.Name
		if name == "" {
			name = "Healthcare Facility"
		}

		address := feat.Properties.Address
		if address == "" {
			address = "Medical facility"
		}

		phone := feat.Properties.Phone
		if phone == "" {
			phone = feat.Properties.Contact
		}

		category := feat.Properties.Type
		if category == "" {
			category = feat.Properties.Category
		}

		facilities = append(facilities, domain.Facility{
			ID:       len(facilities) + 1,
			Name:     name,
			Address:  address,
			Phone:    phone,
			Category: category,
			Services: feat.Properties.Services,
			Location: loc,
		})
	}

	return &GeoJSONCatalog{facilities: facilities}, nil
}

// ListFacilities returns all facilities in catalog order.
func (c *GeoJSONCatalog) ListFacilities(ctx context.Context) ([]domain.Facility, error) {
	out := make([]domain.Facility, len(c.facilities))
	copy(out, c.facilities)
	return out, nil
}
