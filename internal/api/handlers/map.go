package handlers

import (
	"net/http"

	"healthnav-service/internal/api/dto"
	"healthnav-service/internal/nav"
	"healthnav-service/internal/ports"
)

// MapHandler exposes the read-only map data: the facility catalog and the
// basemap registry.
type MapHandler struct {
	Catalog ports.FacilityCatalog
}

func (h *MapHandler) Facilities(w http.ResponseWriter, r *http.Request) {
	facilities, err := h.Catalog.ListFacilities(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListFacilitiesResponse{Facilities: facilities})
}

func (h *MapHandler) Basemaps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.ListBasemapsResponse{Basemaps: nav.Basemaps()})
}
