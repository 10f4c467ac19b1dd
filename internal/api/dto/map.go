package dto

import (
	"healthnav-service/internal/domain"
	"healthnav-service/internal/nav"
)

type ListFacilitiesResponse struct {
	Facilities []domain.Facility `json:"facilities"`
}

type ListBasemapsResponse struct {
	Basemaps []nav.Basemap `json:"basemaps"`
}
