package api

import (
	"net/http"

	"healthnav-service/internal/api/handlers"
	"healthnav-service/internal/ports"
	"healthnav-service/internal/services"
)

// Deps bundles everything the API needs; handlers stay unaware of
// concrete adapters.
type Deps struct {
	Auth     *services.AuthService
	Profiles *services.ProfileService
	Users    *services.UserService
	Contacts *services.EmergencyService
	Catalog  ports.FacilityCatalog
	Provider ports.RouteProvider
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	authHandler := &handlers.AuthHandler{Auth: deps.Auth}
	profileHandler := &handlers.ProfileHandler{Profiles: deps.Profiles}
	userHandler := &handlers.UserHandler{Users: deps.Users}
	emergencyHandler := &handlers.EmergencyHandler{Contacts: deps.Contacts}
	mapHandler := &handlers.MapHandler{Catalog: deps.Catalog}
	navHandler := &handlers.NavSocketHandler{Provider: deps.Provider, Catalog: deps.Catalog}

	mux.HandleFunc("/health", handlers.Health)

	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	mux.HandleFunc("GET /api/profile/{id}", profileHandler.Get)
	mux.HandleFunc("PUT /api/profile/{id}", profileHandler.Update)

	mux.HandleFunc("POST /api/emergency", emergencyHandler.Create)
	mux.HandleFunc("GET /api/emergency/{userId}", emergencyHandler.ListByUser)
	mux.HandleFunc("PUT /api/emergency/{id}", emergencyHandler.Update)
	mux.HandleFunc("DELETE /api/emergency/{id}", emergencyHandler.Delete)

	mux.HandleFunc("POST /api/user", userHandler.Create)
	mux.HandleFunc("GET /api/user", userHandler.List)
	mux.HandleFunc("POST /api/user/cart", userHandler.AddToCart)
	mux.HandleFunc("GET /api/user/cart/{id}", userHandler.GetCart)
	mux.HandleFunc("POST /api/user/pharmacy", userHandler.SetPharmacy)
	mux.HandleFunc("GET /api/user/pharmacy/{id}", userHandler.GetPharmacy)

	mux.HandleFunc("GET /api/facilities", mapHandler.Facilities)
	mux.HandleFunc("GET /api/basemaps", mapHandler.Basemaps)

	mux.HandleFunc("GET /ws/nav", navHandler.Serve)

	return loggingMiddleware(mux)
}
