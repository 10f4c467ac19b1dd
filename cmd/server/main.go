package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"healthnav-service/internal/adapters/catalog"
	"healthnav-service/internal/adapters/repositories"
	"healthnav-service/internal/adapters/routing"
	"healthnav-service/internal/api"
	"healthnav-service/internal/config"
	"healthnav-service/internal/platform/db"
	"healthnav-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, GeoJSON catalog, OSRM, redis)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/users.json")
	facilitiesPath := config.Get("FACILITIES_PATH", "data/map-coordinates.geojson")
	osrmURL := config.Get("OSRM_URL", "https://router.project-osrm.org")
	port := config.Get("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if strings.TrimSpace(jwtSecret) == "" {
		log.Fatal("JWT_SECRET is required")
	}

	conn, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(conn, seedPath); err != nil {
		log.Fatal(err)
	}

	facilityCatalog, err := catalog.LoadGeoJSONCatalog(facilitiesPath)
	if err != nil {
		log.Fatal(err)
	}

	// The OSRM provider uses a redis cache to avoid repeated route calls
	// for popular origin/destination pairs. Caching is optional.
	var routeCache *routing.RedisRouteCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		routeCache = routing.NewRedisRouteCache(client, 0)
	}

	provider, err := routing.NewOSRMRouteProvider(osrmURL, routeCache)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repositories.NewSqliteUserRepository(conn)
	contactRepo := repositories.NewSqliteContactRepository(conn)

	router := api.NewRouter(api.Deps{
		Auth:     services.NewAuthService(userRepo, []byte(jwtSecret)),
		Profiles: services.NewProfileService(userRepo),
		Users:    services.NewUserService(userRepo),
		Contacts: services.NewEmergencyService(contactRepo),
		Catalog:  facilityCatalog,
		Provider: provider,
	})

	// Timeouts are tuned for cold-cache route computation (external API
	// latency); the nav websocket takes over its connection on upgrade.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); os.IsNotExist(err) {
		log.Printf("No seed file at %q, skipping demo data", seedPath)
		return nil
	}

	if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
