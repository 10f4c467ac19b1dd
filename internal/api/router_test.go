package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	_ "modernc.org/sqlite"

	"healthnav-service/internal/adapters/repositories"
	"healthnav-service/internal/adapters/routing"
	"healthnav-service/internal/domain"
	"healthnav-service/internal/services"
)

var (
	testUserLoc  = domain.Coordinate{Lat: 33.68, Lon: 73.05}
	testFacility = domain.Facility{
		ID:       1,
		Name:     "PIMS Hospital",
		Address:  "G-8/3, Islamabad",
		Category: "hospital",
		Location: domain.Coordinate{Lat: 33.7, Lon: 73.1},
	}
)

type staticCatalog struct{ facilities []domain.Facility }

func (c *staticCatalog) ListFacilities(ctx context.Context) ([]domain.Facility, error) {
	return c.facilities, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := repositories.InitSchema(db); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}

	users := repositories.NewSqliteUserRepository(db)
	contacts := repositories.NewSqliteContactRepository(db)

	provider := routing.NewMockRouteProvider([]routing.MockLeg{
		{
			From: testUserLoc,
			To:   testFacility.Location,
			Route: domain.Route{
				Waypoints:            []domain.Coordinate{testUserLoc, testFacility.Location},
				Instructions:         []string{"Head north on Main Road", "Arrive at destination"},
				TotalDistanceMeters:  2500,
				TotalDurationSeconds: 300,
			},
		},
	})

	handler := NewRouter(Deps{
		Auth:     services.NewAuthService(users, []byte("test-secret")),
		Profiles: services.NewProfileService(users),
		Users:    services.NewUserService(users),
		Contacts: services.NewEmergencyService(contacts),
		Catalog:  &staticCatalog{facilities: []domain.Facility{testFacility}},
		Provider: provider,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp, decodeMap(t, resp)
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	body := decodeMap(t, resp)
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("unexpected health response: %d %v", resp.StatusCode, body)
	}
}

const registration = `{
	"name": "Ayesha Khan",
	"cnic": "61101-1234567-1",
	"contact": "0300-1234567",
	"email": "ayesha@example.com",
	"password": "s3cret"
}`

func registerAndLogin(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	resp, body := postJSON(t, srv.URL+"/api/auth/register", registration)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: %d %v", resp.StatusCode, body)
	}

	resp, body = postJSON(t, srv.URL+"/api/auth/login", `{"cnic": "61101-1234567-1", "password": "s3cret"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: %d %v", resp.StatusCode, body)
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("login response missing user: %v", body)
	}
	id, _ := user["id"].(string)
	if id == "" {
		t.Fatalf("login response missing user id: %v", body)
	}
	return id
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/auth/register", registration)
	if resp.StatusCode != http.StatusCreated || body["message"] != "User registered successfully" {
		t.Fatalf("register: %d %v", resp.StatusCode, body)
	}

	// Same email again.
	resp, body = postJSON(t, srv.URL+"/api/auth/register", registration)
	if resp.StatusCode != http.StatusBadRequest || body["error"] != "Email already registered" {
		t.Fatalf("duplicate register: %d %v", resp.StatusCode, body)
	}

	resp, body = postJSON(t, srv.URL+"/api/auth/login", `{"cnic": "61101-1234567-1", "password": "s3cret"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: %d %v", resp.StatusCode, body)
	}
	if token, _ := body["token"].(string); token == "" {
		t.Fatalf("login response missing token: %v", body)
	}

	resp, body = postJSON(t, srv.URL+"/api/auth/login", `{"cnic": "61101-1234567-1", "password": "wrong"}`)
	if resp.StatusCode != http.StatusBadRequest || body["error"] != "Invalid credentials" {
		t.Fatalf("wrong password: %d %v", resp.StatusCode, body)
	}

	resp, body = postJSON(t, srv.URL+"/api/auth/login", `{"cnic": "00000-0000000-0", "password": "x"}`)
	if resp.StatusCode != http.StatusNotFound || body["error"] != "User not found" {
		t.Fatalf("unknown cnic: %d %v", resp.StatusCode, body)
	}
}

func TestRegisterRejectsUnknownFields(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/auth/register", `{"name": "x", "unexpected": true}`)
	if resp.StatusCode != http.StatusBadRequest || body["error"] != "invalid json body" {
		t.Fatalf("unknown field: %d %v", resp.StatusCode, body)
	}
}

func TestProfileEndpoints(t *testing.T) {
	srv := newTestServer(t)
	id := registerAndLogin(t, srv)

	resp, err := http.Get(srv.URL + "/api/profile/" + id)
	if err != nil {
		t.Fatalf("GET profile: %v", err)
	}
	body := decodeMap(t, resp)
	if resp.StatusCode != http.StatusOK || body["email"] != "ayesha@example.com" {
		t.Fatalf("profile get: %d %v", resp.StatusCode, body)
	}

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/profile/"+id,
		strings.NewReader(`{"name": "Ayesha K.", "is_premium": true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT profile: %v", err)
	}
	body = decodeMap(t, resp)
	if resp.StatusCode != http.StatusOK || body["name"] != "Ayesha K." || body["is_premium"] != true {
		t.Fatalf("profile update: %d %v", resp.StatusCode, body)
	}

	resp, err = http.Get(srv.URL + "/api/profile/missing-id")
	if err != nil {
		t.Fatalf("GET missing profile: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing profile: %d", resp.StatusCode)
	}
}

func TestCartAndPharmacyEndpoints(t *testing.T) {
	srv := newTestServer(t)
	id := registerAndLogin(t, srv)

	resp, err := http.Post(srv.URL+"/api/user/cart", "application/json", strings.NewReader(fmt.Sprintf(
		`{"userId": %q, "medicine": {"name": "Panadol", "quantity": 2, "price": 50}}`, id)))
	if err != nil {
		t.Fatalf("POST cart: %v", err)
	}
	defer resp.Body.Close()
	var added []domain.Medicine
	if err := json.NewDecoder(resp.Body).Decode(&added); err != nil {
		t.Fatalf("decode add-to-cart response: %v", err)
	}
	if resp.StatusCode != http.StatusOK || len(added) != 1 {
		t.Fatalf("add to cart: %d %+v", resp.StatusCode, added)
	}

	getResp, err := http.Get(srv.URL + "/api/user/cart/" + id)
	if err != nil {
		t.Fatalf("GET cart: %v", err)
	}
	defer getResp.Body.Close()
	var cart []domain.Medicine
	if err := json.NewDecoder(getResp.Body).Decode(&cart); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(cart) != 1 || cart[0].Name != "Panadol" {
		t.Fatalf("unexpected cart: %+v", cart)
	}

	resp, body := postJSON(t, srv.URL+"/api/user/pharmacy", fmt.Sprintf(
		`{"userId": %q, "pharmacy": {"name": "D Watson", "location": "F-7", "contact": "051-111222"}}`, id))
	if resp.StatusCode != http.StatusOK || body["name"] != "D Watson" {
		t.Fatalf("set pharmacy: %d %v", resp.StatusCode, body)
	}
}

func TestEmergencyEndpoints(t *testing.T) {
	srv := newTestServer(t)
	id := registerAndLogin(t, srv)

	resp, body := postJSON(t, srv.URL+"/api/emergency", fmt.Sprintf(
		`{"userId": %q, "fullName": "Hassan Raza", "phone": "0333-1234567", "bloodGroup": "B+"}`, id))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create contact: %d %v", resp.StatusCode, body)
	}
	contactID, _ := body["id"].(string)
	if contactID == "" {
		t.Fatalf("contact response missing id: %v", body)
	}

	listResp, err := http.Get(srv.URL + "/api/emergency/" + id)
	if err != nil {
		t.Fatalf("GET contacts: %v", err)
	}
	defer listResp.Body.Close()
	var contacts []map[string]any
	if err := json.NewDecoder(listResp.Body).Decode(&contacts); err != nil {
		t.Fatalf("decode contacts: %v", err)
	}
	if len(contacts) != 1 || contacts[0]["fullName"] != "Hassan Raza" {
		t.Fatalf("unexpected contacts: %v", contacts)
	}

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/emergency/"+contactID,
		strings.NewReader(`{"phone": "0300-7654321"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT contact: %v", err)
	}
	body = decodeMap(t, resp)
	if resp.StatusCode != http.StatusOK || body["phone"] != "0300-7654321" {
		t.Fatalf("contact update: %d %v", resp.StatusCode, body)
	}

	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/api/emergency/"+contactID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE contact: %v", err)
	}
	body = decodeMap(t, resp)
	if resp.StatusCode != http.StatusOK || body["message"] != "Contact deleted" {
		t.Fatalf("contact delete: %d %v", resp.StatusCode, body)
	}
}

func TestMapEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/facilities")
	if err != nil {
		t.Fatalf("GET facilities: %v", err)
	}
	fac := struct {
		Facilities []domain.Facility `json:"facilities"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&fac); err != nil {
		t.Fatalf("decode facilities: %v", err)
	}
	resp.Body.Close()
	if len(fac.Facilities) != 1 || fac.Facilities[0].Name != "PIMS Hospital" {
		t.Fatalf("unexpected facilities: %+v", fac.Facilities)
	}

	resp, err = http.Get(srv.URL + "/api/basemaps")
	if err != nil {
		t.Fatalf("GET basemaps: %v", err)
	}
	maps := struct {
		Basemaps []struct {
			Key string `json:"key"`
		} `json:"basemaps"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&maps); err != nil {
		t.Fatalf("decode basemaps: %v", err)
	}
	resp.Body.Close()
	if len(maps.Basemaps) != 5 || maps.Basemaps[0].Key != "osm" {
		t.Fatalf("unexpected basemaps: %+v", maps.Basemaps)
	}
}

func TestNavSocket(t *testing.T) {
	srv := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/nav"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial nav socket: %v", err)
	}
	defer conn.Close()

	// Selecting before any location fix fails.
	if err := conn.WriteJSON(map[string]any{"action": "select_facility", "facility_id": 1}); err != nil {
		t.Fatalf("write select_facility: %v", err)
	}
	msg := readUntil(t, conn, func(m map[string]any) bool { return m["type"] == "error" })
	if m, _ := msg["message"].(string); m != "enable location services to get directions" {
		t.Fatalf("unexpected error message: %v", msg)
	}

	if err := conn.WriteJSON(map[string]any{"action": "set_location", "lat": testUserLoc.Lat, "lon": testUserLoc.Lon}); err != nil {
		t.Fatalf("write set_location: %v", err)
	}
	readUntil(t, conn, func(m map[string]any) bool { return m["type"] == "location_updated" })

	if err := conn.WriteJSON(map[string]any{"action": "select_facility", "facility_id": 1}); err != nil {
		t.Fatalf("write select_facility: %v", err)
	}
	readUntil(t, conn, func(m map[string]any) bool { return m["type"] == "route_requested" })

	computed := readUntil(t, conn, func(m map[string]any) bool { return m["type"] == "route_computed" })
	if computed["state"] != "routed" {
		t.Fatalf("expected routed state in event: %v", computed)
	}
	route, _ := computed["route"].(map[string]any)
	if route == nil {
		t.Fatalf("route_computed event missing route: %v", computed)
	}

	// Narration arrives over the same socket.
	spoken := readUntil(t, conn, func(m map[string]any) bool { return m["type"] == "speak" })
	if text, _ := spoken["text"].(string); text == "" {
		t.Fatalf("speak message missing text: %v", spoken)
	}

	if err := conn.WriteJSON(map[string]any{"action": "clear_route"}); err != nil {
		t.Fatalf("write clear_route: %v", err)
	}
	cleared := readUntil(t, conn, func(m map[string]any) bool { return m["type"] == "route_cleared" })
	if cleared["state"] != "idle" {
		t.Fatalf("expected idle state after clear: %v", cleared)
	}
}

func readUntil(t *testing.T, conn *websocket.Conn, match func(map[string]any) bool) map[string]any {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	for {
		var msg map[string]any
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read message: %v", err)
		}
		if match(msg) {
			return msg
		}
	}
}
