package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rowanhale/seatwell/internal/config"
	"github.com/rowanhale/seatwell/internal/database"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{
		JWTSecret:       "test-secret",
		JWTTTL:          time.Hour,
		StaffSessionTTL: 4 * time.Hour,
	}
	srv := New(db, cfg, slog.New(slog.DiscardHandler))

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

// doJSON sends a JSON request with optional bearer and staff tokens and
// decodes the response body into a generic map.
func doJSON(t *testing.T, ts *httptest.Server, method, path string, body any, bearer, staffToken string) (int, map[string]any) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if staffToken != "" {
		req.Header.Set("X-Staff-Token", staffToken)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded map[string]any
	if len(raw) > 0 && json.Valid(raw) && raw[0] == '{' {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode, decoded
}

func doJSONList(t *testing.T, ts *httptest.Server, path, bearer, staffToken string) (int, []map[string]any) {
	t.Helper()

	req, _ := http.NewRequest("GET", ts.URL+path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if staffToken != "" {
		req.Header.Set("X-Staff-Token", staffToken)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	var list []map[string]any
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
			t.Fatalf("decode list %s: %v", path, err)
		}
	}
	return resp.StatusCode, list
}

// TestServerEventDayFlow drives the whole stack over HTTP: a couple sets up
// a wedding with staff access and guests, door staff open a session, and
// guests are checked in by scan and by manual lookup.
func TestServerEventDayFlow(t *testing.T) {
	ts := newTestServer(t)

	// Couple registers and gets an API token.
	status, body := doJSON(t, ts, "POST", "/api/auth/register", map[string]string{
		"email":    "couple@example.com",
		"name":     "Pat and Sam",
		"password": "correct horse",
		"role":     "couple",
	}, "", "")
	if status != http.StatusCreated {
		t.Fatalf("register: status = %d, body = %v", status, body)
	}
	coupleToken, _ := body["token"].(string)
	if coupleToken == "" {
		t.Fatal("register returned no token")
	}

	// Create the wedding.
	status, body = doJSON(t, ts, "POST", "/api/weddings", map[string]string{
		"title": "Smith Wedding",
		"venue": "Lakeside Hall",
	}, coupleToken, "")
	if status != http.StatusCreated {
		t.Fatalf("create wedding: status = %d, body = %v", status, body)
	}
	weddingID := int64(body["id"].(float64))
	weddingPath := fmt.Sprintf("/api/weddings/%d", weddingID)

	// Configure staff access.
	status, body = doJSON(t, ts, "PUT", weddingPath+"/staff-access", map[string]string{
		"public_code": "smith24",
		"pin":         "4321",
	}, coupleToken, "")
	if status != http.StatusOK {
		t.Fatalf("staff access: status = %d, body = %v", status, body)
	}
	if body["public_code"] != "SMITH24" {
		t.Errorf("public code = %v, want SMITH24 (uppercased)", body["public_code"])
	}

	// Add two guests; keep the first one's QR token.
	status, body = doJSON(t, ts, "POST", weddingPath+"/guests", map[string]string{
		"name": "Alice Adams",
	}, coupleToken, "")
	if status != http.StatusCreated {
		t.Fatalf("create guest: status = %d, body = %v", status, body)
	}
	aliceToken, _ := body["checkin_token"].(string)
	aliceID := int64(body["id"].(float64))
	if aliceToken == "" {
		t.Fatal("guest has no check-in token")
	}

	status, body = doJSON(t, ts, "POST", weddingPath+"/guests", map[string]string{
		"name": "Bob Brown",
	}, coupleToken, "")
	if status != http.StatusCreated {
		t.Fatalf("create guest: status = %d, body = %v", status, body)
	}
	bobID := int64(body["id"].(float64))

	// Editing a guest must not rotate the printed QR token.
	status, body = doJSON(t, ts, "PUT", fmt.Sprintf("%s/guests/%d", weddingPath, aliceID), map[string]string{
		"name":             "Alice Adams",
		"table_assignment": "Table 3",
	}, coupleToken, "")
	if status != http.StatusOK {
		t.Fatalf("update guest: status = %d, body = %v", status, body)
	}
	if body["checkin_token"] != aliceToken {
		t.Error("guest update rotated the check-in token")
	}

	// The QR endpoint serves a PNG.
	req, _ := http.NewRequest("GET", fmt.Sprintf("%s%s/guests/%d/qr", ts.URL, weddingPath, aliceID), nil)
	req.Header.Set("Authorization", "Bearer "+coupleToken)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("qr: status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("qr content type = %q, want image/png", ct)
	}

	// Staff login rejects a wrong PIN and accepts the right one.
	status, _ = doJSON(t, ts, "POST", "/api/staff/login", map[string]string{
		"wedding_code": "SMITH24",
		"pin":          "0000",
	}, "", "")
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong PIN: status = %d, want 401", status)
	}

	status, body = doJSON(t, ts, "POST", "/api/staff/login", map[string]string{
		"wedding_code": "SMITH24",
		"pin":          "4321",
	}, "", "")
	if status != http.StatusOK {
		t.Fatalf("staff login: status = %d, body = %v", status, body)
	}
	staffToken, _ := body["token"].(string)
	if staffToken == "" {
		t.Fatal("staff login returned no token")
	}

	// Scan Alice's QR code.
	status, body = doJSON(t, ts, "POST", "/api/staff/checkin/scan", map[string]string{
		"token": aliceToken,
	}, "", staffToken)
	if status != http.StatusOK {
		t.Fatalf("scan: status = %d, body = %v", status, body)
	}
	if body["duplicate"] != false {
		t.Error("first scan flagged as duplicate")
	}
	if body["guest_name"] != "Alice Adams" {
		t.Errorf("guest name = %v, want Alice Adams", body["guest_name"])
	}

	// A second scan of the same code is a duplicate, not an error.
	status, body = doJSON(t, ts, "POST", "/api/staff/checkin/scan", map[string]string{
		"token": aliceToken,
	}, "", staffToken)
	if status != http.StatusOK {
		t.Fatalf("rescan: status = %d, body = %v", status, body)
	}
	if body["duplicate"] != true {
		t.Error("second scan not flagged as duplicate")
	}

	// Manual check-in for Bob, found by name search.
	status, guests := doJSONList(t, ts, "/api/staff/guests?search=bob", "", staffToken)
	if status != http.StatusOK || len(guests) != 1 {
		t.Fatalf("staff guest search: status = %d, matches = %d", status, len(guests))
	}
	status, body = doJSON(t, ts, "POST", "/api/staff/checkin/manual", map[string]int64{
		"guest_id": bobID,
	}, "", staffToken)
	if status != http.StatusOK {
		t.Fatalf("manual check-in: status = %d, body = %v", status, body)
	}
	if body["duplicate"] != false {
		t.Error("manual check-in flagged as duplicate")
	}

	// Stats reflect both check-ins.
	status, body = doJSON(t, ts, "GET", "/api/staff/stats", nil, "", staffToken)
	if status != http.StatusOK {
		t.Fatalf("stats: status = %d", status)
	}
	if body["total"].(float64) != 2 || body["checked_in"].(float64) != 2 {
		t.Errorf("stats = %v, want total 2 checked_in 2", body)
	}
	if body["rate"].(float64) != 1 {
		t.Errorf("rate = %v, want 1", body["rate"])
	}

	// Unknown QR token is a 404 and leaves the ledger alone.
	status, _ = doJSON(t, ts, "POST", "/api/staff/checkin/scan", map[string]string{
		"token": "not-a-real-token",
	}, "", staffToken)
	if status != http.StatusNotFound {
		t.Errorf("bogus token: status = %d, want 404", status)
	}

	// Logout revokes the session.
	status, _ = doJSON(t, ts, "POST", "/api/staff/logout", nil, "", staffToken)
	if status != http.StatusOK {
		t.Fatalf("logout: status = %d", status)
	}
	status, _ = doJSON(t, ts, "GET", "/api/staff/stats", nil, "", staffToken)
	if status != http.StatusUnauthorized {
		t.Errorf("stats after logout: status = %d, want 401", status)
	}
}

func TestServerAuthBoundaries(t *testing.T) {
	ts := newTestServer(t)

	// No bearer token.
	status, _ := doJSON(t, ts, "GET", "/api/weddings", nil, "", "")
	if status != http.StatusUnauthorized {
		t.Errorf("unauthenticated list: status = %d, want 401", status)
	}

	// No staff token.
	status, _ = doJSON(t, ts, "GET", "/api/staff/stats", nil, "", "")
	if status != http.StatusUnauthorized {
		t.Errorf("unauthenticated stats: status = %d, want 401", status)
	}

	// Owner sets up a wedding.
	_, body := doJSON(t, ts, "POST", "/api/auth/register", map[string]string{
		"email":    "owner@example.com",
		"name":     "Owner",
		"password": "correct horse",
		"role":     "couple",
	}, "", "")
	ownerToken := body["token"].(string)

	status, body = doJSON(t, ts, "POST", "/api/weddings", map[string]string{
		"title": "Private Wedding",
	}, ownerToken, "")
	if status != http.StatusCreated {
		t.Fatalf("create wedding: status = %d", status)
	}
	weddingPath := fmt.Sprintf("/api/weddings/%d", int64(body["id"].(float64)))

	// Another couple cannot read or modify it.
	_, body = doJSON(t, ts, "POST", "/api/auth/register", map[string]string{
		"email":    "other@example.com",
		"name":     "Other",
		"password": "correct horse",
		"role":     "couple",
	}, "", "")
	otherToken := body["token"].(string)

	status, _ = doJSON(t, ts, "GET", weddingPath, nil, otherToken, "")
	if status != http.StatusForbidden {
		t.Errorf("cross-tenant get: status = %d, want 403", status)
	}
	status, _ = doJSON(t, ts, "PUT", weddingPath+"/staff-access", map[string]string{
		"public_code": "STEAL99",
		"pin":         "1234",
	}, otherToken, "")
	if status != http.StatusForbidden {
		t.Errorf("cross-tenant staff access: status = %d, want 403", status)
	}

	// A vendor cannot reach admin routes.
	_, body = doJSON(t, ts, "POST", "/api/auth/register", map[string]string{
		"email":    "vendor@example.com",
		"name":     "Vendor",
		"password": "correct horse",
		"role":     "vendor",
	}, "", "")
	vendorToken := body["token"].(string)

	status, _ = doJSON(t, ts, "GET", "/api/admin/vendors", nil, vendorToken, "")
	if status != http.StatusForbidden {
		t.Errorf("vendor on admin route: status = %d, want 403", status)
	}
}

func TestServerStaffLoginUniformFailure(t *testing.T) {
	ts := newTestServer(t)

	// Unknown code and wrong PIN on a real code must be indistinguishable.
	_, body := doJSON(t, ts, "POST", "/api/auth/register", map[string]string{
		"email":    "couple@example.com",
		"name":     "Couple",
		"password": "correct horse",
		"role":     "couple",
	}, "", "")
	coupleToken := body["token"].(string)

	_, body = doJSON(t, ts, "POST", "/api/weddings", map[string]string{"title": "W"}, coupleToken, "")
	weddingPath := fmt.Sprintf("/api/weddings/%d", int64(body["id"].(float64)))
	doJSON(t, ts, "PUT", weddingPath+"/staff-access", map[string]string{
		"public_code": "REAL01",
		"pin":         "1234",
	}, coupleToken, "")

	s1, b1 := doJSON(t, ts, "POST", "/api/staff/login", map[string]string{
		"wedding_code": "NOSUCH", "pin": "1234",
	}, "", "")
	s2, b2 := doJSON(t, ts, "POST", "/api/staff/login", map[string]string{
		"wedding_code": "REAL01", "pin": "9999",
	}, "", "")

	if s1 != http.StatusUnauthorized || s2 != http.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want 401/401", s1, s2)
	}
	if b1["error"] != b2["error"] {
		t.Errorf("error messages differ: %v vs %v", b1["error"], b2["error"])
	}
}
