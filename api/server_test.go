package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Inselaffe03/mortail-coil-arena/game/engine"
	"github.com/Inselaffe03/mortail-coil-arena/game/level"
	"github.com/Inselaffe03/mortail-coil-arena/game/service"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	catalog, err := level.NewCatalog([]level.Definition{
		{ID: 1, Width: 3, Height: 1, Cells: "..."},
		{ID: 2, Width: 3, Height: 1, Cells: ".X."},
	})
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}

	eng, err := engine.NewEngine(catalog)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	return NewServer(service.NewGameService(eng, catalog), nil)
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestGetState(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/state", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	body := decode(t, rec)
	if body["level_id"] != float64(1) {
		t.Errorf("Expected level_id 1, got %v", body["level_id"])
	}
	if body["started"] != false {
		t.Errorf("Expected started=false, got %v", body["started"])
	}
	if body["total_cells"] != float64(3) {
		t.Errorf("Expected total_cells 3, got %v", body["total_cells"])
	}
}

func TestListLevels(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/levels", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	body := decode(t, rec)
	if body["count"] != float64(2) {
		t.Errorf("Expected count 2, got %v", body["count"])
	}
	levels, ok := body["levels"].([]interface{})
	if !ok || len(levels) != 2 {
		t.Fatalf("Expected 2 level entries, got %v", body["levels"])
	}
}

func TestLoadLevel(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/levels/2/load", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := decode(t, rec); body["success"] != true {
		t.Errorf("Expected success, got %v", body)
	}
}

func TestLoadLevel_Errors(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/levels/99/load", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown level, got %d", rec.Code)
	}
	if body := decode(t, rec); body["success"] != false {
		t.Errorf("Expected success=false, got %v", body)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/levels/banana/load", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-integer id, got %d", rec.Code)
	}
}

func TestStart(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/game/start", map[string]int{"x": 0, "y": 0})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := decode(t, rec); body["success"] != true {
		t.Errorf("Expected success, got %v", body)
	}
}

func TestStart_Errors(t *testing.T) {
	tests := []struct {
		name     string
		levelID  int
		x, y     int
		wantCode int
	}{
		{"out of bounds", 1, 9, 0, http.StatusBadRequest},
		{"blocked cell", 2, 1, 0, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/levels/%d/load", tt.levelID), nil)

			rec := doJSON(t, srv, http.MethodPost, "/api/game/start", map[string]int{"x": tt.x, "y": tt.y})
			if rec.Code != tt.wantCode {
				t.Errorf("Expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
			if body := decode(t, rec); body["success"] != false {
				t.Errorf("Expected success=false, got %v", body)
			}
		})
	}
}

func TestStart_AlreadyStarted(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/game/start", map[string]int{"x": 0, "y": 0})

	rec := doJSON(t, srv, http.MethodPost, "/api/game/start", map[string]int{"x": 1, "y": 0})
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 for double start, got %d", rec.Code)
	}
}

func TestStart_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/game/start", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestMove(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/game/start", map[string]int{"x": 0, "y": 0})

	rec := doJSON(t, srv, http.MethodPost, "/api/game/move", map[string]string{"direction": "right"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decode(t, rec)
	if body["success"] != true || body["won"] != true {
		t.Errorf("Expected winning move, got %v", body)
	}
	if body["player_x"] != float64(2) || body["player_y"] != float64(0) {
		t.Errorf("Expected player at (2,0), got %v", body)
	}
	if body["visited_count"] != float64(3) {
		t.Errorf("Expected visited_count 3, got %v", body["visited_count"])
	}
}

func TestMove_Errors(t *testing.T) {
	srv := newTestServer(t)

	// No active game: conflict.
	rec := doJSON(t, srv, http.MethodPost, "/api/game/move", map[string]string{"direction": "up"})
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 before start, got %d", rec.Code)
	}

	doJSON(t, srv, http.MethodPost, "/api/game/start", map[string]int{"x": 0, "y": 0})

	// Unknown direction token: bad request.
	rec = doJSON(t, srv, http.MethodPost, "/api/game/move", map[string]string{"direction": "sideways"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad direction, got %d", rec.Code)
	}
}

func TestMove_NoMovementIs200WithFailureBody(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/game/start", map[string]int{"x": 0, "y": 0})

	// Left from the leftmost cell: well-formed command, zero movement.
	rec := doJSON(t, srv, http.MethodPost, "/api/game/move", map[string]string{"direction": "left"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for a no-movement result, got %d", rec.Code)
	}
	if body := decode(t, rec); body["success"] != false {
		t.Errorf("Expected success=false in body, got %v", body)
	}
}

func TestReset(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/game/start", map[string]int{"x": 0, "y": 0})

	rec := doJSON(t, srv, http.MethodPost, "/api/game/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if body := decode(t, rec); body["success"] != true {
		t.Errorf("Expected success, got %v", body)
	}

	state := decode(t, doJSON(t, srv, http.MethodGet, "/api/state", nil))
	if state["started"] != false {
		t.Error("Reset did not clear the started flag")
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if body := decode(t, rec); body["status"] != "healthy" {
		t.Errorf("Unexpected health body: %v", body)
	}
}

func TestWebSocket_UnavailableWithoutHub(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 without a hub, got %d", rec.Code)
	}
}
