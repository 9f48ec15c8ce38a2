package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thurmanmarka/moonglow/internal/config"
)

var fixedNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := config.Default().Server
	return SetupRouter(cfg, func() time.Time { return fixedNow })
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := get(t, newTestRouter(t), "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestGetIllumination(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"explicit time", "/v1/moon/illumination?time=2000-01-01T12:00:00Z", "0.230"},
		{"offset time", "/v1/moon/illumination?time=2023-02-05T11:29:00-07:00", "0.998"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, router, tt.target)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			var resp IlluminationResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Illumination != tt.want {
				t.Errorf("illumination = %q, want %q", resp.Illumination, tt.want)
			}
			if resp.Time.Location() != time.UTC {
				t.Errorf("time %v not normalized to UTC", resp.Time)
			}
		})
	}
}

func TestGetIlluminationDefaultsToNow(t *testing.T) {
	w := get(t, newTestRouter(t), "/v1/moon/illumination")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp IlluminationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Time.Equal(fixedNow) {
		t.Errorf("time = %v, want %v", resp.Time, fixedNow)
	}
}

func TestGetPhase(t *testing.T) {
	w := get(t, newTestRouter(t), "/v1/moon/phase?time=2023-01-28T15:19:00Z")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Name         string  `json:"name"`
		Illumination string  `json:"illumination"`
		Waxing       bool    `json:"waxing"`
		PhaseAngle   float64 `json:"phase_angle"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Name != "First Quarter" || !resp.Waxing || resp.Illumination != "0.502" {
		t.Errorf("unexpected phase: %+v", resp)
	}
}

func TestGetEvents(t *testing.T) {
	w := get(t, newTestRouter(t), "/v1/moon/events")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Events []struct {
			Kind     string    `json:"kind"`
			Time     time.Time `json:"time"`
			Relative string    `json:"relative"`
		} `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Jan 2025: first quarter 6th, full 13th, last quarter 21st, new 29th.
	want := []string{"First Quarter", "Full Moon", "Last Quarter", "New Moon"}
	if len(resp.Events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(resp.Events), len(want), resp.Events)
	}
	for i, ev := range resp.Events {
		if ev.Kind != want[i] {
			t.Errorf("event %d kind = %q, want %q", i, ev.Kind, want[i])
		}
		if !strings.HasSuffix(ev.Relative, "from now") {
			t.Errorf("event %d relative = %q, want future", i, ev.Relative)
		}
	}
}

func TestBadRequests(t *testing.T) {
	router := newTestRouter(t)

	targets := []string{
		"/v1/moon/illumination?time=yesterday",
		"/v1/moon/phase?time=2025-13-01T00:00:00Z",
		"/v1/moon/events?start=2025-02-01T00:00:00Z&end=2025-01-01T00:00:00Z",
		"/v1/moon/events?start=2025-01-01T00:00:00Z&end=2027-01-01T00:00:00Z",
		"/v1/moon/events?end=soon",
		"/v1/moon/illumination?time=0001-01-01T00:00:00Z",
		"/v1/moon/phase?time=0001-01-01T00:00:00Z",
		"/v1/moon/events?start=0001-01-01T00:00:00Z",
	}

	for _, target := range targets {
		w := get(t, router, target)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, w.Code)
		}
		if !strings.Contains(w.Body.String(), `"error"`) {
			t.Errorf("%s: body %s has no error field", target, w.Body.String())
		}
	}
}

func TestCORSAllowList(t *testing.T) {
	cfg := config.Default().Server
	cfg.CORSAllowedOrigins = []string{"https://allowed.example"}
	router := SetupRouter(cfg, func() time.Time { return fixedNow })

	w := get(t, router, "/health")
	if w.Code != http.StatusForbidden {
		t.Errorf("disallowed origin status = %d, want 403", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://allowed.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("allowed origin status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://allowed.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(t)

	w := get(t, router, "/health")
	if _, err := uuid.Parse(w.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("generated request ID %q is not a UUID: %v", w.Header().Get(RequestIDHeader), err)
	}

	const id = "0b6e2a52-6f4c-4a8e-9d3e-2f1c5b7a9e10"
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != id {
		t.Errorf("request ID = %q, want caller's %q", got, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("invalid caller request ID was echoed")
	}
}
