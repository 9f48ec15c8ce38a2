package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/thurmanmarka/moonglow"
)

// defaultEventWindow is used by /v1/moon/events when end is omitted.
const defaultEventWindow = 30 * 24 * time.Hour

// Handler handles HTTP requests for lunar phase data.
type Handler struct {
	now          func() time.Time
	maxRangeDays int
}

// NewHandler creates a new HTTP handler.
func NewHandler(now func() time.Time, maxRangeDays int) *Handler {
	if now == nil {
		now = time.Now
	}
	if maxRangeDays <= 0 {
		maxRangeDays = 366
	}
	return &Handler{
		now:          now,
		maxRangeDays: maxRangeDays,
	}
}

// IlluminationResponse is the body of GET /v1/moon/illumination.
type IlluminationResponse struct {
	Time         time.Time `json:"time"`
	JulianDay    float64   `json:"julian_day"`
	Illumination string    `json:"illumination"`
}

// EventResponse is one entry of GET /v1/moon/events.
type EventResponse struct {
	Kind     moonglow.PhaseKind `json:"kind"`
	Time     time.Time          `json:"time"`
	Relative string             `json:"relative"`
}

// EventsResponse is the body of GET /v1/moon/events.
type EventsResponse struct {
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
	Events []EventResponse `json:"events"`
}

// GetIllumination handles GET /v1/moon/illumination.
func (h *Handler) GetIllumination(c *gin.Context) {
	t, err := h.parseTime(c, "time", time.Time{})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, IlluminationResponse{
		Time:         t,
		JulianDay:    moonglow.JulianDayAt(t),
		Illumination: moonglow.IlluminatedFractionAt(t),
	})
}

// GetPhase handles GET /v1/moon/phase.
func (h *Handler) GetPhase(c *gin.Context) {
	t, err := h.parseTime(c, "time", time.Time{})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phase, err := moonglow.MoonPhaseAt(t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("phase computation failed: %v", err)})
		return
	}

	c.JSON(http.StatusOK, phase)
}

// GetEvents handles GET /v1/moon/events.
func (h *Handler) GetEvents(c *gin.Context) {
	now := h.now().UTC()

	start, err := h.parseTime(c, "start", now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := h.parseTime(c, "end", start.Add(defaultEventWindow))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must not be before start"})
		return
	}
	maxRange := time.Duration(h.maxRangeDays) * 24 * time.Hour
	if end.Sub(start) > maxRange {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("time range exceeds %d days", h.maxRangeDays)})
		return
	}

	events, err := moonglow.PhaseEvents(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("event search failed: %v", err)})
		return
	}

	resp := EventsResponse{
		Start:  start,
		End:    end,
		Events: make([]EventResponse, 0, len(events)),
	}
	for _, ev := range events {
		resp.Events = append(resp.Events, EventResponse{
			Kind:     ev.Kind,
			Time:     ev.Time,
			Relative: humanize.RelTime(ev.Time, now, "ago", "from now"),
		})
	}

	c.JSON(http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   h.now().UTC().Format(time.RFC3339),
	})
}

// parseTime reads an RFC3339 query parameter. A missing parameter yields
// fallback, or the handler clock when fallback is zero.
func (h *Handler) parseTime(c *gin.Context, key string, fallback time.Time) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		if fallback.IsZero() {
			return h.now().UTC(), nil
		}
		return fallback, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s (expected RFC3339): %v", key, err)
	}
	if t.IsZero() {
		return time.Time{}, fmt.Errorf("invalid %s: zero time", key)
	}
	return t.UTC(), nil
}
