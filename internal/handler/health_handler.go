package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// DBPinger is the slice of the database pool readiness needs.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports liveness and per-dependency readiness. The
// extraction sidecar counts as a dependency because uploads cannot be
// analyzed without it.
type HealthHandler struct {
	db           DBPinger
	extractorURL string
	client       *http.Client
}

// NewHealthHandler creates a new HealthHandler probing the given
// extractor base URL.
func NewHealthHandler(db DBPinger, extractorURL string) *HealthHandler {
	return &HealthHandler{
		db:           db,
		extractorURL: strings.TrimRight(extractorURL, "/"),
		client:       &http.Client{Timeout: 2 * time.Second},
	}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := gin.H{
		"database":  h.checkDB(c.Request.Context()),
		"extractor": h.checkExtractor(c.Request.Context()),
	}
	for _, state := range checks {
		if state != "ok" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}

func (h *HealthHandler) checkDB(ctx context.Context) string {
	if err := h.db.PingContext(ctx); err != nil {
		return "unreachable"
	}
	return "ok"
}

func (h *HealthHandler) checkExtractor(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.extractorURL+"/health", nil)
	if err != nil {
		return "unreachable"
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return "unreachable"
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "unreachable"
	}
	return "ok"
}
