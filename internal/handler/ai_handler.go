package handler

import (
	"github.com/gin-gonic/gin"

	"testreport/internal/analyzer"
	"testreport/internal/config"
)

// AIHandler exposes the failure-analysis provider configuration.
type AIHandler struct {
	cfg      *config.AnalyzerConfig
	fallback *analyzer.Fallback
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(cfg *config.AnalyzerConfig, fallback *analyzer.Fallback) *AIHandler {
	return &AIHandler{cfg: cfg, fallback: fallback}
}

type providerConfigStatus struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	APIKeySet bool   `json:"api_key_set"`
}

// Status handles GET /api/v1/ai/status. API keys are never echoed,
// only their presence.
func (h *AIHandler) Status(c *gin.Context) {
	configured := make([]providerConfigStatus, 0)
	for _, p := range h.cfg.Providers() {
		configured = append(configured, providerConfigStatus{
			Provider:  p.Provider,
			Model:     p.DefaultModel,
			APIKeySet: p.APIKey != "",
		})
	}

	RespondOK(c, gin.H{
		"providers": configured,
		"chain":     h.fallback.Status(),
	})
}
