package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"testreport/internal/service"
)

// TranslateHandler handles translation endpoints.
type TranslateHandler struct {
	translationService service.TranslationService
}

// NewTranslateHandler creates a new TranslateHandler.
func NewTranslateHandler(translationService service.TranslationService) *TranslateHandler {
	return &TranslateHandler{translationService: translationService}
}

type translateRequest struct {
	Text        string   `json:"text" binding:"required"`
	SourceLang  string   `json:"source_lang"`
	TargetLangs []string `json:"target_langs" binding:"required,min=1"`
}

// Translate handles POST /api/v1/translate
func (h *TranslateHandler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text and target_langs are required")
		return
	}

	translations, err := h.translationService.Translate(c.Request.Context(), req.Text, req.SourceLang, req.TargetLangs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"translations": translations})
}
