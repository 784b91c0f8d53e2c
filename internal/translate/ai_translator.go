package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"testreport/internal/config"
	"testreport/internal/domain"
	"testreport/internal/port"
)

const (
	defaultTranslateEndpoint = "https://api.anthropic.com/v1/messages"
	defaultTranslateModel    = "claude-3-5-sonnet-20240620"
	translateRuneLimit       = 6000
)

// AITranslator translates report text through the Anthropic Messages API.
// Callers fall back to the offline dictionary when it errors.
type AITranslator struct {
	apiKey    string
	model     string
	maxTokens int
	endpoint  string
	client    *http.Client
}

var _ port.Translator = (*AITranslator)(nil)

// NewAITranslator builds a translator from an analyzer provider config.
func NewAITranslator(cfg *config.AnalyzerProviderConfig) *AITranslator {
	return NewAITranslatorWithEndpoint(cfg, defaultTranslateEndpoint)
}

// NewAITranslatorWithEndpoint is NewAITranslator with an explicit API
// endpoint, used by tests.
func NewAITranslatorWithEndpoint(cfg *config.AnalyzerProviderConfig, endpoint string) *AITranslator {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultTranslateModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4000
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &AITranslator{
		apiKey:    cfg.APIKey,
		model:     model,
		maxTokens: maxTokens,
		endpoint:  endpoint,
		client:    &http.Client{Timeout: timeout},
	}
}

type translateRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []translateMessage `json:"messages"`
}

type translateMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type translateResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (t *AITranslator) Translate(ctx context.Context, text string, source domain.Language, targets []domain.Language) (map[domain.Language]string, error) {
	if t.apiKey == "" {
		return nil, domain.ErrAIDisabled
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyText
	}

	prompt := buildTranslatePrompt(text, source, targets)
	body, err := json.Marshal(translateRequest{
		Model:     t.model,
		MaxTokens: t.maxTokens,
		Messages:  []translateMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling translate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", t.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling translate API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading translate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("translate API status %d: %s", resp.StatusCode, truncateBody(raw))
	}

	var parsed translateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decoding translate response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return nil, fmt.Errorf("translate response has no content")
	}

	return parseTranslations(parsed.Content[0].Text, targets)
}

func buildTranslatePrompt(text string, source domain.Language, targets []domain.Language) string {
	runes := []rune(text)
	if len(runes) > translateRuneLimit {
		text = string(runes[:translateRuneLimit])
	}
	codes := make([]string, len(targets))
	for i, t := range targets {
		codes[i] = string(t)
	}
	var b strings.Builder
	b.WriteString("Translate the following automotive test report text")
	if source != "" {
		fmt.Fprintf(&b, " from %q", string(source))
	}
	fmt.Fprintf(&b, " into the languages %s.\n", strings.Join(codes, ", "))
	b.WriteString("Keep technical terms, units and numeric values unchanged.\n")
	b.WriteString("Respond with a single JSON object mapping each language code to the translated text, nothing else.\n\n")
	b.WriteString("Text:\n")
	b.WriteString(text)
	return b.String()
}

// parseTranslations tolerates code fences and prose around the JSON object.
func parseTranslations(text string, targets []domain.Language) (map[domain.Language]string, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	if start := strings.Index(cleaned, "{"); start >= 0 {
		if end := strings.LastIndex(cleaned, "}"); end > start {
			cleaned = cleaned[start : end+1]
		}
	}

	var byCode map[string]string
	if err := json.Unmarshal([]byte(cleaned), &byCode); err != nil {
		return nil, fmt.Errorf("parsing translations: %w", err)
	}

	out := make(map[domain.Language]string, len(targets))
	for _, target := range targets {
		value := strings.TrimSpace(byCode[string(target)])
		if value == "" {
			return nil, fmt.Errorf("translation for %q missing from response", target)
		}
		out[target] = value
	}
	return out, nil
}

func truncateBody(raw []byte) string {
	const limit = 300
	if len(raw) > limit {
		return string(raw[:limit]) + "..."
	}
	return string(raw)
}
