// Package extractor talks to the PDF text/table extraction service. The
// service owns the heavy PDF machinery; this client only moves bytes and
// reshapes the response.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"testreport/internal/config"
	"testreport/internal/domain"
	"testreport/internal/port"
)

// Client implements port.TextExtractor against the extraction HTTP service.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an extraction client from config.
func NewClient(cfg *config.ExtractorConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// extractResponse models the extraction service response.
type extractResponse struct {
	Text           string `json:"text"`
	StructuredText string `json:"structured_text"`
	Tables         []struct {
		Page     int        `json:"page"`
		TableNum int        `json:"table_num"`
		Data     [][]string `json:"data"`
	} `json:"tables"`
}

// Extract uploads the file and returns the extracted document views.
func (c *Client) Extract(ctx context.Context, in port.ExtractInput) (*domain.RawDocument, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", in.Filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(in.FileBytes); err != nil {
		return nil, fmt.Errorf("writing form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling extraction service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction service error (status %d): %s: %w",
			resp.StatusCode, string(respBody), domain.ErrExtractionFailed)
	}

	var parsed extractResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	doc := &domain.RawDocument{
		Text:           parsed.Text,
		StructuredText: parsed.StructuredText,
	}
	for _, t := range parsed.Tables {
		doc.Tables = append(doc.Tables, domain.TableRecord{
			Page:  t.Page,
			Index: t.TableNum,
			Rows:  t.Data,
		})
	}
	if strings.TrimSpace(doc.Text) == "" && strings.TrimSpace(doc.StructuredText) == "" {
		return nil, domain.ErrEmptyText
	}
	return doc, nil
}
