package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"uhakiki/verification-portal/verification-backend/internal/config"
	"uhakiki/verification-portal/verification-backend/internal/scoring"
)

// Client calls the AI gateway's document-extraction endpoint. The gateway
// is opaque beyond its response shape: it accepts an image and returns a
// scoring.ExtractedDocument or an error.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates an extraction client from gateway configuration.
func NewClient(cfg config.GatewayConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type extractRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
}

// ExtractDocument sends the image to the gateway and decodes the extraction
// result. Any failure is returned as an error; the caller decides how to
// degrade (the scan pipeline treats a failed extraction as an absent
// document, it does not abort).
func (c *Client) ExtractDocument(ctx context.Context, image []byte, mimeType string) (*scoring.ExtractedDocument, error) {
	payload, err := json.Marshal(extractRequest{
		Image:    base64.StdEncoding.EncodeToString(image),
		MimeType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction gateway returned status %d", resp.StatusCode)
	}

	var doc scoring.ExtractedDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}

	// Confidence must stay in [0,1].
	if doc.Confidence < 0 {
		doc.Confidence = 0
	}
	if doc.Confidence > 1 {
		doc.Confidence = 1
	}

	c.logger.Debug("document extracted",
		zap.Float64("confidence", doc.Confidence),
		zap.Bool("structured", doc.Structured != nil))

	return &doc, nil
}
