package biometric

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

// Client calls the AI gateway's face-comparison endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a biometric client from gateway configuration.
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

type compareRequest struct {
	DocumentImage string `json:"document_image"`
	SelfieImage   string `json:"selfie_image"`
	StudentName   string `json:"student_name,omitempty"`
}

// CompareFaces sends a document portrait and a selfie to the gateway and
// decodes its comparison result. Failures are returned as errors; the scan
// pipeline degrades to an absent biometric result rather than aborting.
func (c *Client) CompareFaces(ctx context.Context, docImage, selfie []byte, studentName string) (*scoring.BiometricResult, error) {
	payload, err := json.Marshal(compareRequest{
		DocumentImage: base64.StdEncoding.EncodeToString(docImage),
		SelfieImage:   base64.StdEncoding.EncodeToString(selfie),
		StudentName:   studentName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode comparison request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/compare-faces", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build comparison request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("face comparison call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("biometric gateway returned status %d", resp.StatusCode)
	}

	var result scoring.BiometricResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode comparison response: %w", err)
	}

	c.logger.Debug("faces compared",
		zap.Int("match_score", result.MatchScore),
		zap.String("verdict", string(result.MatchVerdict)))

	return &result, nil
}
