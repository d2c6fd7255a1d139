package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"artifact-registry-service/internal/config"
	"artifact-registry-service/internal/core/domain"
	ports "artifact-registry-service/internal/core/ports/output"
)

// scorerClient talks to the upstream scoring service, which fetches the model
// card and repository metadata and computes the eleven sub-scores plus the
// dataset/code hints. All network I/O and retrying lives on that side; here a
// failed or malformed response is a plain dependency failure.
type scorerClient struct {
	baseURL string
	client  *http.Client
	enabled bool
}

// NewScorerClient creates a new scoring service client adapter
func NewScorerClient(cfg *config.ScorerConfig) ports.ModelScorer {
	if !cfg.Enabled {
		return &scorerClient{enabled: false}
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &scorerClient{
		baseURL: cfg.URL,
		enabled: true,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *scorerClient) IsAvailable() bool {
	if !c.enabled {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/healthz", nil)
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type scoreRequest struct {
	URL string `json:"url"`
}

func (c *scorerClient) Score(ctx context.Context, modelURL string) (*ports.ScoreReport, error) {
	if !c.enabled {
		return nil, domain.ErrMetricComputation
	}

	body, err := json.Marshal(scoreRequest{URL: modelURL})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", domain.ErrMetricComputation, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/score", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrMetricComputation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMetricComputation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: scorer returned status %d", domain.ErrMetricComputation, resp.StatusCode)
	}

	var report ports.ScoreReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrMetricComputation, err)
	}

	return &report, nil
}
