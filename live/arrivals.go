package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ArrivalsClient fetches predictions from an arrivals-by-line JSON API that
// answers GET <BaseURL>?query=<line> with {"success": bool, "results": [...]}.
type ArrivalsClient struct {
	BaseURL    string
	httpClient *http.Client
}

// NewArrivalsClient creates a client whose requests time out after timeout.
func NewArrivalsClient(baseURL string, timeout time.Duration) *ArrivalsClient {
	return &ArrivalsClient{
		BaseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type arrivalsResponse struct {
	Success bool         `json:"success"`
	Results []Prediction `json:"results"`
}

// ErrUnsuccessful is returned when the API answers with success=false.
var ErrUnsuccessful = errors.New("arrivals response was unsuccessful")

// Predictions implements Provider.
func (c *ArrivalsClient) Predictions(ctx context.Context, lineID string) ([]Prediction, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid arrivals url %s: %w", c.BaseURL, err)
	}
	q := u.Query()
	q.Set("query", lineID)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, u)
	}
	var body arrivalsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse arrivals for %s: %w", lineID, err)
	}
	if !body.Success {
		return nil, ErrUnsuccessful
	}
	return body.Results, nil
}
