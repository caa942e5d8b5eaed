// Package inference talks to the model server hosting the invoice CNN.
// The Keras artifact cannot be loaded in-process, so it is served next to
// us and queried over the TensorFlow-Serving REST shape.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client calls one served model. The configured URL is the model base,
// e.g. http://localhost:8501/v1/models/invoice_cnn.
type Client struct {
	url    string
	client *http.Client
}

func New(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Predict presents one image tensor and returns its probability vector.
func (c *Client) Predict(ctx context.Context, instance [][][]float32) ([]float32, error) {
	body, err := json.Marshal(map[string]any{
		"instances": [][][][]float32{instance},
	})
	if err != nil {
		return nil, fmt.Errorf("encode instances: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+":predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model server returned status %d", resp.StatusCode)
	}

	var out struct {
		Predictions [][]float32 `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode predictions: %w", err)
	}
	if len(out.Predictions) == 0 {
		return nil, fmt.Errorf("model server returned no predictions")
	}

	return out.Predictions[0], nil
}

// Ping reports whether the model server answers its status endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return fmt.Errorf("build status request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("model server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model server unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
