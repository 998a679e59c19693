package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/mealfinder/pkg/domain"
)

// ErrMalformedResponse is returned when the endpoint answers without a meals list
var ErrMalformedResponse = errors.New("malformed search response")

// maxResponseSize limits how much of the endpoint response is read
const maxResponseSize = 4 * 1024 * 1024

// Client posts search requests to the meal search endpoint
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
	policy   *bluemonday.Policy
}

// NewClient creates a search client for the endpoint with a static api key
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		policy:   bluemonday.StrictPolicy(),
	}
}

// Search sends a single request and returns meals in the order the endpoint gave them.
// An empty list is a valid answer, a response without the meals key is ErrMalformedResponse.
func (c *Client) Search(ctx context.Context, sr domain.SearchRequest) ([]domain.Meal, error) {
	body, err := json.Marshal(sr)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Mealfinder/1.0)")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, c.endpoint)
	}

	var sresp domain.SearchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&sresp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if sresp.Meals == nil {
		return nil, fmt.Errorf("%w: no meals list", ErrMalformedResponse)
	}

	for i := range sresp.Meals {
		c.clean(&sresp.Meals[i])
	}
	return sresp.Meals, nil
}

// clean strips markup from the text fields of a meal
func (c *Client) clean(m *domain.Meal) {
	m.Name = c.text(m.Name)
	m.Description = c.text(m.Description)
	m.Price = domain.Price(c.text(string(m.Price)))
	m.ConfidenceLevel = c.text(m.ConfidenceLevel)
	tags := make([]string, 0, len(m.Tags))
	for _, t := range m.Tags {
		if t = c.text(t); t != "" {
			tags = append(tags, t)
		}
	}
	m.Tags = tags
	if m.Restaurant != nil {
		m.Restaurant.Name = c.text(m.Restaurant.Name)
		m.Restaurant.Address = c.text(m.Restaurant.Address)
	}
}

// text returns plain text, html/template does the escaping on render
func (c *Client) text(s string) string {
	return strings.TrimSpace(html.UnescapeString(c.policy.Sanitize(s)))
}
