package webfetch

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodyBytes caps how much of a remote response we read.
const maxBodyBytes = 1 << 20

// Client is a small outbound HTTP client shared by the research
// fetchers. All lookups are best effort and bounded by the configured
// timeout.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new fetch client.
func NewClient(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// GetText fetches a URL and returns the body as a string.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.get(ctx, url, "text/plain")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetJSON fetches a URL and decodes the JSON body into dest.
func (c *Client) GetJSON(ctx context.Context, url string, dest interface{}) error {
	body, err := c.get(ctx, url, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode JSON from %s: %w", url, err)
	}
	return nil
}

// GetXML fetches a URL and decodes the XML body into dest.
func (c *Client) GetXML(ctx context.Context, url string, dest interface{}) error {
	body, err := c.get(ctx, url, "application/xml, text/xml")
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode XML from %s: %w", url, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	return body, nil
}
