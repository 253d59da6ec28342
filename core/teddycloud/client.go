package teddycloud

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tag-manager/core/linkage"

	"go.uber.org/zap"
)

// API defines the subset of the TeddyCloud HTTP API this service consumes.
type API interface {
	// CheckConnection reports whether the device API is reachable.
	CheckConnection(ctx context.Context) bool
	// FileIndex lists one library directory (params: path).
	FileIndex(ctx context.Context, path string) (*FileIndex, error)
	// TagIndex returns all tags known for a box, addressed by certificate id.
	TagIndex(ctx context.Context, boxID string) ([]Tag, error)
	// LastPlayedSetting reads the device's raw "last played" value for a box.
	LastPlayedSetting(ctx context.Context, boxID string) (string, error)
	// CustomCatalog fetches the user catalog (tonies.custom.json).
	CustomCatalog(ctx context.Context) ([]linkage.Entry, error)
	// OfficialCatalog fetches the vendor catalog (tonies.json).
	OfficialCatalog(ctx context.Context) ([]linkage.Entry, error)
	// TriggerConfigReload asks the device to write its config and reload
	// the catalog after a mutation.
	TriggerConfigReload(ctx context.Context) error
}

// Client is the HTTP implementation of API.
type Client struct {
	baseURL string
	apiBase string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a TeddyCloud API client with strict transport timeouts.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiBase: cfg.APIBase,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
		logger: logger,
	}
}

// buildURL joins the API base with an endpoint. The web UI lives under
// /web while the API does not, so a /web suffix on the configured base is
// stripped for API calls.
func (c *Client) buildURL(endpoint string) string {
	base := c.baseURL
	if strings.HasSuffix(base, "/web") {
		base = strings.TrimSuffix(base, "/web")
	}
	return base + c.apiBase + "/" + strings.TrimLeft(endpoint, "/")
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	body, _, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", rawURL, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request to %s failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response from %s: %w", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		return body, resp.StatusCode, fmt.Errorf("%s returned status %d", rawURL, resp.StatusCode)
	}
	return body, resp.StatusCode, nil
}

// CheckConnection probes the device web UI.
func (c *Client) CheckConnection(ctx context.Context) bool {
	base := c.baseURL
	if !strings.HasSuffix(base, "/web") {
		base += "/web"
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, status, err := c.get(ctx, base)
	if err != nil {
		c.logger.Warn("TeddyCloud not accessible", zap.Error(err))
		return false
	}
	return status == http.StatusOK
}

// FileIndex lists one library directory via fileIndexV2.
func (c *Client) FileIndex(ctx context.Context, path string) (*FileIndex, error) {
	params := url.Values{"special": {"library"}}
	if path != "" {
		params.Set("path", path)
	}

	var index FileIndex
	if err := c.getJSON(ctx, c.buildURL("fileIndexV2")+"?"+params.Encode(), &index); err != nil {
		return nil, fmt.Errorf("failed to get file index for %q: %w", path, err)
	}
	if index.Directories == nil {
		index.Directories = []Directory{}
	}
	if index.Files == nil {
		index.Files = []File{}
	}
	return &index, nil
}

// TagIndex returns the full tag index of a box. The device API is
// addressed by certificate id through the overlay parameter.
func (c *Client) TagIndex(ctx context.Context, boxID string) ([]Tag, error) {
	params := url.Values{"overlay": {boxID}}

	var resp tagIndexResponse
	if err := c.getJSON(ctx, c.buildURL("getTagIndex")+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("failed to get tag index for box %s: %w", boxID, err)
	}
	c.logger.Debug("Fetched tag index", zap.String("box_id", boxID), zap.Int("tags", len(resp.Tags)))
	return resp.Tags, nil
}

// LastPlayedSetting reads internal.last_ruid for a box. The raw value is
// returned trimmed, unquoted, and lowercased; validation against
// placeholder values is the caller's concern.
func (c *Client) LastPlayedSetting(ctx context.Context, boxID string) (string, error) {
	params := url.Values{"overlay": {boxID}}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	body, _, err := c.get(ctx, c.buildURL("settings/get/internal.last_ruid")+"?"+params.Encode())
	if err != nil {
		return "", fmt.Errorf("failed to read last played setting for box %s: %w", boxID, err)
	}
	value := strings.ToLower(strings.Trim(strings.TrimSpace(string(body)), `"`))
	return value, nil
}

// CustomCatalog fetches the user catalog through the API.
func (c *Client) CustomCatalog(ctx context.Context) ([]linkage.Entry, error) {
	var entries []linkage.Entry
	if err := c.getJSON(ctx, c.buildURL("toniesCustomJson"), &entries); err != nil {
		return nil, fmt.Errorf("failed to fetch custom catalog: %w", err)
	}
	return entries, nil
}

// OfficialCatalog fetches the vendor catalog through the API.
func (c *Client) OfficialCatalog(ctx context.Context) ([]linkage.Entry, error) {
	var entries []linkage.Entry
	if err := c.getJSON(ctx, c.buildURL("toniesJson"), &entries); err != nil {
		return nil, fmt.Errorf("failed to fetch official catalog: %w", err)
	}
	return entries, nil
}

// TriggerConfigReload asks the device to persist its config and reload the
// catalog. The write trigger is best effort; the reload must succeed.
func (c *Client) TriggerConfigReload(ctx context.Context) error {
	if _, status, err := c.get(ctx, c.buildURL("triggerWriteConfig")); err != nil {
		c.logger.Warn("triggerWriteConfig failed", zap.Int("status", status), zap.Error(err))
	}

	if _, status, err := c.get(ctx, c.buildURL("toniesJsonUpdate")); err != nil {
		return fmt.Errorf("toniesJsonUpdate returned status %d: %w", status, err)
	}
	return nil
}
