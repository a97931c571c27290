package harvester

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Renderer fetches pages through a browserless/ChromeDB-compatible HTTP
// service so JavaScript-rendered listings arrive as complete markup.
// It satisfies the same Fetcher contract as the plain HTTP path.
type Renderer struct {
	addr   string
	client *http.Client
}

// renderStrategy is one way of asking the render service for a page
type renderStrategy struct {
	name      string
	waitUntil string
	timeoutMs int
}

// NewRenderer creates a renderer against the given service address
func NewRenderer(addr string) *Renderer {
	return &Renderer{
		addr:   strings.TrimRight(addr, "/"),
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Fetch renders url and returns the resulting HTML. It tries a
// network-idle wait first for dynamic grids, then a plain load wait.
func (r *Renderer) Fetch(url string) (io.Reader, error) {
	strategies := []renderStrategy{
		{name: "networkidle", waitUntil: "networkidle0", timeoutMs: 45000},
		{name: "load", waitUntil: "load", timeoutMs: 20000},
	}

	var lastErr error
	for i, strategy := range strategies {
		reader, err := r.renderOnce(url, strategy)
		if err == nil {
			return reader, nil
		}
		lastErr = err

		if i < len(strategies)-1 {
			time.Sleep(1 * time.Second)
		}
	}

	return nil, fmt.Errorf("all render strategies failed for %s: %w", url, lastErr)
}

// renderOnce executes a single /content request
func (r *Renderer) renderOnce(url string, strategy renderStrategy) (io.Reader, error) {
	payload := map[string]interface{}{
		"url": url,
		"gotoOptions": map[string]interface{}{
			"waitUntil": strategy.waitUntil,
			"timeout":   strategy.timeoutMs,
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest("POST", r.addr+"/content", bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("render strategy %s: HTTP %d", strategy.name, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read render response: %w", err)
	}

	return validateHTML(body)
}

// validateHTML rejects responses that do not look like a page at all
func validateHTML(data []byte) (io.Reader, error) {
	if len(data) < 50 {
		return nil, fmt.Errorf("render response too short: %d bytes", len(data))
	}

	lower := strings.ToLower(string(data))
	if strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<!doctype") ||
		strings.Contains(lower, "<body") {
		return bytes.NewReader(data), nil
	}

	return nil, fmt.Errorf("render response does not appear to be HTML")
}
