// Package submit sends resolved layer configurations to the layer-creation
// service.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/atlascene/layer-composer/internal/layer"
	"github.com/atlascene/layer-composer/internal/logger"
	"github.com/atlascene/layer-composer/internal/observability"
)

// Interface is what the HTTP handler depends on; tests swap it out.
type Interface interface {
	Submit(ctx context.Context, sceneID string, cfg layer.Config) error
}

// APIError carries an opaque rejection from the layer service. The body is
// not interpreted here; it is surfaced to the editor as-is.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("layer service returned %d", e.Status)
	}
	return fmt.Sprintf("layer service returned %d: %s", e.Status, e.Body)
}

type Client struct {
	base  *url.URL
	hc    *http.Client
	log   *zerolog.Logger
	nowFn func() time.Time // for tests
}

func New(base string, hc *http.Client, log *zerolog.Logger) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse layer service url: %w", err)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: u, hc: hc, log: log, nowFn: time.Now}, nil
}

// Submit posts the configuration to the layer service. A non-2xx response
// becomes an *APIError; the caller decides how to surface it. There is no
// retry and no pre-check of the configured source URL.
func (c *Client) Submit(ctx context.Context, sceneID string, cfg layer.Config) error {
	body, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	u := c.base.JoinPath("api", "scenes", sceneID, "layers")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := c.nowFn()
	resp, err := c.hc.Do(req)
	observability.ObserveUpstreamLatency("layer-service", time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("layer service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		logger.FromContext(ctx, c.log).Debug().
			Int("status", resp.StatusCode).
			Str("title", cfg.Title).
			Msg("layer submitted")
		return nil
	}

	// keep the rejection opaque but bounded
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(b))}
}
