// Package assets looks up and lists platform assets for the editor's asset
// picker, caching metadata in redis behind an in-process LRU.
package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/atlascene/layer-composer/internal/logger"
	"github.com/atlascene/layer-composer/internal/observability"
)

// Asset is the platform's record of a previously uploaded file.
type Asset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// Catalog serves the picker collaborator contract: list assets matching a set
// of accepted extensions, and resolve one asset reference to its metadata.
type Catalog struct {
	base  *url.URL
	hc    *http.Client
	cache *Cache
	log   *zerolog.Logger
}

func NewCatalog(base string, hc *http.Client, cache *Cache, log *zerolog.Logger) (*Catalog, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse asset service url: %w", err)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Catalog{base: u, hc: hc, cache: cache, log: log}, nil
}

// Lookup resolves an asset reference, read-through cached. Cache failures
// degrade to the upstream call.
func (c *Catalog) Lookup(ctx context.Context, ref string) (Asset, error) {
	if c.cache != nil {
		if a, ok := c.cache.Get(ctx, ref); ok {
			return a, nil
		}
	}

	u := c.base.JoinPath("api", "assets", ref)
	var a Asset
	if err := c.getJSON(ctx, u, &a); err != nil {
		return Asset{}, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, ref, a); err != nil {
			logger.FromContext(ctx, c.log).Warn().Err(err).Msg("asset cache put failed")
		}
	}
	return a, nil
}

// List returns assets whose file extension is in exts (lower-cased tokens,
// e.g. "geojson"). An empty exts lists everything.
func (c *Catalog) List(ctx context.Context, exts []string) ([]Asset, error) {
	u := c.base.JoinPath("api", "assets")
	if len(exts) > 0 {
		q := u.Query()
		q.Set("ext", strings.Join(exts, ","))
		u.RawQuery = q.Encode()
	}
	var out []Asset
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Catalog) getJSON(ctx context.Context, u *url.URL, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	start := time.Now()
	resp, err := c.hc.Do(req)
	observability.ObserveUpstreamLatency("asset-service", time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("asset service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("asset service returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode asset response: %w", err)
	}
	return nil
}
