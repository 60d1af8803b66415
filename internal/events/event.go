// Package events publishes scene-change notifications so downstream tile and
// feature caches can invalidate what a new layer may cover.
package events

import (
	"fmt"
	"strings"
	"time"
)

const OpLayerCreated = "layer.created"

type Event struct {
	Version int       `json:"version"`
	Op      string    `json:"op"`
	Scene   string    `json:"scene"`
	Layer   string    `json:"layer"`
	Format  string    `json:"format"`
	TS      time.Time `json:"ts"`
	// H3Cells cover the inline content's bound when it was inspectable;
	// absent for URL and asset sources.
	H3Cells []string `json:"h3_cells,omitempty"`
}

func (e Event) Validate() error {
	if e.Version != 1 {
		return fmt.Errorf("version must be 1")
	}
	if e.Op != OpLayerCreated {
		return fmt.Errorf("op must be %s", OpLayerCreated)
	}
	if strings.TrimSpace(e.Scene) == "" {
		return fmt.Errorf("scene is required")
	}
	if strings.TrimSpace(e.Layer) == "" {
		return fmt.Errorf("layer is required")
	}
	if e.TS.IsZero() {
		return fmt.Errorf("ts is required")
	}
	return nil
}
