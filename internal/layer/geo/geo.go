// Package geo inspects inline GeoJSON at submission time. Inspection is best
// effort: anything that does not parse yields ok=false and the submission
// proceeds without spatial hints.
package geo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	h3 "github.com/uber/h3-go/v4"
)

// Bound extracts the WGS84 bounding box of inline GeoJSON text. It accepts a
// FeatureCollection, a single Feature, or a bare geometry.
func Bound(raw string) (orb.Bound, bool) {
	b := []byte(raw)
	if fc, err := geojson.UnmarshalFeatureCollection(b); err == nil {
		var bound orb.Bound
		found := false
		for _, f := range fc.Features {
			if f.Geometry == nil {
				continue
			}
			if !found {
				bound = f.Geometry.Bound()
				found = true
				continue
			}
			bound = bound.Union(f.Geometry.Bound())
		}
		return bound, found
	}
	if f, err := geojson.UnmarshalFeature(b); err == nil && f.Geometry != nil {
		return f.Geometry.Bound(), true
	}
	if g, err := geojson.UnmarshalGeometry(b); err == nil && g.Geometry() != nil {
		return g.Geometry().Bound(), true
	}
	return orb.Bound{}, false
}

// CellsForBound returns the sorted H3 cells covering a bound at the given
// resolution. Degenerate bounds (a single point) are padded to a tiny box so
// polyfill still yields the containing cell.
func CellsForBound(bound orb.Bound, res int) ([]string, error) {
	if res < 0 || res > 15 {
		return nil, fmt.Errorf("invalid H3 resolution %d (must be 0..15)", res)
	}
	const eps = 1e-9
	if bound.Max.Lon()-bound.Min.Lon() < eps {
		bound.Max[0] += eps
	}
	if bound.Max.Lat()-bound.Min.Lat() < eps {
		bound.Max[1] += eps
	}
	outer := h3.GeoLoop{
		{Lat: bound.Min.Lat(), Lng: bound.Min.Lon()},
		{Lat: bound.Min.Lat(), Lng: bound.Max.Lon()},
		{Lat: bound.Max.Lat(), Lng: bound.Max.Lon()},
		{Lat: bound.Max.Lat(), Lng: bound.Min.Lon()},
	}
	cells, err := polyfill(outer, res)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		// polyfill keeps cells whose center falls inside the loop; a box
		// smaller than one cell can trap none, so take the center cell
		mid := h3.LatLng{
			Lat: (bound.Min.Lat() + bound.Max.Lat()) / 2,
			Lng: (bound.Min.Lon() + bound.Max.Lon()) / 2,
		}
		c, err := h3.LatLngToCell(mid, res)
		if err != nil {
			return nil, fmt.Errorf("h3 center cell: %w", err)
		}
		cells = []string{c.String()}
	}
	return cells, nil
}

func polyfill(outer h3.GeoLoop, res int) ([]string, error) {
	if len(outer) < 4 {
		return nil, errors.New("outer ring has < 4 vertices")
	}
	indexes, err := h3.PolygonToCells(h3.GeoPolygon{GeoLoop: outer}, res)
	if err != nil {
		return nil, fmt.Errorf("h3 polyfill: %w", err)
	}
	out := make([]string, 0, len(indexes))
	seen := make(map[string]struct{}, len(indexes))
	for _, idx := range indexes {
		s := idx.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}
