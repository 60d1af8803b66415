package layer

import (
	"errors"
	"fmt"
	"strings"
)

// Params carries the format-specific parameters collected by the editor form.
type Params struct {
	CSV     *CSVParams
	GeoJSON *GeoJSONParams
	Layers  *NameList
}

var (
	ErrEmptySource       = errors.New("source is required")
	ErrMissingCSVColumns = errors.New("csv latColumn and lngColumn are required")
	ErrNoLayerNames      = errors.New("at least one committed layer name is required")
)

// Validate is the submission gate run by the caller before Build. It checks
// what Build itself assumes: a non-empty source for the chosen mode, both
// coordinate columns for CSV, and at least one committed sub-layer name for
// the list formats. Pending, uncommitted list input does not count.
func Validate(loc *ContentLocator, p Params) error {
	if loc.Raw() == "" {
		return ErrEmptySource
	}
	kind := loc.Kind()
	if kind == KindCSV {
		if p.CSV == nil || strings.TrimSpace(p.CSV.LatColumn) == "" || strings.TrimSpace(p.CSV.LngColumn) == "" {
			return ErrMissingCSVColumns
		}
	}
	if kind.HasLayerList() {
		if p.Layers == nil || p.Layers.Len() == 0 {
			return ErrNoLayerNames
		}
	}
	return nil
}

// ValidateCommon is the gate for the multi-format form, which additionally
// checks the source extension against the selected format. Single-format
// forms skip the extension check because the format is fixed by the form.
func ValidateCommon(loc *ContentLocator, p Params) error {
	if err := Validate(loc, p); err != nil {
		return err
	}
	if !ValidExtension(loc.Raw(), loc.Mode(), loc.Kind().ExtensionToken()) {
		return fmt.Errorf("source does not look like %s content", loc.Kind())
	}
	return nil
}

// Build assembles the final configuration for a single-format form. It is
// called only after Validate passes on explicit user submission.
func Build(loc *ContentLocator, explicitName string, p Params) Config {
	return build(loc, explicitName, p, false)
}

// BuildCommon assembles the configuration for the multi-format form. It
// always includes the geojson block, inert for non-GeoJSON formats, which is
// what the backend has historically been sent.
func BuildCommon(loc *ContentLocator, explicitName string, p Params) Config {
	return build(loc, explicitName, p, true)
}

func build(loc *ContentLocator, explicitName string, p Params, common bool) Config {
	kind := loc.Kind()
	d := Data{Type: string(kind)}

	if raw := loc.Raw(); raw != "" {
		switch loc.Mode() {
		case ModeURL, ModeAsset:
			d.URL = raw
		case ModeValue:
			switch kind.caps().inline {
			case inlineJSON:
				d.Value = ParseOrRaw(raw)
			case inlineDataURI:
				// inline CZML/KML is delivered as a pseudo-URL, duplicated
				// into value
				uri := DataURI(raw)
				d.URL = uri
				d.Value = uri
			}
		}
	}

	if kind == KindCSV {
		d.CSV = p.CSV
	}
	if kind == KindGeoJSON || common {
		gj := p.GeoJSON
		if gj == nil {
			gj = &GeoJSONParams{}
		}
		d.GeoJSON = gj
	}

	if kind.HasLayerList() {
		names := LayerNames{}
		if p.Layers != nil {
			names = p.Layers.Values()
		}
		d.Layers = &names
	}

	return Config{
		LayerType: "simple",
		Title:     ResolveTitle(loc.Raw(), explicitName),
		Visible:   true,
		Config:    ConfigData{Data: d},
	}
}
