// Package layer resolves heterogeneous editor input (source mode, raw source,
// format parameters) into the normalized data-source configuration the
// layer-creation service accepts.
package layer

// Kind identifies the structural data type of the layer content. The string
// value is the `type` token sent to the layer service.
type Kind string

const (
	KindCSV         Kind = "csv"
	KindCZML        Kind = "czml"
	KindGeoJSON     Kind = "geojson"
	KindKML         Kind = "kml"
	KindThreeDTiles Kind = "3dtiles"
	KindWMS         Kind = "wms"
	KindMVT         Kind = "mvt"
)

// inlineRule selects how a value-mode source is encoded at submission.
type inlineRule int

const (
	inlineNone    inlineRule = iota // format has no inline value mode
	inlineJSON                      // parse as JSON, fall back to raw text
	inlineDataURI                   // percent-encode into a text/plain data URI
)

type capability struct {
	modes     []SourceMode // in editor order; first is the initial mode
	layerList bool         // accepts named sub-layers (WMS / vector tiles)
	inline    inlineRule
}

var capabilities = map[Kind]capability{
	KindCSV:         {modes: []SourceMode{ModeAsset, ModeURL}},
	KindCZML:        {modes: []SourceMode{ModeAsset, ModeURL, ModeValue}, inline: inlineDataURI},
	KindGeoJSON:     {modes: []SourceMode{ModeAsset, ModeURL, ModeValue}, inline: inlineJSON},
	KindKML:         {modes: []SourceMode{ModeAsset, ModeURL, ModeValue}, inline: inlineDataURI},
	KindThreeDTiles: {modes: []SourceMode{ModeURL}},
	KindWMS:         {modes: []SourceMode{ModeURL}, layerList: true},
	KindMVT:         {modes: []SourceMode{ModeURL}, layerList: true},
}

// ParseKind maps a wire token to a Kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	_, ok := capabilities[k]
	return k, ok
}

func (k Kind) caps() capability {
	return capabilities[k]
}

// Supports reports whether the format offers the given source mode.
func (k Kind) Supports(m SourceMode) bool {
	for _, mode := range k.caps().modes {
		if mode == m {
			return true
		}
	}
	return false
}

// HasLayerList reports whether the format takes named sub-layers.
func (k Kind) HasLayerList() bool {
	return k.caps().layerList
}

// ExtensionToken is the file extension the format is expected to carry when
// the source is a path-like reference.
func (k Kind) ExtensionToken() string {
	return string(k)
}
