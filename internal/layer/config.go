package layer

import "encoding/json"

// Config is the object submitted to the layer-creation service. Field names
// and nesting are a backend contract and must not drift.
type Config struct {
	LayerType string     `json:"layerType"`
	Title     string     `json:"title"`
	Visible   bool       `json:"visible"`
	Config    ConfigData `json:"config"`
}

type ConfigData struct {
	Data Data `json:"data"`
}

type Data struct {
	URL     string         `json:"url,omitempty"`
	Type    string         `json:"type"`
	Value   any            `json:"value,omitempty"`
	CSV     *CSVParams     `json:"csv,omitempty"`
	GeoJSON *GeoJSONParams `json:"geojson,omitempty"`
	Layers  *LayerNames    `json:"layers,omitempty"`
}

type CSVParams struct {
	LatColumn string `json:"latColumn"`
	LngColumn string `json:"lngColumn"`
}

type GeoJSONParams struct {
	// UseAsResource is the "prioritize performance" flag.
	UseAsResource bool `json:"useAsResource"`
}

// LayerNames marshals as a bare string when it holds exactly one name and as
// a list otherwise (including an empty list). The asymmetry is what the layer
// service expects for the layers field.
type LayerNames []string

func (l LayerNames) MarshalJSON() ([]byte, error) {
	if len(l) == 1 {
		return json.Marshal(l[0])
	}
	if l == nil {
		l = LayerNames{}
	}
	return json.Marshal([]string(l))
}

func (l *LayerNames) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*l = LayerNames{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*l = LayerNames(many)
	return nil
}
