package layer

import "testing"

func TestLocator_InitialMode(t *testing.T) {
	cases := []struct {
		kind Kind
		want SourceMode
	}{
		{KindCSV, ModeAsset},
		{KindGeoJSON, ModeAsset},
		{KindThreeDTiles, ModeURL},
		{KindWMS, ModeURL},
		{KindMVT, ModeURL},
	}
	for _, c := range cases {
		l := NewLocator(c.kind)
		if l.Mode() != c.want {
			t.Fatalf("%s: initial mode %s, want %s", c.kind, l.Mode(), c.want)
		}
		if l.Raw() != "" {
			t.Fatalf("%s: initial raw %q, want empty", c.kind, l.Raw())
		}
	}
}

func TestLocator_SwitchClearsRaw(t *testing.T) {
	l := NewLocator(KindGeoJSON)
	l.SetMode(ModeURL)
	l.SetRaw("http://x")
	l.SetMode(ModeAsset)
	if l.Raw() != "" {
		t.Fatalf("raw survived mode switch: %q", l.Raw())
	}
	if l.Mode() != ModeAsset {
		t.Fatalf("mode = %s, want asset", l.Mode())
	}
}

func TestLocator_UnsupportedModeIgnored(t *testing.T) {
	l := NewLocator(KindWMS)
	l.SetRaw("https://tiles.example.com/wms")
	l.SetMode(ModeValue) // WMS is URL-only
	if l.Mode() != ModeURL {
		t.Fatalf("mode = %s, want url", l.Mode())
	}
	if l.Raw() != "https://tiles.example.com/wms" {
		t.Fatalf("raw discarded on rejected switch: %q", l.Raw())
	}
}

func TestParseKindAndMode(t *testing.T) {
	if _, ok := ParseKind("geojson"); !ok {
		t.Fatal("geojson should parse")
	}
	if _, ok := ParseKind("shapefile"); ok {
		t.Fatal("shapefile should not parse")
	}
	if m, ok := ParseMode("value"); !ok || m != ModeValue {
		t.Fatalf("got %v %v", m, ok)
	}
	if _, ok := ParseMode("inline"); ok {
		t.Fatal("inline should not parse")
	}
}
