package layer

import (
	"net/url"
	"reflect"
	"strings"
	"testing"
)

func TestParseOrRaw_ValidJSON(t *testing.T) {
	a := ParseOrRaw(`{"type":"Point"}`)
	b := ParseOrRaw(`{"type":"Point"}`)
	want := map[string]any{"type": "Point"}
	if !reflect.DeepEqual(a, want) {
		t.Fatalf("got %#v want %#v", a, want)
	}
	// pure function: identical input, identical output
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two parses differ: %#v vs %#v", a, b)
	}
}

func TestParseOrRaw_InvalidJSONFallsBack(t *testing.T) {
	raw := "{not json"
	got := ParseOrRaw(raw)
	if got != raw {
		t.Fatalf("got %#v want raw text %q", got, raw)
	}
}

func TestDataURI_Prefix(t *testing.T) {
	got := DataURI("hello")
	if got != DataURIPrefix+"hello" {
		t.Fatalf("got %q", got)
	}
}

func TestDataURI_RoundTrip(t *testing.T) {
	cases := []string{
		"plain",
		"with spaces and\nnewlines",
		`<kml xmlns="http://www.opengis.net/kml/2.2"><Placemark/></kml>`,
		"reserved ;,/?:@&=+$# chars",
		"unicode åäö 日本語",
		"percent % and plus +",
	}
	for _, s := range cases {
		uri := DataURI(s)
		payload := strings.TrimPrefix(uri, DataURIPrefix)
		dec, err := url.QueryUnescape(payload)
		if err != nil {
			t.Fatalf("unescape %q: %v", payload, err)
		}
		if dec != s {
			t.Fatalf("round trip: got %q want %q", dec, s)
		}
	}
}

func TestURIComponent_Alphabet(t *testing.T) {
	// the encodeURIComponent unreserved set stays literal
	safe := "AZaz09-_.!~*'()"
	if got := uriComponent(safe); got != safe {
		t.Fatalf("got %q want %q", got, safe)
	}
	if got := uriComponent(" "); got != "%20" {
		t.Fatalf("space: got %q want %%20", got)
	}
	if got := uriComponent("+"); got != "%2B" {
		t.Fatalf("plus: got %q want %%2B", got)
	}
}
