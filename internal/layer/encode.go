package layer

import (
	"encoding/json"
	"strings"
)

// DataURIPrefix is the fixed header for inline content delivered as a
// pseudo-URL.
const DataURIPrefix = "data:text/plain;charset=UTF-8,"

// ParseOrRaw interprets inline GeoJSON-style text: a successful JSON parse
// yields the structured document, anything else yields the raw text unchanged.
// Pure; never returns an error to the caller.
func ParseOrRaw(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

// DataURI wraps raw text as a text/plain data URI. CZML and KML inline
// content travels to the backend through the url field this way.
func DataURI(raw string) string {
	return DataURIPrefix + uriComponent(raw)
}

// uriComponent percent-encodes like ECMA-262 encodeURIComponent: the
// unreserved set A-Z a-z 0-9 - _ . ! ~ * ' ( ) passes through, every other
// byte of the UTF-8 encoding becomes %XX. Neither url.QueryEscape (space
// becomes '+') nor url.PathEscape (keeps sub-delims) matches that alphabet.
func uriComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIComponentSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0xf])
	}
	return b.String()
}

func isURIComponentSafe(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
