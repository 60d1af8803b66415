package assets

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// cacheKey builds the redis key for one asset reference. The readable part is
// sanitized and bounded; the xxhash suffix keeps distinct references distinct
// even after sanitizing collapses them.
func cacheKey(ref string) string {
	ref = strings.TrimSpace(ref)
	safe := sanitize(ref)
	const maxRefLen = 120
	if len(safe) > maxRefLen {
		safe = safe[:maxRefLen]
	}
	return fmt.Sprintf("asset:%s:h=%016x", safe, xxhash.Sum64String(ref))
}

func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		out := rune(0)
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			out = '_'
		case isAlphaNum(r) || r == ':' || r == '_' || r == '-' || r == '.':
			out = r
		default:
			out = '-'
		}
		if (out == '_' || out == '-') && out == prev {
			continue
		}
		b.WriteRune(out)
		prev = out
	}
	return b.String()
}

func isAlphaNum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
