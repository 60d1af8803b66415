package layer

import (
	"net/url"
	"strings"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const (
	titleAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	titleLen      = 5
)

// ResolveTitle derives a display name for a new layer. Precedence: a non-blank
// explicit name verbatim, then the last path segment of an absolute source URL
// with its extension stripped, then a fresh 5-char random token. It never
// fails; a malformed URL just means no derivable title.
func ResolveTitle(source, explicitName string) string {
	if strings.TrimSpace(explicitName) != "" {
		return explicitName
	}
	if t := titleFromURL(source); t != "" {
		return t
	}
	return nanoid.MustGenerate(titleAlphabet, titleLen)
}

func titleFromURL(source string) string {
	u, err := url.Parse(source)
	if err != nil || !u.IsAbs() {
		return ""
	}
	segs := strings.Split(u.Path, "/")
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i] == "" {
			continue
		}
		name, _, _ := strings.Cut(segs[i], ".")
		return name
	}
	return ""
}
