package layer

import "strings"

// ValidExtension checks a path-like source against the declared format token.
// The substring after the final '.' is compared case-insensitively against
// the token; a source without a '.' is compared whole. Inline value sources
// have no extension and always pass.
func ValidExtension(source string, mode SourceMode, token string) bool {
	if mode == ModeValue {
		return true
	}
	ext := source
	if i := strings.LastIndex(source, "."); i >= 0 {
		ext = source[i+1:]
	}
	return strings.EqualFold(ext, token)
}
