package layer

// SourceMode says where the layer's content comes from.
type SourceMode string

const (
	ModeAsset SourceMode = "asset" // previously uploaded asset reference
	ModeURL   SourceMode = "url"   // fetched from a remote URL at render time
	ModeValue SourceMode = "value" // typed or pasted directly by the user
)

// ParseMode maps a wire token to a SourceMode.
func ParseMode(s string) (SourceMode, bool) {
	switch m := SourceMode(s); m {
	case ModeAsset, ModeURL, ModeValue:
		return m, true
	}
	return "", false
}

// ContentLocator holds the current source mode and raw source string for one
// in-progress form session. Raw may be empty mid-edit; the submission gate in
// Validate rejects an empty raw.
type ContentLocator struct {
	kind Kind
	mode SourceMode
	raw  string
}

// NewLocator starts a locator in the first mode the format supports.
func NewLocator(kind Kind) *ContentLocator {
	return &ContentLocator{kind: kind, mode: kind.caps().modes[0]}
}

func (l *ContentLocator) Kind() Kind       { return l.kind }
func (l *ContentLocator) Mode() SourceMode { return l.mode }
func (l *ContentLocator) Raw() string      { return l.raw }

// SetMode switches the source mode and discards the raw value, so a stale URL
// is never silently reused as an asset reference or vice versa. Modes the
// format does not offer are ignored.
func (l *ContentLocator) SetMode(m SourceMode) {
	if !l.kind.Supports(m) {
		return
	}
	l.mode = m
	l.raw = ""
}

// SetRaw replaces the raw source unconditionally; validation happens at
// submission time, not here.
func (l *ContentLocator) SetRaw(raw string) {
	l.raw = raw
}
