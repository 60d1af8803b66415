package layer

import (
	"slices"
	"strings"
)

// NameList is the ordered-set editor behind the WMS and vector-tile sub-layer
// pickers. Names grow only on explicit commit (blur or the add action), never
// per keystroke; duplicates and blanks are dropped without error.
type NameList struct {
	names   []string
	pending string
}

func (l *NameList) SetPending(s string) {
	l.pending = s
}

func (l *NameList) Pending() string {
	return l.pending
}

// Commit appends the trimmed pending input unless it is blank or already
// present, then clears the pending input either way.
func (l *NameList) Commit() {
	name := strings.TrimSpace(l.pending)
	l.pending = ""
	if name == "" || slices.Contains(l.names, name) {
		return
	}
	l.names = append(l.names, name)
}

// Add appends a committed name directly, with the same dedupe rule. Used when
// the editor submits an already-built list.
func (l *NameList) Add(name string) {
	l.SetPending(name)
	l.Commit()
}

// Remove deletes the entry at index; out-of-range indexes are ignored.
func (l *NameList) Remove(index int) {
	if index < 0 || index >= len(l.names) {
		return
	}
	l.names = slices.Delete(l.names, index, index+1)
}

func (l *NameList) Len() int {
	return len(l.names)
}

// Names returns a copy of the committed names in insertion order.
func (l *NameList) Names() []string {
	return slices.Clone(l.names)
}

// Values returns the wire form of the list, carrying the singular/plural
// marshalling rule the layer service expects.
func (l *NameList) Values() LayerNames {
	if l.names == nil {
		return LayerNames{}
	}
	return LayerNames(slices.Clone(l.names))
}
