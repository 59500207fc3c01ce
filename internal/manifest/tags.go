package manifest

import "strings"

// TagKind is the closed set of tags the resolver understands.
type TagKind int

const (
	TagUnknown  TagKind = iota // kept verbatim, otherwise inert
	TagSkipWSL                 // "@skip-wsl": drop the entry under WSL
	TagOptional                // "@optional": display hint only
)

// Tag is a parsed entry label. Raw always holds the text from the manifest.
type Tag struct {
	Raw  string
	Kind TagKind
}

// ParseTag classifies a raw label.
func ParseTag(raw string) Tag {
	switch raw {
	case "@skip-wsl":
		return Tag{Raw: raw, Kind: TagSkipWSL}
	case "@optional":
		return Tag{Raw: raw, Kind: TagOptional}
	}
	return Tag{Raw: raw, Kind: TagUnknown}
}

// Tags is an ordered list of labels.
type Tags []Tag

// ParseTags classifies every label in raw, keeping order.
func ParseTags(raw []string) Tags {
	if len(raw) == 0 {
		return nil
	}
	tags := make(Tags, len(raw))
	for i, r := range raw {
		tags[i] = ParseTag(r)
	}
	return tags
}

// Has reports whether any tag is of the given kind.
func (t Tags) Has(kind TagKind) bool {
	for _, tag := range t {
		if tag.Kind == kind {
			return true
		}
	}
	return false
}

// Strings returns the raw labels.
func (t Tags) Strings() []string {
	out := make([]string, len(t))
	for i, tag := range t {
		out[i] = tag.Raw
	}
	return out
}

// Join returns the raw labels joined with sep.
func (t Tags) Join(sep string) string {
	return strings.Join(t.Strings(), sep)
}
