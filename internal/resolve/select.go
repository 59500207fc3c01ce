// Package resolve turns a merged manifest and a pack selection into the
// per-channel work lists consumed by the installer scripts.
//
// The pipeline is Select → Filter → extractors. Every stage is a pure
// function over its input; Resolver runs Select and Filter once for a
// selection and shares the result across extractors.
package resolve

import "github.com/devkit-labs/wsprov/internal/manifest"

// OriginCore is the origin of entries declared under core.
const OriginCore = "core"

// Entry is a manifest entry annotated with where it came from. Origin is
// used for display grouping only and never affects filtering.
type Entry struct {
	Origin  string
	Channel manifest.Channel
	Key     string
	manifest.Descriptor
}

// Select flattens core and the selected packs into one list. Core comes
// first, then packs in selection order. Unknown pack names are ignored and
// repeated names count once.
func Select(doc *manifest.Document, packs []string) []Entry {
	if doc == nil {
		return nil
	}
	out := appendSection(nil, OriginCore, doc.Core)
	seen := make(map[string]bool, len(packs))
	for _, name := range packs {
		if seen[name] {
			continue
		}
		seen[name] = true
		if p, ok := doc.Pack(name); ok {
			out = appendSection(out, p.Name, p.Section)
		}
	}
	return out
}

func appendSection(out []Entry, origin string, s manifest.Section) []Entry {
	for _, ch := range s.Channels {
		for _, e := range ch.Entries {
			out = append(out, Entry{
				Origin:     origin,
				Channel:    ch.Name,
				Key:        e.Key,
				Descriptor: e.Descriptor,
			})
		}
	}
	return out
}
