package resolve

import (
	"fmt"

	"github.com/devkit-labs/wsprov/internal/manifest"
)

// PackInfo is one row of the pack listing.
type PackInfo struct {
	Name        string
	Description string
}

// ListPacks returns every pack in document order.
func ListPacks(doc *manifest.Document) []PackInfo {
	if doc == nil {
		return nil
	}
	out := make([]PackInfo, 0, len(doc.Packs))
	for _, p := range doc.Packs {
		out = append(out, PackInfo{Name: p.Name, Description: p.Description})
	}
	return out
}

// PackContents returns the display lines for one pack: mise tools and
// custom installs by key, VS Code extensions when showExtensions is set,
// and a trailing count of the system packages the active family would
// install. Unknown packs yield nothing.
func PackContents(doc *manifest.Document, name string, family manifest.Channel, showExtensions bool) []string {
	if doc == nil {
		return nil
	}
	p, ok := doc.Pack(name)
	if !ok {
		return nil
	}
	entries := appendSection(nil, p.Name, p.Section)

	var lines []string
	for _, ch := range []manifest.Channel{manifest.ChannelMise, manifest.ChannelCustom} {
		for _, e := range entries {
			if e.Channel == ch {
				lines = append(lines, displayLine(e, e.EffectiveKey()))
			}
		}
	}
	if showExtensions {
		for _, e := range entries {
			if e.Channel == manifest.ChannelVSCode {
				lines = append(lines, displayLine(e, e.Key+" (VS Code)"))
			}
		}
	}
	if n := len(SystemPackages(entries, family)); n > 0 {
		lines = append(lines, fmt.Sprintf("+ %d system packages", n))
	}
	return lines
}

func displayLine(e Entry, label string) string {
	if e.Tags.Has(manifest.TagOptional) {
		return label + " (optional)"
	}
	return label
}
