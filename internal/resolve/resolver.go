package resolve

import "github.com/devkit-labs/wsprov/internal/manifest"

// Options selects what a Resolver resolves.
type Options struct {
	// Family is the active system package family. Defaults to apt.
	Family manifest.Channel
	// Packs are the selected pack names, in order.
	Packs []string
	Env   Environment
}

// Resolver owns one resolution: the merged document, the selection and the
// filtered entry list. It holds no global state, so independent Resolvers
// can be used side by side.
type Resolver struct {
	doc      *manifest.Document
	selected []Entry
	filtered []Entry
	opts     Options
}

// New selects and filters doc once for opts.
func New(doc *manifest.Document, opts Options) *Resolver {
	if opts.Family == "" {
		opts.Family = manifest.ChannelApt
	}
	selected := Select(doc, opts.Packs)
	return &Resolver{
		doc:      doc,
		opts:     opts,
		selected: selected,
		filtered: Filter(selected, opts.Env),
	}
}

func (r *Resolver) Document() *manifest.Document { return r.doc }
func (r *Resolver) Family() manifest.Channel     { return r.opts.Family }
func (r *Resolver) Environment() Environment     { return r.opts.Env }

// SelectedPacks returns the pack names as given, unknown ones included.
func (r *Resolver) SelectedPacks() []string {
	return append([]string(nil), r.opts.Packs...)
}

// Entries returns the filtered entry list.
func (r *Resolver) Entries() []Entry {
	return append([]Entry(nil), r.filtered...)
}

func (r *Resolver) SystemPackages() []string {
	return SystemPackages(r.filtered, r.opts.Family)
}

func (r *Resolver) Snaps() []Snap                   { return Snaps(r.filtered) }
func (r *Resolver) Flatpaks() []Flatpak             { return Flatpaks(r.filtered) }
func (r *Resolver) Tools() []Tool                   { return Tools(r.filtered) }
func (r *Resolver) CustomInstalls() []CustomInstall { return CustomInstalls(r.filtered) }
func (r *Resolver) Extensions() []Extension         { return Extensions(r.filtered) }

// Packs lists every pack of the document, selected or not.
func (r *Resolver) Packs() []PackInfo {
	return ListPacks(r.doc)
}

// PackContents describes one pack for the active family.
func (r *Resolver) PackContents(name string, showExtensions bool) []string {
	return PackContents(r.doc, name, r.opts.Family, showExtensions)
}

// ToolVersion returns the declared version of a mise or custom tool,
// matching the entry key or the mise backend. Core is searched first, then
// the selected packs in order; the first match wins. The lookup ignores tag
// filtering. Unknown keys yield "".
func (r *Resolver) ToolVersion(key string) string {
	for _, e := range r.selected {
		if e.Channel != manifest.ChannelMise && e.Channel != manifest.ChannelCustom {
			continue
		}
		if e.Key == key || (e.Backend != "" && e.EffectiveKey() == key) {
			return e.Version
		}
	}
	return ""
}

// Lists holds every channel's work list for one resolution.
type Lists struct {
	SystemPackages []string        `json:"systemPackages"`
	Snaps          []Snap          `json:"snaps"`
	Flatpaks       []Flatpak       `json:"flatpaks"`
	Tools          []Tool          `json:"tools"`
	CustomInstalls []CustomInstall `json:"customInstalls"`
	Extensions     []Extension     `json:"extensions"`
}

// Lists runs every extractor.
func (r *Resolver) Lists() Lists {
	return Lists{
		SystemPackages: r.SystemPackages(),
		Snaps:          r.Snaps(),
		Flatpaks:       r.Flatpaks(),
		Tools:          r.Tools(),
		CustomInstalls: r.CustomInstalls(),
		Extensions:     r.Extensions(),
	}
}
