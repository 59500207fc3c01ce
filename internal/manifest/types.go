package manifest

// Channel names one installer channel in the manifest. Channel names are
// opaque to the loader: unknown channels are kept in the document and are
// simply ignored by the extractors.
type Channel string

const (
	ChannelApt     Channel = "apt"
	ChannelDnf     Channel = "dnf"
	ChannelCommon  Channel = "common" // installed by every system family
	ChannelSnap    Channel = "snap"
	ChannelFlatpak Channel = "flatpak"
	ChannelMise    Channel = "mise"
	ChannelCustom  Channel = "custom"
	ChannelVSCode  Channel = "vscode"
)

// IsSystemFamily reports whether c is one of the system package families.
func (c Channel) IsSystemFamily() bool {
	return c == ChannelApt || c == ChannelDnf
}

// Descriptor is the metadata of one entry. Every field is optional and each
// channel reads only the fields it needs.
type Descriptor struct {
	Version   string
	Backend   string // mise: alternate resolver, e.g. "aqua:junegunn/fzf"
	Installer string // custom: name of the installer routine
	Options   string // snap: extra flags, e.g. "--classic"
	Remote    string // flatpak: source remote
	Tags      Tags
}

// Entry is one installable unit within a channel.
type Entry struct {
	Key        string
	Descriptor Descriptor
}

// ChannelEntries holds the entries of one channel in document order.
type ChannelEntries struct {
	Name    Channel
	Entries []Entry
}

// Section is a per-channel mapping, used for both core and packs.
type Section struct {
	Channels []ChannelEntries
}

// Channel returns the entries of the named channel, or nil.
func (s Section) Channel(name Channel) []Entry {
	for _, c := range s.Channels {
		if c.Name == name {
			return c.Entries
		}
	}
	return nil
}

// Pack is a named, optional bundle of channel entries.
type Pack struct {
	Name        string
	Description string
	Section
}

// Document is a merged manifest.
type Document struct {
	Core  Section
	Packs []Pack
}

// Pack looks up a pack by name.
func (d *Document) Pack(name string) (*Pack, bool) {
	for i := range d.Packs {
		if d.Packs[i].Name == name {
			return &d.Packs[i], true
		}
	}
	return nil, false
}

// PackNames returns pack names in document order.
func (d *Document) PackNames() []string {
	names := make([]string, len(d.Packs))
	for i, p := range d.Packs {
		names[i] = p.Name
	}
	return names
}
