package resolve

import "github.com/devkit-labs/wsprov/internal/manifest"

// DefaultFlatpakRemote is used for flatpak entries without a remote.
const DefaultFlatpakRemote = "flathub"

// tagSep joins raw tags in the custom and vscode tuples.
const tagSep = ","

// Snap is one snap package.
type Snap struct {
	Name    string `json:"name"`
	Options string `json:"options,omitempty"`
}

// Flatpak is one flatpak application.
type Flatpak struct {
	AppID  string `json:"appId"`
	Remote string `json:"remote"`
}

// Tool is one mise tool. Key is the backend when the entry declares one.
type Tool struct {
	Key     string `json:"key"`
	Version string `json:"version"`
}

// CustomInstall is one tool installed by a named installer routine.
type CustomInstall struct {
	Key       string `json:"key"`
	Version   string `json:"version"`
	Installer string `json:"installer"`
	Tags      string `json:"tags,omitempty"`
	Optional  bool   `json:"optional,omitempty"`
}

// Extension is one VS Code extension.
type Extension struct {
	ID       string `json:"id"`
	Version  string `json:"version"`
	Tags     string `json:"tags,omitempty"`
	Optional bool   `json:"optional,omitempty"`
}

// SystemPackages returns the package names for the given system family.
// Entries of the other family are skipped; common entries belong to every
// family.
func SystemPackages(entries []Entry, family manifest.Channel) []string {
	var out []string
	for _, e := range entries {
		if e.Channel == family || e.Channel == manifest.ChannelCommon {
			out = append(out, e.Key)
		}
	}
	return out
}

// Snaps returns the snap channel.
func Snaps(entries []Entry) []Snap {
	var out []Snap
	for _, e := range entries {
		if e.Channel == manifest.ChannelSnap {
			out = append(out, Snap{Name: e.Key, Options: e.Options})
		}
	}
	return out
}

// Flatpaks returns the flatpak channel.
func Flatpaks(entries []Entry) []Flatpak {
	var out []Flatpak
	for _, e := range entries {
		if e.Channel != manifest.ChannelFlatpak {
			continue
		}
		remote := e.Remote
		if remote == "" {
			remote = DefaultFlatpakRemote
		}
		out = append(out, Flatpak{AppID: e.Key, Remote: remote})
	}
	return out
}

// Tools returns the mise channel.
func Tools(entries []Entry) []Tool {
	var out []Tool
	for _, e := range entries {
		if e.Channel == manifest.ChannelMise {
			out = append(out, Tool{Key: e.EffectiveKey(), Version: e.Version})
		}
	}
	return out
}

// CustomInstalls returns the custom installer channel.
func CustomInstalls(entries []Entry) []CustomInstall {
	var out []CustomInstall
	for _, e := range entries {
		if e.Channel != manifest.ChannelCustom {
			continue
		}
		out = append(out, CustomInstall{
			Key:       e.Key,
			Version:   e.Version,
			Installer: e.Installer,
			Tags:      e.Tags.Join(tagSep),
			Optional:  e.Tags.Has(manifest.TagOptional),
		})
	}
	return out
}

// Extensions returns the vscode channel.
func Extensions(entries []Entry) []Extension {
	var out []Extension
	for _, e := range entries {
		if e.Channel != manifest.ChannelVSCode {
			continue
		}
		out = append(out, Extension{
			ID:       e.Key,
			Version:  e.Version,
			Tags:     e.Tags.Join(tagSep),
			Optional: e.Tags.Has(manifest.TagOptional),
		})
	}
	return out
}

// EffectiveKey is the backend for mise entries that declare one, otherwise
// the entry key.
func (e Entry) EffectiveKey() string {
	if e.Channel == manifest.ChannelMise && e.Backend != "" {
		return e.Backend
	}
	return e.Key
}
