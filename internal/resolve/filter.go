package resolve

import "github.com/devkit-labs/wsprov/internal/manifest"

// Environment carries the host facts the filter depends on.
type Environment struct {
	// WSL is true when running inside Windows Subsystem for Linux.
	WSL bool
}

// Filter drops entries whose tags exclude them from env. Only @skip-wsl
// removes entries; @optional and unknown tags are kept as they are.
// The input is not modified.
func Filter(entries []Entry, env Environment) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if excluded(e, env) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func excluded(e Entry, env Environment) bool {
	for _, tag := range e.Tags {
		switch tag.Kind {
		case manifest.TagSkipWSL:
			if env.WSL {
				return true
			}
		case manifest.TagOptional, manifest.TagUnknown:
		}
	}
	return false
}
