package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// rawDescriptor mirrors the YAML shape of an entry descriptor.
type rawDescriptor struct {
	Version   string   `yaml:"version"`
	Backend   string   `yaml:"backend"`
	Installer string   `yaml:"installer"`
	Options   string   `yaml:"options"`
	Remote    string   `yaml:"remote"`
	Tags      []string `yaml:"tags"`
}

// decodeDocument walks a (merged) node tree into the ordered model.
// Top-level keys other than core and packs are ignored.
func decodeDocument(n *yaml.Node) (*Document, error) {
	doc := &Document{}
	n = root(n)
	if n == nil {
		return doc, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, shapeError(n, "manifest must be a mapping")
	}

	err := eachPair(n, func(key string, v *yaml.Node) error {
		switch key {
		case "core":
			s, err := decodeSection(v, nil)
			if err != nil {
				return fmt.Errorf("core: %w", err)
			}
			doc.Core = s
		case "packs":
			packs, err := decodePacks(v)
			if err != nil {
				return fmt.Errorf("packs: %w", err)
			}
			doc.Packs = packs
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func decodePacks(n *yaml.Node) ([]Pack, error) {
	if n = root(n); n == nil {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, shapeError(n, "packs must be a mapping")
	}
	var packs []Pack
	err := eachPair(n, func(name string, v *yaml.Node) error {
		p := Pack{Name: name}
		var desc string
		s, err := decodeSection(v, &desc)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		p.Section = s
		p.Description = desc
		packs = append(packs, p)
		return nil
	})
	return packs, err
}

// decodeSection reads a channel -> entries mapping. When description is
// non-nil the "description" key is read into it instead of being treated
// as a channel.
func decodeSection(n *yaml.Node, description *string) (Section, error) {
	var s Section
	if n = root(n); n == nil {
		return s, nil
	}
	if n.Kind != yaml.MappingNode {
		return s, shapeError(n, "expected a mapping of channels")
	}
	err := eachPair(n, func(key string, v *yaml.Node) error {
		if description != nil && key == "description" {
			if v = root(v); v != nil {
				if v.Kind != yaml.ScalarNode {
					return shapeError(v, "description must be a string")
				}
				*description = v.Value
			}
			return nil
		}
		entries, err := decodeEntries(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		s.Channels = append(s.Channels, ChannelEntries{Name: Channel(key), Entries: entries})
		return nil
	})
	return s, err
}

func decodeEntries(n *yaml.Node) ([]Entry, error) {
	if n = root(n); n == nil {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, shapeError(n, "expected a mapping of entries")
	}
	var entries []Entry
	err := eachPair(n, func(key string, v *yaml.Node) error {
		d, err := decodeDescriptor(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		entries = append(entries, Entry{Key: key, Descriptor: d})
		return nil
	})
	return entries, err
}

func decodeDescriptor(n *yaml.Node) (Descriptor, error) {
	if n = root(n); n == nil {
		return Descriptor{}, nil
	}
	if n.Kind != yaml.MappingNode {
		return Descriptor{}, shapeError(n, "entry descriptor must be a mapping")
	}
	var raw rawDescriptor
	if err := n.Decode(&raw); err != nil {
		return Descriptor{}, err
	}
	return Descriptor{
		Version:   raw.Version,
		Backend:   raw.Backend,
		Installer: raw.Installer,
		Options:   raw.Options,
		Remote:    raw.Remote,
		Tags:      ParseTags(raw.Tags),
	}, nil
}

// eachPair calls fn for every key/value of a mapping node in order,
// rejecting duplicate keys.
func eachPair(n *yaml.Node, fn func(key string, v *yaml.Node) error) error {
	seen := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := deref(n.Content[i])
		if k.Kind != yaml.ScalarNode {
			return shapeError(k, "mapping keys must be scalars")
		}
		if isMergeKey(k) {
			return shapeError(k, "merge key requires a mapping or a sequence of mappings")
		}
		if seen[k.Value] {
			return shapeError(k, fmt.Sprintf("duplicate key %q", k.Value))
		}
		seen[k.Value] = true
		if err := fn(k.Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func shapeError(n *yaml.Node, msg string) error {
	return fmt.Errorf("line %d: %s", n.Line, msg)
}
