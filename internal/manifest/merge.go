package manifest

import "gopkg.in/yaml.v3"

// Merge deep-merges overlay onto base and returns a new tree; neither input
// is modified.
//
// Mappings merge key by key: when both sides hold a mapping the merge
// recurses, otherwise the overlay value replaces the base value outright.
// Keys only in base keep their position, keys only in overlay are appended
// in overlay order. Entry descriptors (core/<channel>/<key> and
// packs/<pack>/<channel>/<key>) are always replaced whole, so an overlay
// entry never inherits fields from the base entry it overrides.
func Merge(base, overlay *yaml.Node) *yaml.Node {
	base, overlay = root(clone(base)), root(clone(overlay))
	switch {
	case base == nil && overlay == nil:
		return nil
	case overlay == nil:
		return clone(base)
	case base == nil:
		return clone(overlay)
	}
	return mergeAt(nil, base, overlay)
}

func mergeAt(path []string, base, overlay *yaml.Node) *yaml.Node {
	base, overlay = deref(base), deref(overlay)
	if isDescriptorPath(path) || base.Kind != yaml.MappingNode || overlay.Kind != yaml.MappingNode {
		return clone(overlay)
	}

	out := &yaml.Node{
		Kind:   yaml.MappingNode,
		Tag:    base.Tag,
		Style:  base.Style,
		Line:   base.Line,
		Column: base.Column,
	}
	// key -> index of the value node in out.Content
	index := make(map[string]int, len(base.Content)/2)
	for i := 0; i+1 < len(base.Content); i += 2 {
		k := base.Content[i]
		out.Content = append(out.Content, clone(k), clone(base.Content[i+1]))
		index[k.Value] = len(out.Content) - 1
	}
	for i := 0; i+1 < len(overlay.Content); i += 2 {
		k, v := overlay.Content[i], overlay.Content[i+1]
		if pos, ok := index[k.Value]; ok {
			out.Content[pos] = mergeAt(append(path[:len(path):len(path)], k.Value), out.Content[pos], v)
			continue
		}
		out.Content = append(out.Content, clone(k), clone(v))
		index[k.Value] = len(out.Content) - 1
	}
	return out
}

func isDescriptorPath(path []string) bool {
	switch {
	case len(path) == 3 && path[0] == "core":
		return true
	case len(path) == 4 && path[0] == "packs":
		return true
	}
	return false
}

// root unwraps a document node; empty documents yield nil.
func root(n *yaml.Node) *yaml.Node {
	if n == nil || n.Kind == 0 {
		return nil
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return root(n.Content[0])
	}
	n = deref(n)
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil
	}
	return n
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// clone deep-copies n, expanding aliases and merge keys ("<<") so the copy
// shares nothing with n and every mapping holds only explicit keys.
func clone(n *yaml.Node) *yaml.Node {
	n = deref(n)
	if n == nil {
		return nil
	}
	c := *n
	c.Anchor = ""
	c.Alias = nil
	if n.Kind == yaml.MappingNode {
		c.Content = expandMapping(n)
		return &c
	}
	if len(n.Content) > 0 {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = clone(child)
		}
	}
	return &c
}

// expandMapping returns the cloned pairs of mapping n with merge keys
// resolved in place. Explicit keys win over merged ones wherever they
// appear, and among merged mappings the first one listed wins. A merge
// key whose value is not a mapping or a sequence of mappings is kept
// verbatim so decoding can report it.
func expandMapping(n *yaml.Node) []*yaml.Node {
	explicit := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := deref(n.Content[i]); !isMergeKey(k) {
			explicit[k.Value] = true
		}
	}

	out := make([]*yaml.Node, 0, len(n.Content))
	present := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := deref(n.Content[i]), n.Content[i+1]
		if !isMergeKey(k) {
			out = append(out, clone(k), clone(v))
			present[k.Value] = true
			continue
		}
		sources, ok := mergeSources(v)
		if !ok {
			out = append(out, clone(k), clone(v))
			continue
		}
		for _, src := range sources {
			for j := 0; j+1 < len(src.Content); j += 2 {
				key := src.Content[j].Value
				if explicit[key] || present[key] {
					continue
				}
				out = append(out, src.Content[j], src.Content[j+1])
				present[key] = true
			}
		}
	}
	return out
}

// mergeSources returns the expanded mappings a merge key refers to.
func mergeSources(v *yaml.Node) ([]*yaml.Node, bool) {
	v = deref(v)
	if v == nil {
		return nil, false
	}
	items := []*yaml.Node{v}
	if v.Kind == yaml.SequenceNode {
		items = v.Content
	}
	sources := make([]*yaml.Node, 0, len(items))
	for _, item := range items {
		m := clone(item)
		if m == nil || m.Kind != yaml.MappingNode {
			return nil, false
		}
		sources = append(sources, m)
	}
	return sources, true
}

func isMergeKey(k *yaml.Node) bool {
	return k != nil && k.Kind == yaml.ScalarNode && k.Value == "<<" &&
		(k.Tag == "!!merge" || k.Tag == "")
}
