// Package manifest loads the package manifest, merges the optional
// organization overlay on top of it and decodes the result into an ordered,
// typed document.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	// ErrManifestNotFound is returned when the base manifest does not exist.
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrManifestParse is returned when a manifest cannot be read or does not
	// have the manifest shape.
	ErrManifestParse = errors.New("invalid manifest")
)

// LoadOptions controls where the manifests are loaded from.
type LoadOptions struct {
	// BasePath is required and must exist.
	BasePath string
	// OverlayPath is optional. An empty path or a missing file means no
	// overlay; an existing file that fails to parse is always fatal.
	OverlayPath string
}

// Load reads the base manifest and the optional overlay and returns the
// merged document.
func Load(opts LoadOptions) (*Document, error) {
	base, err := readNode(opts.BasePath, true)
	if err != nil {
		return nil, err
	}
	overlay, err := readNode(opts.OverlayPath, false)
	if err != nil {
		return nil, err
	}
	return build(base, opts.BasePath, overlay, opts.OverlayPath)
}

// Parse merges overlay onto base from in-memory YAML. A nil overlay means
// no overlay.
func Parse(base, overlay []byte) (*Document, error) {
	baseNode, err := parseNode(base, "<base>")
	if err != nil {
		return nil, err
	}
	var overlayNode *yaml.Node
	if overlay != nil {
		if overlayNode, err = parseNode(overlay, "<overlay>"); err != nil {
			return nil, err
		}
	}
	return build(baseNode, "<base>", overlayNode, "<overlay>")
}

func build(base *yaml.Node, basePath string, overlay *yaml.Node, overlayPath string) (*Document, error) {
	// Each side is validated on its own so errors name the offending file.
	if _, err := decodeDocument(base); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestParse, basePath, err)
	}
	if overlay == nil {
		return decodeDocument(base)
	}
	if _, err := decodeDocument(overlay); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestParse, overlayPath, err)
	}
	doc, err := decodeDocument(Merge(base, overlay))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestParse, overlayPath, err)
	}
	return doc, nil
}

// readNode reads and parses path. A missing optional file yields nil.
func readNode(path string, required bool) (*yaml.Node, error) {
	if path == "" {
		if required {
			return nil, fmt.Errorf("%w: no path given", ErrManifestNotFound)
		}
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if required {
				return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrManifestParse, path, err)
	}
	return parseNode(data, path)
}

func parseNode(data []byte, path string) (*yaml.Node, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestParse, path, err)
	}
	return clone(&n), nil
}

// Loader memoizes one merge for the lifetime of a resolution run. Every
// caller holding the same Loader observes the same document; separate
// Loaders never share state.
type Loader struct {
	doc  *Document
	err  error
	opts LoadOptions
	once sync.Once
}

// NewLoader returns a Loader for opts. Nothing is read until Document is
// first called.
func NewLoader(opts LoadOptions) *Loader {
	return &Loader{opts: opts}
}

// Document returns the merged document, loading it on first use.
func (l *Loader) Document() (*Document, error) {
	l.once.Do(func() {
		l.doc, l.err = Load(l.opts)
	})
	return l.doc, l.err
}

// Options returns the paths this Loader reads.
func (l *Loader) Options() LoadOptions {
	return l.opts
}
