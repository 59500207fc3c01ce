// Package miseconf renders the resolved mise tools into mise's config.toml.
//
// The file is regenerated wholesale on every run: Render never looks at an
// existing file and Write always replaces it.
package miseconf

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/devkit-labs/wsprov/internal/fsutil"
	"github.com/devkit-labs/wsprov/internal/resolve"
)

const header = "# Generated by wsprov. Changes are overwritten on every run.\n"

// settings is the static [settings] table.
var settings = []struct{ key, value string }{
	{"experimental", "true"},
	{"not_found_auto_install", "false"},
}

// DefaultPassthrough lists the variables forwarded through [env].
var DefaultPassthrough = []string{
	"HTTP_PROXY",
	"HTTPS_PROXY",
	"NO_PROXY",
	"http_proxy",
	"https_proxy",
	"no_proxy",
	"LANG",
	"LC_ALL",
}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Render returns the full file content for tools. Each passthrough variable
// is written as a template that mise resolves from the live environment
// when it activates, so no value is baked into the file. A tool key that
// appears more than once keeps its first version, as TOML forbids
// duplicate keys.
func Render(tools []resolve.Tool, passthrough []string) []byte {
	var b strings.Builder
	b.WriteString(header)

	b.WriteString("\n[settings]\n")
	for _, s := range settings {
		fmt.Fprintf(&b, "%s = %s\n", s.key, s.value)
	}

	b.WriteString("\n[env]\n")
	for _, name := range passthrough {
		tmpl := fmt.Sprintf("{{ get_env(name='%s', default='') }}", name)
		fmt.Fprintf(&b, "%s = %s\n", QuoteKey(name), quote(tmpl))
	}

	b.WriteString("\n[tools]\n")
	seen := make(map[string]bool, len(tools))
	for _, t := range tools {
		if seen[t.Key] {
			continue
		}
		seen[t.Key] = true
		fmt.Fprintf(&b, "%s = %s\n", QuoteKey(t.Key), quote(t.Version))
	}
	return []byte(b.String())
}

// QuoteKey returns key bare when it only contains [A-Za-z0-9_-], and as a
// quoted TOML string otherwise.
func QuoteKey(key string) string {
	if bareKey.MatchString(key) {
		return key
	}
	return quote(key)
}

// quote renders s as a TOML basic string.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Write validates content as TOML and atomically replaces path with it.
func Write(path string, content []byte) error {
	var probe map[string]any
	if err := toml.Unmarshal(content, &probe); err != nil {
		return fmt.Errorf("generated config is not valid TOML: %w", err)
	}
	if err := fsutil.AtomicWrite(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Generate renders tools and writes the result to path.
func Generate(path string, tools []resolve.Tool, passthrough []string) error {
	return Write(path, Render(tools, passthrough))
}

// ParseTools reads the [tools] table back. Tools are sorted by key since
// TOML tables carry no order.
func ParseTools(content []byte) ([]resolve.Tool, error) {
	var doc struct {
		Tools map[string]string `toml:"tools"`
	}
	if err := toml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse mise config: %w", err)
	}
	tools := make([]resolve.Tool, 0, len(doc.Tools))
	for k, v := range doc.Tools {
		tools = append(tools, resolve.Tool{Key: k, Version: v})
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Key < tools[j].Key })
	return tools, nil
}

// ReadTools parses the [tools] table of the file at path. A missing file
// yields no tools.
func ReadTools(path string) ([]resolve.Tool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseTools(data)
}
