package manifest

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func mustNode(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(src), &n); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	return &n
}

func encode(t *testing.T, n *yaml.Node) string {
	t.Helper()
	out, err := yaml.Marshal(n)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	return string(out)
}

// TestMergeOverlayScalarWins verifies that overlay scalars and lists replace
// base values while maps merge recursively.
func TestMergeOverlayScalarWins(t *testing.T) {
	base := mustNode(t, "a: 1\nb: {x: 1, y: [1, 2]}\nc: keep\n")
	overlay := mustNode(t, "a: 2\nb: {y: [3]}\nd: new\n")

	var got map[string]any
	if err := Merge(base, overlay).Decode(&got); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got["a"] != 2 {
		t.Errorf("a = %v, want 2", got["a"])
	}
	b := got["b"].(map[string]any)
	if b["x"] != 1 {
		t.Errorf("b.x = %v, want 1 (base-only key preserved)", b["x"])
	}
	if y := b["y"].([]any); len(y) != 1 || y[0] != 3 {
		t.Errorf("b.y = %v, want [3] (list replaced)", b["y"])
	}
	if got["c"] != "keep" || got["d"] != "new" {
		t.Errorf("c, d = %v, %v", got["c"], got["d"])
	}
}

// TestMergeKeepsOrder verifies that base keys keep their position and new
// keys are appended.
func TestMergeKeepsOrder(t *testing.T) {
	base := mustNode(t, "z: 1\na: 1\n")
	overlay := mustNode(t, "a: 2\nm: 3\n")

	want := "z: 1\na: 2\nm: 3\n"
	if got := encode(t, Merge(base, overlay)); got != want {
		t.Errorf("Merge() =\n%s\nwant\n%s", got, want)
	}
}

// TestMergeReplacesDescriptorWhole verifies that an overlay entry does not
// inherit fields from the base entry it overrides.
func TestMergeReplacesDescriptorWhole(t *testing.T) {
	base := `
core:
  mise:
    node: {version: "20", tags: ["@optional"]}
packs:
  web:
    mise:
      deno: {version: "1", backend: "aqua:denoland/deno"}
`
	overlay := `
core:
  mise:
    node: {version: "22"}
packs:
  web:
    mise:
      deno: {version: "2"}
`
	doc, err := Parse([]byte(base), []byte(overlay))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	node := doc.Core.Channel(ChannelMise)[0].Descriptor
	if node.Version != "22" || len(node.Tags) != 0 {
		t.Errorf("core node = %+v, want version 22 and no tags", node)
	}
	web, _ := doc.Pack("web")
	deno := web.Channel(ChannelMise)[0].Descriptor
	if deno.Version != "2" || deno.Backend != "" {
		t.Errorf("web deno = %+v, want version 2 and no backend", deno)
	}
}

// TestMergeNullOverlayValue verifies that an explicit null in the overlay
// replaces the base descriptor with an empty one.
func TestMergeNullOverlayValue(t *testing.T) {
	doc, err := Parse([]byte("core: {apt: {curl: {version: '8'}}}"), []byte("core:\n  apt:\n    curl:\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := doc.Core.Channel(ChannelApt)[0].Descriptor; got.Version != "" {
		t.Errorf("curl = %+v, want empty descriptor", got)
	}
}

// TestMergeDoesNotMutateInputs verifies that base and overlay trees are left
// untouched.
func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := mustNode(t, "core: {apt: {curl: {}}}\n")
	overlay := mustNode(t, "core: {apt: {git: {}}}\n")
	beforeBase, beforeOverlay := encode(t, base), encode(t, overlay)

	merged := Merge(base, overlay)
	merged.Content[0].Value = "changed"

	if encode(t, base) != beforeBase {
		t.Error("base was mutated")
	}
	if encode(t, overlay) != beforeOverlay {
		t.Error("overlay was mutated")
	}
}

// TestMergeEmptySides verifies nil and empty documents on either side.
func TestMergeEmptySides(t *testing.T) {
	base := mustNode(t, "a: 1\n")
	empty := mustNode(t, "")

	if got := encode(t, Merge(base, empty)); got != "a: 1\n" {
		t.Errorf("Merge(base, empty) = %q", got)
	}
	if got := encode(t, Merge(empty, base)); got != "a: 1\n" {
		t.Errorf("Merge(empty, base) = %q", got)
	}
	if Merge(nil, nil) != nil {
		t.Error("Merge(nil, nil) should be nil")
	}
}

// TestMergeExpandsAliases verifies that anchors in the base are expanded in
// the merged tree.
func TestMergeExpandsAliases(t *testing.T) {
	base := `
defaults: &d {version: "1"}
core:
  mise:
    a: *d
`
	doc, err := Parse([]byte(base), []byte("core: {mise: {b: {version: '2'}}}"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	mise := doc.Core.Channel(ChannelMise)
	if len(mise) != 2 || mise[0].Descriptor.Version != "1" || mise[1].Descriptor.Version != "2" {
		t.Errorf("mise = %+v", mise)
	}
}

// TestMergeExpandsMergeKeys verifies Merge resolves "<<" on both sides
// instead of merging it as a plain key.
func TestMergeExpandsMergeKeys(t *testing.T) {
	base := mustNode(t, "x: &x\n  a: 1\nm:\n  <<: *x\n  b: 2\n")
	overlay := mustNode(t, "y: &y\n  a: 3\nm:\n  <<: *y\n")
	got := encode(t, Merge(base, overlay))
	if strings.Contains(got, "<<") {
		t.Fatalf("merge key survived:\n%s", got)
	}
	if !strings.Contains(got, "m:\n    a: 3\n    b: 2\n") {
		t.Errorf("Merge() =\n%s", got)
	}
}
