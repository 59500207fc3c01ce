package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/devkit-labs/wsprov/internal/manifest"
	"github.com/devkit-labs/wsprov/internal/plan"
	"github.com/devkit-labs/wsprov/internal/resolve"
)

const sampleYAML = `
core:
  apt:
    curl:
  dnf:
    dnf-plugins-core:
  common:
    git:
  snap:
    code: {options: "--classic"}
  flatpak:
    org.gimp.GIMP:
  mise:
    fzf: {backend: "aqua:junegunn/fzf", version: "v0.67.0"}
  custom:
    sdkman: {installer: "install-sdkman", version: "5.18", tags: ["@optional", "gui"]}
  vscode:
    golang.go: {version: "0.46.0"}
`

func sampleResolver(t *testing.T) *resolve.Resolver {
	t.Helper()
	doc, err := manifest.Parse([]byte(sampleYAML), nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return resolve.New(doc, resolve.Options{Family: manifest.ChannelApt})
}

// TestWriteChannel verifies the tab-separated rows per channel.
func TestWriteChannel(t *testing.T) {
	r := sampleResolver(t)
	cases := map[string]string{
		"system":  "curl\ngit\n",
		"apt":     "curl\ngit\n",
		"dnf":     "dnf-plugins-core\ngit\n",
		"snap":    "code\t--classic\n",
		"flatpak": "org.gimp.GIMP\tflathub\n",
		"mise":    "aqua:junegunn/fzf\tv0.67.0\n",
		"custom":  "sdkman\t5.18\tinstall-sdkman\t@optional,gui\n",
		"vscode":  "golang.go\t0.46.0\t\n",
	}
	for channel, want := range cases {
		var buf bytes.Buffer
		if err := writeChannel(&buf, r, channel); err != nil {
			t.Fatalf("writeChannel(%s) error = %v", channel, err)
		}
		if got := buf.String(); got != want {
			t.Errorf("writeChannel(%s) = %q, want %q", channel, got, want)
		}
	}
}

// TestWriteChannelUnknown verifies that an unknown channel name is an error.
func TestWriteChannelUnknown(t *testing.T) {
	var buf bytes.Buffer
	if err := writeChannel(&buf, sampleResolver(t), "brew"); err == nil {
		t.Error("writeChannel(brew) error = nil, want error")
	}
}

// TestPrintDiffMarksKinds verifies that each change kind gets its marker.
func TestPrintDiffMarksKinds(t *testing.T) {
	var buf bytes.Buffer
	printDiff(&buf, &plan.Diff{
		Added:   []string{"apt:git"},
		Removed: []string{"snap:code"},
		Updated: []plan.VersionChange{
			{Item: "mise:node", From: "20", To: "22", Kind: plan.Upgrade},
			{Item: "mise:go", From: "1.22", To: "1.21", Kind: plan.Downgrade},
		},
	})
	out := buf.String()
	for _, want := range []string{"apt:git", "snap:code", "mise:node", "↑", "↓", "20 → 22"} {
		if !strings.Contains(out, want) {
			t.Errorf("printDiff output missing %q:\n%s", want, out)
		}
	}
}

// TestConfirm verifies the default-yes prompt.
func TestConfirm(t *testing.T) {
	for in, want := range map[string]bool{"\n": true, "y\n": true, "YES\n": true, "n\n": false, "nope\n": false} {
		var out bytes.Buffer
		if got := confirm(&out, strings.NewReader(in), "? "); got != want {
			t.Errorf("confirm(%q) = %v, want %v", in, got, want)
		}
	}
}
