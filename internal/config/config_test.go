package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devkit-labs/wsprov/internal/manifest"
	"github.com/devkit-labs/wsprov/internal/resolve"
)

const sampleYAML = `
core:
  apt:
    curl:
  mise:
    fzf: {backend: "aqua:junegunn/fzf", version: "v0.67.0"}
packs:
  java:
    description: JDK
    mise:
      maven: {version: "3.9.9"}
`

func sampleResolver(t *testing.T) *resolve.Resolver {
	t.Helper()
	doc, err := manifest.Parse([]byte(sampleYAML), nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return resolve.New(doc, resolve.Options{Packs: []string{"java"}})
}

// TestNewState verifies that NewState populates all required fields.
func TestNewState(t *testing.T) {
	prefs := DefaultPreferences()
	st := NewState(sampleResolver(t), &prefs)

	if st.Version != stateVersion {
		t.Errorf("Version = %d, want %d", st.Version, stateVersion)
	}
	if st.Family != "apt" {
		t.Errorf("Family = %q, want apt", st.Family)
	}
	if st.ResolvedAt.IsZero() {
		t.Error("ResolvedAt is zero")
	}
	if len(st.Packs) != 1 || st.Packs[0] != "java" {
		t.Errorf("Packs = %v, want [java]", st.Packs)
	}
	if len(st.Lists.Tools) != 2 {
		t.Errorf("Tools = %v, want 2 entries", st.Lists.Tools)
	}
	if !filepath.IsAbs(st.Manifest) {
		t.Errorf("Manifest = %q, want absolute path", st.Manifest)
	}
	if st.Overlay != "" {
		t.Errorf("Overlay = %q, want empty", st.Overlay)
	}
}

// TestWriteThenRead verifies round-trip write → read produces identical state.
func TestWriteThenRead(t *testing.T) {
	dir := t.TempDir()
	prefs := DefaultPreferences()
	want := NewState(sampleResolver(t), &prefs)
	want.ResolvedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := WriteState(dir, want); err != nil {
		t.Fatalf("WriteState() error = %v", err)
	}
	got, err := ReadState(dir)
	if err != nil {
		t.Fatalf("ReadState() error = %v", err)
	}

	if !got.ResolvedAt.Equal(want.ResolvedAt) {
		t.Errorf("ResolvedAt: got %v, want %v", got.ResolvedAt, want.ResolvedAt)
	}
	if got.Family != want.Family || got.WSL != want.WSL {
		t.Errorf("Family/WSL: got %q/%v, want %q/%v", got.Family, got.WSL, want.Family, want.WSL)
	}
	if len(got.Lists.Tools) != len(want.Lists.Tools) {
		t.Fatalf("Tools len: got %d, want %d", len(got.Lists.Tools), len(want.Lists.Tools))
	}
	for i := range want.Lists.Tools {
		if got.Lists.Tools[i] != want.Lists.Tools[i] {
			t.Errorf("Tools[%d]: got %v, want %v", i, got.Lists.Tools[i], want.Lists.Tools[i])
		}
	}
	if len(got.Lists.SystemPackages) != 1 || got.Lists.SystemPackages[0] != "curl" {
		t.Errorf("SystemPackages = %v, want [curl]", got.Lists.SystemPackages)
	}
}

// TestReadMissing verifies that a missing snapshot wraps ErrNoState.
func TestReadMissing(t *testing.T) {
	_, err := ReadState(t.TempDir())
	if !errors.Is(err, ErrNoState) {
		t.Errorf("ReadState() error = %v, want ErrNoState", err)
	}
}

// TestReadNewerVersion verifies that a snapshot from a newer release is refused.
func TestReadNewerVersion(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(StatePath(dir), []byte(`{"version": 99}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadState(dir); err == nil {
		t.Error("ReadState() error = nil, want version error")
	}
}

// TestReadCorrupt verifies that malformed JSON is reported.
func TestReadCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(StatePath(dir), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadState(dir)
	if err == nil || errors.Is(err, ErrNoState) {
		t.Errorf("ReadState() error = %v, want parse error", err)
	}
}

// TestStatePath verifies the expected snapshot file path.
func TestStatePath(t *testing.T) {
	got := StatePath("/state")
	want := filepath.Join("/state", stateFile)
	if got != want {
		t.Errorf("StatePath = %q, want %q", got, want)
	}
}

// TestWriteCreatesDirectory verifies that WriteState creates the state dir.
func TestWriteCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	prefs := DefaultPreferences()
	if err := WriteState(dir, NewState(sampleResolver(t), &prefs)); err != nil {
		t.Fatalf("WriteState() error = %v", err)
	}
	if _, err := os.Stat(StatePath(dir)); err != nil {
		t.Errorf("state file not created: %v", err)
	}
}
