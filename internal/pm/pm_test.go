package pm

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/devkit-labs/wsprov/internal/manifest"
)

// fakeLookPath makes only the named executables resolvable.
func fakeLookPath(t *testing.T, available ...string) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

// TestDetectPrefersApt verifies apt wins when both are present.
func TestDetectPrefersApt(t *testing.T) {
	fakeLookPath(t, "apt-get", "dnf")
	if got := Detect().Channel(); got != manifest.ChannelApt {
		t.Errorf("Detect() = %q, want apt", got)
	}
}

// TestDetectDnf verifies dnf is picked when apt-get is missing.
func TestDetectDnf(t *testing.T) {
	fakeLookPath(t, "dnf")
	if got := Detect().Channel(); got != manifest.ChannelDnf {
		t.Errorf("Detect() = %q, want dnf", got)
	}
}

// TestDetectDefaultsToApt verifies the fallback when neither is present.
func TestDetectDefaultsToApt(t *testing.T) {
	fakeLookPath(t)
	if got := Detect().Name(); got != "apt-get" {
		t.Errorf("Detect().Name() = %q, want apt-get", got)
	}
}

// TestForChannel verifies channel lookup for system and non-system channels.
func TestForChannel(t *testing.T) {
	if m, ok := ForChannel(manifest.ChannelDnf); !ok || m.Name() != "dnf" {
		t.Errorf("ForChannel(dnf) = %v, %v", m, ok)
	}
	if _, ok := ForChannel(manifest.ChannelSnap); ok {
		t.Error("ForChannel(snap) should not be a system family")
	}
}

// TestInstallCommand verifies the previewed argv.
func TestInstallCommand(t *testing.T) {
	got := Dnf{}.InstallCommand([]string{"gcc", "git"})
	want := []string{"sudo", "dnf", "install", "-y", "gcc", "git"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InstallCommand() = %v, want %v", got, want)
	}
}

// TestIsWSL verifies the env and kernel release checks.
func TestIsWSL(t *testing.T) {
	t.Setenv("WSL_DISTRO_NAME", "")
	t.Setenv("WSL_INTEROP", "")

	dir := t.TempDir()
	release := filepath.Join(dir, "osrelease")
	orig := osReleasePath
	t.Cleanup(func() { osReleasePath = orig })
	osReleasePath = release

	if err := os.WriteFile(release, []byte("6.8.0-45-generic\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if IsWSL() {
		t.Error("IsWSL() = true for a native kernel")
	}

	if err := os.WriteFile(release, []byte("5.15.153.1-microsoft-standard-WSL2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !IsWSL() {
		t.Error("IsWSL() = false for a WSL kernel")
	}

	osReleasePath = filepath.Join(dir, "missing")
	t.Setenv("WSL_DISTRO_NAME", "Ubuntu")
	if !IsWSL() {
		t.Error("IsWSL() = false with WSL_DISTRO_NAME set")
	}
}
