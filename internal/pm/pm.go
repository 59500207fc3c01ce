// Package pm identifies the host's system package manager family and the
// WSL predicate used by the tag filter. Detect() picks the family for the
// current machine.
package pm

import (
	"os"
	"os/exec"
	"strings"

	"github.com/devkit-labs/wsprov/internal/manifest"
)

// PackageManager is one system package family. Implementations only
// describe commands; running them is left to the installer scripts.
type PackageManager interface {
	// Name returns the executable name, e.g. "apt-get".
	Name() string
	// Channel returns the manifest channel this family installs.
	Channel() manifest.Channel
	// InstallCommand returns the argv that would install pkgs.
	InstallCommand(pkgs []string) []string
}

// Apt is the Debian/Ubuntu family.
type Apt struct{}

func (Apt) Name() string              { return "apt-get" }
func (Apt) Channel() manifest.Channel { return manifest.ChannelApt }

func (Apt) InstallCommand(pkgs []string) []string {
	return append([]string{"sudo", "apt-get", "install", "-y", "--no-install-recommends"}, pkgs...)
}

// Dnf is the Fedora/RHEL family.
type Dnf struct{}

func (Dnf) Name() string              { return "dnf" }
func (Dnf) Channel() manifest.Channel { return manifest.ChannelDnf }

func (Dnf) InstallCommand(pkgs []string) []string {
	return append([]string{"sudo", "dnf", "install", "-y"}, pkgs...)
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Detect returns apt if apt-get is available, dnf if dnf is, and apt
// otherwise.
func Detect() PackageManager {
	if _, err := lookPath("apt-get"); err == nil {
		return Apt{}
	}
	if _, err := lookPath("dnf"); err == nil {
		return Dnf{}
	}
	return Apt{}
}

// ForChannel returns the family for a channel name, or false when the name
// is not a system family.
func ForChannel(ch manifest.Channel) (PackageManager, bool) {
	switch ch {
	case manifest.ChannelApt:
		return Apt{}, true
	case manifest.ChannelDnf:
		return Dnf{}, true
	}
	return nil, false
}

// osReleasePath is swapped in tests.
var osReleasePath = "/proc/sys/kernel/osrelease"

// IsWSL reports whether the process runs inside Windows Subsystem for Linux.
func IsWSL() bool {
	if os.Getenv("WSL_DISTRO_NAME") != "" || os.Getenv("WSL_INTEROP") != "" {
		return true
	}
	data, err := os.ReadFile(osReleasePath)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), "microsoft")
}
