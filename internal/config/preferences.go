package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/devkit-labs/wsprov/internal/manifest"
)

const (
	// AppName is the application name.
	AppName = "wsprov"
	// PreferencesFileName is the default preferences file name.
	PreferencesFileName = "preferences.yaml"
	// EnvPrefix prefixes environment overrides, e.g. WSPROV_PACKS.
	EnvPrefix = "WSPROV"
)

// WSL modes accepted by the wsl preference.
const (
	WSLAuto = "auto"
	WSLOn   = "true"
	WSLOff  = "false"
)

// Preferences are the user's choices: which manifests to read, which packs
// to resolve and where the outputs go.
type Preferences struct {
	Manifest       string   `mapstructure:"manifest"`
	Overlay        string   `mapstructure:"overlay"`
	MiseConfig     string   `mapstructure:"mise_config"`
	StateDir       string   `mapstructure:"state_dir"`
	Family         string   `mapstructure:"family"`
	WSL            string   `mapstructure:"wsl"`
	Packs          []string `mapstructure:"packs"`
	ShowExtensions bool     `mapstructure:"show_extensions"`
}

// DefaultPreferences returns the built-in defaults.
func DefaultPreferences() Preferences {
	home, _ := os.UserHomeDir()
	return Preferences{
		Manifest:       "packages.yaml",
		MiseConfig:     filepath.Join(home, ".config", "mise", "config.toml"),
		StateDir:       defaultStateDir(home),
		WSL:            WSLAuto,
		Packs:          []string{},
		ShowExtensions: true,
	}
}

func defaultStateDir(home string) string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	return filepath.Join(home, ".local", "state", AppName)
}

// ConfigDir returns $XDG_CONFIG_HOME/wsprov, defaulting to ~/.config/wsprov.
func ConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultPreferencesPath returns the preferences file in ConfigDir.
func DefaultPreferencesPath() string {
	dir, err := ConfigDir()
	if err != nil {
		return PreferencesFileName
	}
	return filepath.Join(dir, PreferencesFileName)
}

// LoadPreferences reads the preferences file at path on top of the
// defaults, then applies WSPROV_* environment overrides. A missing file is
// not an error; a malformed one is.
func LoadPreferences(path string) (*Preferences, error) {
	v := viper.New()

	defaults := DefaultPreferences()
	v.SetDefault("manifest", defaults.Manifest)
	v.SetDefault("overlay", defaults.Overlay)
	v.SetDefault("mise_config", defaults.MiseConfig)
	v.SetDefault("state_dir", defaults.StateDir)
	v.SetDefault("family", defaults.Family)
	v.SetDefault("wsl", defaults.WSL)
	v.SetDefault("packs", defaults.Packs)
	v.SetDefault("show_extensions", defaults.ShowExtensions)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read preferences %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat preferences %s: %w", path, err)
		}
	}

	var prefs Preferences
	if err := v.Unmarshal(&prefs); err != nil {
		return nil, fmt.Errorf("parse preferences: %w", err)
	}
	prefs.normalize()
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (p *Preferences) normalize() {
	p.Manifest = expandHome(p.Manifest)
	p.Overlay = expandHome(p.Overlay)
	p.MiseConfig = expandHome(p.MiseConfig)
	p.StateDir = expandHome(p.StateDir)
	p.Family = strings.ToLower(strings.TrimSpace(p.Family))
	p.WSL = strings.ToLower(strings.TrimSpace(p.WSL))
	if p.WSL == "" {
		p.WSL = WSLAuto
	}
	packs := p.Packs[:0]
	for _, name := range p.Packs {
		if name = strings.TrimSpace(name); name != "" {
			packs = append(packs, name)
		}
	}
	p.Packs = packs
}

// Validate checks the enumerated fields.
func (p *Preferences) Validate() error {
	if p.Family != "" && !manifest.Channel(p.Family).IsSystemFamily() {
		return fmt.Errorf("family %q is not a system package family (want apt or dnf)", p.Family)
	}
	if _, err := parseWSL(p.WSL); err != nil {
		return err
	}
	return nil
}

// ResolveWSL returns the WSL flag, calling detect only in auto mode.
func (p *Preferences) ResolveWSL(detect func() bool) (bool, error) {
	forced, err := parseWSL(p.WSL)
	if err != nil {
		return false, err
	}
	if forced == nil {
		return detect(), nil
	}
	return *forced, nil
}

func parseWSL(mode string) (*bool, error) {
	if mode == "" || mode == WSLAuto {
		return nil, nil
	}
	b, err := strconv.ParseBool(mode)
	if err != nil {
		return nil, fmt.Errorf("wsl must be auto, true or false, got %q", mode)
	}
	return &b, nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
