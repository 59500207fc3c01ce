// Package config manages the two files wsprov persists between runs: the
// user preferences (preferences.yaml) and the snapshot of the last
// resolution written to <stateDir>/state.json. The snapshot schema is
// versioned to support forward-compatible migrations.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/devkit-labs/wsprov/internal/fsutil"
	"github.com/devkit-labs/wsprov/internal/resolve"
)

const (
	stateVersion = 1
	stateFile    = "state.json"
)

// ErrNoState is returned by ReadState when no snapshot has been written yet.
var ErrNoState = errors.New("no resolution state")

// State is the persistent snapshot written after every applied plan.
// Version field enables future migrations.
type State struct {
	ResolvedAt time.Time     `json:"resolvedAt"`
	Manifest   string        `json:"manifest"`
	Overlay    string        `json:"overlay,omitempty"`
	MiseConfig string        `json:"miseConfig"`
	Family     string        `json:"family"`
	Packs      []string      `json:"packs"`
	Lists      resolve.Lists `json:"lists"`
	WSL        bool          `json:"wsl"`
	Version    int           `json:"version"`
}

// StatePath returns the path to the snapshot for the given state directory.
func StatePath(stateDir string) string {
	return filepath.Join(stateDir, stateFile)
}

// WriteState persists st to <stateDir>/state.json.
func WriteState(stateDir string, st *State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := fsutil.AtomicWrite(StatePath(stateDir), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// ReadState loads and parses <stateDir>/state.json.
func ReadState(stateDir string) (*State, error) {
	path := StatePath(stateDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s — run 'wsprov plan' first", ErrNoState, path)
		}
		return nil, fmt.Errorf("read state: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	if st.Version > stateVersion {
		return nil, fmt.Errorf("state %s has version %d, this wsprov understands up to %d", path, st.Version, stateVersion)
	}
	return &st, nil
}

// NewState creates a fresh snapshot of r ready to be written.
func NewState(r *resolve.Resolver, prefs *Preferences) *State {
	return &State{
		Version:    stateVersion,
		ResolvedAt: time.Now().UTC(),
		Manifest:   absPath(prefs.Manifest),
		Overlay:    absPath(prefs.Overlay),
		MiseConfig: absPath(prefs.MiseConfig),
		Family:     string(r.Family()),
		WSL:        r.Environment().WSL,
		Packs:      r.SelectedPacks(),
		Lists:      r.Lists(),
	}
}

func absPath(p string) string {
	if p == "" {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
