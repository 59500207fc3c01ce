// Package plan orchestrates one wsprov run: it turns a Resolver into a Plan,
// writes the mise configuration, persists the resolution snapshot and
// compares the current plan against the previous one.
package plan

import (
	"fmt"
	"time"

	"github.com/devkit-labs/wsprov/internal/config"
	"github.com/devkit-labs/wsprov/internal/logger"
	"github.com/devkit-labs/wsprov/internal/miseconf"
	"github.com/devkit-labs/wsprov/internal/resolve"
)

// Plan is everything the external installers need for one host.
type Plan struct {
	Packs  []string `json:"packs"`
	Family string   `json:"family"`
	WSL    bool     `json:"wsl"`
	resolve.Lists
}

// Build extracts every work list from r.
func Build(r *resolve.Resolver) *Plan {
	return &Plan{
		Packs:  r.SelectedPacks(),
		Family: string(r.Family()),
		WSL:    r.Environment().WSL,
		Lists:  r.Lists(),
	}
}

// FromState rebuilds the plan recorded in a snapshot.
func FromState(st *config.State) *Plan {
	return &Plan{
		Packs:  st.Packs,
		Family: st.Family,
		WSL:    st.WSL,
		Lists:  st.Lists,
	}
}

// Selection holds where the outputs of Apply go.
type Selection struct {
	Preferences *config.Preferences
	Passthrough []string // nil means miseconf.DefaultPassthrough
}

// Result is returned after a successful Apply.
type Result struct {
	Plan           *Plan
	MiseConfigPath string
	StatePath      string
	Duration       time.Duration
}

// Planner runs the plan lifecycle.
type Planner struct {
	Log    *logger.Logger
	OnStep func(step, total int, label string) // called at each named stage
}

// Apply resolves r, regenerates the mise configuration and records the
// snapshot. The snapshot is written last so a failed run never leaves a
// state.json describing a config that was not written.
func (p *Planner) Apply(sel *Selection, r *resolve.Resolver) (*Result, error) {
	start := time.Now()
	prefs := sel.Preferences

	p.step(1, 3, fmt.Sprintf("Resolving %d packs for %s", len(r.SelectedPacks()), r.Family()))
	pl := Build(r)
	p.Log.Debug("resolved",
		"system", len(pl.SystemPackages),
		"snaps", len(pl.Snaps),
		"flatpaks", len(pl.Flatpaks),
		"tools", len(pl.Tools),
		"custom", len(pl.CustomInstalls),
		"extensions", len(pl.Extensions),
	)

	passthrough := sel.Passthrough
	if passthrough == nil {
		passthrough = miseconf.DefaultPassthrough
	}
	p.step(2, 3, "Writing "+prefs.MiseConfig)
	if err := miseconf.Generate(prefs.MiseConfig, pl.Tools, passthrough); err != nil {
		return nil, fmt.Errorf("mise config: %w", err)
	}

	p.step(3, 3, "Recording state")
	if err := config.WriteState(prefs.StateDir, config.NewState(r, prefs)); err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}

	return &Result{
		Plan:           pl,
		MiseConfigPath: prefs.MiseConfig,
		StatePath:      config.StatePath(prefs.StateDir),
		Duration:       time.Since(start),
	}, nil
}

func (p *Planner) step(n, total int, label string) {
	p.Log.Printf("[%d/%d] %s", n, total, label)
	if p.OnStep != nil {
		p.OnStep(n, total, label)
	}
}
