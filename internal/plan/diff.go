package plan

import (
	"errors"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/devkit-labs/wsprov/internal/config"
	"github.com/devkit-labs/wsprov/internal/manifest"
)

// ChangeKind classifies a version change.
type ChangeKind string

const (
	Upgrade   ChangeKind = "upgrade"
	Downgrade ChangeKind = "downgrade"
	Change    ChangeKind = "change"
)

// VersionChange is one item whose version differs between two plans.
type VersionChange struct {
	Item string
	From string
	To   string
	Kind ChangeKind
}

// Diff describes changes between the recorded plan and the current one.
// Items are channel-qualified, e.g. "apt:curl" or "mise:node".
type Diff struct {
	Added   []string
	Removed []string
	Updated []VersionChange
	// NoState is set when there was no previous snapshot to compare with.
	NoState bool
}

// HasChanges returns true if anything differs.
func (d *Diff) HasChanges() bool {
	return len(d.Added)+len(d.Removed)+len(d.Updated) > 0
}

// Diff compares current against the snapshot in stateDir. Without a
// snapshot every item of current is reported as added.
func (p *Planner) Diff(stateDir string, current *Plan) (*Diff, error) {
	st, err := config.ReadState(stateDir)
	if err != nil {
		if errors.Is(err, config.ErrNoState) {
			p.Log.Debug("no previous state", "dir", stateDir)
			d := Compare(&Plan{}, current)
			d.NoState = true
			return d, nil
		}
		return nil, err
	}
	return Compare(FromState(st), current), nil
}

// Compare returns what changed from prev to cur. Added items follow cur's
// order and removed items follow prev's.
func Compare(prev, cur *Plan) *Diff {
	before := items(prev)
	after := items(cur)

	old := make(map[string]string, len(before))
	for _, it := range before {
		old[it.id] = it.version
	}
	now := make(map[string]bool, len(after))

	d := &Diff{}
	for _, it := range after {
		if now[it.id] {
			continue
		}
		now[it.id] = true
		from, ok := old[it.id]
		switch {
		case !ok:
			d.Added = append(d.Added, it.id)
		case from != it.version:
			d.Updated = append(d.Updated, VersionChange{
				Item: it.id,
				From: from,
				To:   it.version,
				Kind: classify(from, it.version),
			})
		}
	}
	seen := make(map[string]bool, len(before))
	for _, it := range before {
		if !now[it.id] && !seen[it.id] {
			d.Removed = append(d.Removed, it.id)
		}
		seen[it.id] = true
	}
	return d
}

type item struct {
	id      string
	version string
}

func items(p *Plan) []item {
	var out []item
	family := p.Family
	if family == "" {
		family = string(manifest.ChannelApt)
	}
	for _, name := range p.SystemPackages {
		out = append(out, item{id: family + ":" + name})
	}
	for _, s := range p.Snaps {
		out = append(out, item{id: "snap:" + s.Name})
	}
	for _, f := range p.Flatpaks {
		out = append(out, item{id: "flatpak:" + f.AppID})
	}
	for _, t := range p.Tools {
		out = append(out, item{id: "mise:" + t.Key, version: t.Version})
	}
	for _, c := range p.CustomInstalls {
		out = append(out, item{id: "custom:" + c.Key, version: c.Version})
	}
	for _, e := range p.Extensions {
		out = append(out, item{id: "vscode:" + e.ID, version: e.Version})
	}
	return out
}

// classify compares two versions as semver when both parse, accepting
// versions written without the leading "v".
func classify(from, to string) ChangeKind {
	a, b := canonical(from), canonical(to)
	if a == "" || b == "" {
		return Change
	}
	switch semver.Compare(a, b) {
	case -1:
		return Upgrade
	case 1:
		return Downgrade
	default:
		return Change
	}
}

func canonical(v string) string {
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
