package plan

import (
	"strings"

	"github.com/devkit-labs/wsprov/internal/pm"
)

// Commands returns the shell commands an installer would run for p, one
// per line. They are printed for review and never executed here.
func Commands(p *Plan, mgr pm.PackageManager) []string {
	var out []string
	if len(p.SystemPackages) > 0 {
		out = append(out, strings.Join(mgr.InstallCommand(p.SystemPackages), " "))
	}
	for _, s := range p.Snaps {
		cmd := "sudo snap install " + s.Name
		if s.Options != "" {
			cmd += " " + s.Options
		}
		out = append(out, cmd)
	}
	for _, f := range p.Flatpaks {
		out = append(out, "flatpak install -y "+f.Remote+" "+f.AppID)
	}
	if len(p.Tools) > 0 {
		out = append(out, "mise install")
	}
	for _, c := range p.CustomInstalls {
		line := c.Installer + " " + c.Key
		if c.Version != "" {
			line += " " + c.Version
		}
		if c.Optional {
			line += " || true"
		}
		out = append(out, line)
	}
	for _, e := range p.Extensions {
		id := e.ID
		if e.Version != "" {
			id += "@" + e.Version
		}
		line := "code --install-extension " + id
		if e.Optional {
			line += " || true"
		}
		out = append(out, line)
	}
	return out
}
