package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/devkit-labs/wsprov/internal/plan"
)

// summary is a one-line count of every work list.
func summary(p *plan.Plan) string {
	return fmt.Sprintf("%d system packages, %d snaps, %d flatpaks, %d tools, %d custom installs, %d extensions",
		len(p.SystemPackages), len(p.Snaps), len(p.Flatpaks), len(p.Tools), len(p.CustomInstalls), len(p.Extensions))
}

// printPlan renders every non-empty work list.
func printPlan(out io.Writer, p *plan.Plan) {
	label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8"))
	val := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	ok := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mark := ok.Render("●")

	packs := strings.Join(p.Packs, ", ")
	if packs == "" {
		packs = "(core only)"
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s %s\n", label.Render("Packs:  "), val.Render(packs))
	fmt.Fprintf(out, "  %s %s\n", label.Render("Family: "), p.Family)
	fmt.Fprintf(out, "  %s %v\n\n", label.Render("WSL:    "), p.WSL)

	section := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		fmt.Fprintf(out, "  %s\n", label.Render(title))
		for _, l := range lines {
			fmt.Fprintf(out, "    %s %s\n", mark, l)
		}
		fmt.Fprintln(out)
	}

	section("System packages:", p.SystemPackages)

	var lines []string
	for _, s := range p.Snaps {
		lines = append(lines, strings.TrimSpace(s.Name+" "+dimStr(s.Options)))
	}
	section("Snaps:", lines)

	lines = nil
	for _, f := range p.Flatpaks {
		lines = append(lines, f.AppID+" "+dimStr(f.Remote))
	}
	section("Flatpaks:", lines)

	lines = nil
	for _, t := range p.Tools {
		lines = append(lines, fmt.Sprintf("%-30s %s", t.Key, dimStr(t.Version)))
	}
	section("Tools:", lines)

	lines = nil
	for _, c := range p.CustomInstalls {
		lines = append(lines, fmt.Sprintf("%-30s %s", c.Key, dimStr(strings.TrimSpace(c.Version+" via "+c.Installer+optional(c.Optional)))))
	}
	section("Custom installs:", lines)

	lines = nil
	for _, e := range p.Extensions {
		lines = append(lines, fmt.Sprintf("%-30s %s", e.ID, dimStr(strings.TrimSpace(e.Version+optional(e.Optional)))))
	}
	section("Extensions:", lines)
}

func optional(b bool) string {
	if b {
		return " (optional)"
	}
	return ""
}
