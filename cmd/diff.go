package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/devkit-labs/wsprov/internal/plan"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare the current plan with the last recorded one",
	Long: `Resolves the manifest again, compares the result against the last
recorded state and shows what changed. With --apply the new plan is
recorded after confirmation.`,
	Args: cobra.NoArgs,
	RunE: runDiff,
}

var (
	flagApply bool
	flagYes   bool
)

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().BoolVar(&flagApply, "apply", false, "record the new plan after showing the diff")
	diffCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "do not ask for confirmation with --apply")
}

func runDiff(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, flagApply)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	planner := &plan.Planner{Log: s.log}

	d, err := planner.Diff(s.prefs.StateDir, plan.Build(s.resolver))
	if err != nil {
		return err
	}

	if !d.HasChanges() {
		fmt.Fprintln(out, lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✓ Already up to date"))
		return nil
	}
	if d.NoState {
		fmt.Fprintln(out, dimStr("No recorded state; everything is new."))
	}

	printDiff(out, d)

	if !flagApply {
		return nil
	}
	if !flagYes && !stdinIsTerminal() {
		return fmt.Errorf("stdin is not a terminal; pass --yes to record the plan")
	}
	if !flagYes && !confirm(out, cmd.InOrStdin(), "Record new plan? [Y/n] ") {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	result, err := planner.Apply(&plan.Selection{Preferences: s.prefs}, s.resolver)
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}

	ok := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	fmt.Fprintf(out, "\n%s\n", ok.Render("✓ Plan recorded")+dimStr(fmt.Sprintf("  (%s)", result.Duration.Round(1e6))))
	return nil
}

func printDiff(out io.Writer, d *plan.Diff) {
	add := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	upd := lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	down := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	rem := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	fmt.Fprintln(out)
	for _, p := range d.Added {
		fmt.Fprintf(out, "  %s  %s\n", add.Render("+"), p)
	}
	for _, c := range d.Updated {
		arrow := upd.Render("~")
		switch c.Kind {
		case plan.Upgrade:
			arrow = upd.Render("↑")
		case plan.Downgrade:
			arrow = down.Render("↓")
		}
		fmt.Fprintf(out, "  %s  %s %s\n", arrow, c.Item, dimStr(versionOrNone(c.From)+" → "+versionOrNone(c.To)))
	}
	for _, p := range d.Removed {
		fmt.Fprintf(out, "  %s  %s\n", rem.Render("-"), p)
	}
	fmt.Fprintln(out)
}

func versionOrNone(v string) string {
	if v == "" {
		return "(none)"
	}
	return v
}

func confirm(out io.Writer, in io.Reader, prompt string) bool {
	fmt.Fprint(out, prompt)
	r := bufio.NewReader(in)
	line, _ := r.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	return line == "" || line == "y" || line == "yes"
}

// stdinIsTerminal reports whether confirmation prompts can be answered.
func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
