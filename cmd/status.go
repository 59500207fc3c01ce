package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/devkit-labs/wsprov/internal/config"
	"github.com/devkit-labs/wsprov/internal/plan"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last recorded plan",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	prefs, err := loadPreferences(cmd)
	if err != nil {
		return err
	}

	st, err := config.ReadState(prefs.StateDir)
	if err != nil {
		return err
	}

	label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8"))
	val := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s %s\n", label.Render("Resolved:"), st.ResolvedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "  %s %s\n", label.Render("Manifest:"), val.Render(st.Manifest))
	if st.Overlay != "" {
		fmt.Fprintf(out, "  %s %s\n", label.Render("Overlay: "), val.Render(st.Overlay))
	}
	fmt.Fprintf(out, "  %s %s\n", label.Render("Mise:    "), val.Render(st.MiseConfig))

	p := plan.FromState(st)
	printPlan(out, p)
	fmt.Fprintf(out, "  %s\n\n", dimStr(summary(p)))
	return nil
}
