package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "List available packs",
	Args:  cobra.NoArgs,
	RunE:  runPacks,
}

var packsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show what a pack installs",
	Long: `Show the tools a pack brings in for the active system family:
mise tools, custom installs and, unless disabled, VS Code extensions,
followed by the number of system packages.`,
	Args: cobra.ExactArgs(1),
	RunE: runPacksShow,
}

var flagNoExtensions bool

func init() {
	rootCmd.AddCommand(packsCmd)
	packsCmd.AddCommand(packsShowCmd)
	packsShowCmd.Flags().BoolVar(&flagNoExtensions, "no-extensions", false, "omit VS Code extensions")
}

func runPacks(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	name := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	selected := make(map[string]bool)
	for _, p := range s.resolver.SelectedPacks() {
		selected[p] = true
	}

	out := cmd.OutOrStdout()
	for _, p := range s.resolver.Packs() {
		mark := " "
		if selected[p.Name] {
			mark = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("●")
		}
		fmt.Fprintf(out, "%s %s  %s\n", mark, name.Render(fmt.Sprintf("%-15s", p.Name)), dimStr(p.Description))
	}
	return nil
}

func runPacksShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, ok := s.resolver.Document().Pack(args[0]); !ok {
		s.log.Warn("unknown pack", "pack", args[0])
		return nil
	}

	show := s.prefs.ShowExtensions && !flagNoExtensions
	for _, line := range s.resolver.PackContents(args[0], show) {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

func dimStr(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(s)
}
