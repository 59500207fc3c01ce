package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/devkit-labs/wsprov/internal/miseconf"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the mise configuration",
	Long: `Render the resolved mise tools into mise's config.toml. The file is
replaced on every run. Use -o - to print it instead.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var flagOutput string

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "destination (default: mise_config preference, - for stdout)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	tools := s.resolver.Tools()
	if flagOutput == "-" {
		_, err := cmd.OutOrStdout().Write(miseconf.Render(tools, miseconf.DefaultPassthrough))
		return err
	}

	path := s.prefs.MiseConfig
	if flagOutput != "" {
		path = flagOutput
	}
	if err := miseconf.Generate(path, tools, miseconf.DefaultPassthrough); err != nil {
		return err
	}
	s.log.Debug("mise config written", "path", path, "tools", len(tools))

	ok := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ok.Render("✓"), path, dimStr(fmt.Sprintf("(%d tools)", len(tools))))
	return nil
}
