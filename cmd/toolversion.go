package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toolVersionCmd = &cobra.Command{
	Use:   "tool-version <key>",
	Short: "Print the effective version of a tool",
	Long: `Print the version the manifest declares for a mise or custom tool,
looked up by entry key or mise backend across core and the selected packs.
Prints an empty line when the tool is unknown.`,
	Args: cobra.ExactArgs(1),
	RunE: runToolVersion,
}

func init() {
	rootCmd.AddCommand(toolVersionCmd)
}

func runToolVersion(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintln(cmd.OutOrStdout(), s.resolver.ToolVersion(args[0]))
	return nil
}
