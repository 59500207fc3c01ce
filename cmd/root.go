// Package cmd implements the wsprov CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var versionString = "dev"

// SetVersionInfo is called from main.go with values injected at build time via -ldflags.
// It must be called before Execute().
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	if version == "dev" {
		versionString = "dev (built from source)"
		return
	}
	versionString = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

var rootCmd = &cobra.Command{
	Use:   "wsprov",
	Short: "Workstation manifest resolver",
	Long: `wsprov reads the workstation package manifest, applies the local
overlay, selects packs and prints what each installer channel must install.
It also writes the mise configuration for the selected tools.

Examples:
  wsprov packs                      list available packs
  wsprov packs show java            show what a pack brings in
  wsprov list mise --packs java,go  print resolved mise tools
  wsprov tool-version node          print the effective node version
  wsprov plan                       write the mise config and record state
  wsprov diff                       compare with the last recorded plan`,
	SilenceUsage: true,
}

var (
	flagConfig   string
	flagManifest string
	flagOverlay  string
	flagPacks    []string
	flagFamily   string
	flagWSL      string
	flagStateDir string
	flagVerbose  bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "preferences file (default $XDG_CONFIG_HOME/wsprov/preferences.yaml)")
	pf.StringVarP(&flagManifest, "manifest", "m", "", "base manifest path")
	pf.StringVar(&flagOverlay, "overlay", "", "overlay manifest path")
	pf.StringSliceVarP(&flagPacks, "packs", "p", nil, "selected packs, comma-separated, in order")
	pf.StringVar(&flagFamily, "family", "", "system package family: apt or dnf (default: detect)")
	pf.StringVar(&flagWSL, "wsl", "", "WSL environment: auto, true or false")
	pf.StringVar(&flagStateDir, "state-dir", "", "directory for state.json and logs")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versionString),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
