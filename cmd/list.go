package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devkit-labs/wsprov/internal/manifest"
	"github.com/devkit-labs/wsprov/internal/resolve"
)

// listChannels are the names accepted by `wsprov list`.
var listChannels = []string{"system", "apt", "dnf", "snap", "flatpak", "mise", "custom", "vscode"}

var listCmd = &cobra.Command{
	Use:   "list <channel>",
	Short: "Print the resolved entries of one channel",
	Long: `Print the resolved entries of one channel, one per line with
tab-separated fields, for consumption by installer scripts.

Channels:
  system    packages for the active family plus common
  apt, dnf  packages for that family plus common
  snap      name, options
  flatpak   application id, remote
  mise      tool key, version
  custom    key, version, installer, tags
  vscode    extension id, version, tags`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: listChannels,
	RunE:      runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	return writeChannel(cmd.OutOrStdout(), s.resolver, args[0])
}

// writeChannel prints one channel's tuples.
func writeChannel(w io.Writer, r *resolve.Resolver, channel string) error {
	var rows [][]string
	switch channel {
	case "system":
		for _, name := range r.SystemPackages() {
			rows = append(rows, []string{name})
		}
	case string(manifest.ChannelApt), string(manifest.ChannelDnf):
		for _, name := range resolve.SystemPackages(r.Entries(), manifest.Channel(channel)) {
			rows = append(rows, []string{name})
		}
	case string(manifest.ChannelSnap):
		for _, s := range r.Snaps() {
			rows = append(rows, []string{s.Name, s.Options})
		}
	case string(manifest.ChannelFlatpak):
		for _, f := range r.Flatpaks() {
			rows = append(rows, []string{f.AppID, f.Remote})
		}
	case string(manifest.ChannelMise):
		for _, t := range r.Tools() {
			rows = append(rows, []string{t.Key, t.Version})
		}
	case string(manifest.ChannelCustom):
		for _, c := range r.CustomInstalls() {
			rows = append(rows, []string{c.Key, c.Version, c.Installer, c.Tags})
		}
	case string(manifest.ChannelVSCode):
		for _, e := range r.Extensions() {
			rows = append(rows, []string{e.ID, e.Version, e.Tags})
		}
	default:
		return fmt.Errorf("unknown channel %q (want one of %s)", channel, strings.Join(listChannels, ", "))
	}

	for _, row := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}
