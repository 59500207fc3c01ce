package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devkit-labs/wsprov/internal/config"
	"github.com/devkit-labs/wsprov/internal/logger"
	"github.com/devkit-labs/wsprov/internal/manifest"
	"github.com/devkit-labs/wsprov/internal/pm"
	"github.com/devkit-labs/wsprov/internal/resolve"
)

// session is everything one command invocation works with.
type session struct {
	prefs    *config.Preferences
	resolver *resolve.Resolver
	log      *logger.Logger
}

func (s *session) Close() { s.log.Close() }

// openSession loads preferences, resolves the manifest and sets up logging.
// With persist the log is also written to the state directory.
func openSession(cmd *cobra.Command, persist bool) (*session, error) {
	prefs, err := loadPreferences(cmd)
	if err != nil {
		return nil, err
	}

	var log *logger.Logger
	if persist {
		if log, err = logger.New(prefs.StateDir); err != nil {
			return nil, err
		}
	} else {
		log = logger.NewWriter(cmd.ErrOrStderr())
	}
	log.SetVerbose(flagVerbose)

	r, err := newResolver(prefs, log)
	if err != nil {
		log.Close()
		return nil, err
	}
	return &session{prefs: prefs, resolver: r, log: log}, nil
}

// loadPreferences reads the preferences file and applies command-line overrides.
func loadPreferences(cmd *cobra.Command) (*config.Preferences, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultPreferencesPath()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("preferences file: %w", err)
	}

	prefs, err := config.LoadPreferences(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("manifest") {
		prefs.Manifest = flagManifest
	}
	if flags.Changed("overlay") {
		prefs.Overlay = flagOverlay
	}
	if flags.Changed("packs") {
		prefs.Packs = flagPacks
	}
	if flags.Changed("family") {
		prefs.Family = strings.ToLower(flagFamily)
	}
	if flags.Changed("wsl") {
		prefs.WSL = strings.ToLower(flagWSL)
	}
	if flags.Changed("state-dir") {
		prefs.StateDir = flagStateDir
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	return prefs, nil
}

// newResolver loads the merged manifest and resolves it for this host.
func newResolver(prefs *config.Preferences, log *logger.Logger) (*resolve.Resolver, error) {
	loader := manifest.NewLoader(manifest.LoadOptions{
		BasePath:    prefs.Manifest,
		OverlayPath: prefs.Overlay,
	})
	doc, err := loader.Document()
	if err != nil {
		return nil, err
	}
	log.Debug("manifest loaded", "base", prefs.Manifest, "overlay", prefs.Overlay, "packs", len(doc.Packs))

	family := manifest.Channel(prefs.Family)
	if family == "" {
		family = pm.Detect().Channel()
		log.Debug("detected system family", "family", family)
	}

	wsl, err := prefs.ResolveWSL(pm.IsWSL)
	if err != nil {
		return nil, err
	}

	for _, name := range prefs.Packs {
		if _, ok := doc.Pack(name); !ok {
			log.Warn("unknown pack ignored", "pack", name)
		}
	}

	return resolve.New(doc, resolve.Options{
		Family: family,
		Packs:  prefs.Packs,
		Env:    resolve.Environment{WSL: wsl},
	}), nil
}
