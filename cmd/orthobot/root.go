package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/sib-swiss/wikidata-orthologs-bot/internal/ioconfig"
	"github.com/sib-swiss/wikidata-orthologs-bot/internal/iofs"
	"github.com/sib-swiss/wikidata-orthologs-bot/internal/iologger"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/config"
	app "github.com/sib-swiss/wikidata-orthologs-bot/pkg/orthobot"
)

var (
	homeDir string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
	Use:     "orthobot",
	Short:   "orthobot adds missing ortholog statements to Wikidata",
	Long: `orthobot reads the OMA (Orthologous MAtrix) ortholog export, compares
it with the ortholog statements already present in Wikidata, and either
reports the missing statements (dry run, the default) or writes them
through the MediaWiki API.

Typical workflow:

  orthobot fetch            # download and unpack the OMA export
  orthobot run              # dry run, writes a CSV report
  orthobot run --write      # perform the writes (needs WDUSER/WDPASS)

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (ORTHOBOT_*)
  3. Config file (~/.config/orthobot/config.yaml)
  4. Built-in defaults

Bot credentials are read from WDUSER and WDPASS, either from the
environment or from a local .env file. They are never stored in the
config file.`,
	PersistentPreRunE: bootstrap,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Logging starts with hardcoded defaults and is reconfigured after
	// the config is loaded.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if cfg, err = ioconfig.Load(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

func init() {
	// Remove the automatic "orthobot version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.Flags().BoolP("version", "V", false, "version for orthobot")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(runCmd)
}
