package main

import (
	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/sib-swiss/wikidata-orthologs-bot/internal/iooma"
)

// fetchCmd downloads and unpacks the OMA ortholog export.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and unpack the OMA ortholog export",
	Long: `Download the zipped OMA ortholog export and unpack its CSV files into
the local data directory. Does nothing when the data directory already
contains files; remove the directory to force a fresh download.`,
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	err := iooma.Fetch(cmd.Context(), cfg.OMA.DownloadURL, cfg.OMADir())
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("OMA export is available at <em>%s</em>", cfg.OMADir())
	return nil
}
