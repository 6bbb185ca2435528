package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/sib-swiss/wikidata-orthologs-bot/internal/iocache"
	"github.com/sib-swiss/wikidata-orthologs-bot/internal/ioconfig"
	"github.com/sib-swiss/wikidata-orthologs-bot/internal/ioindex"
	"github.com/sib-swiss/wikidata-orthologs-bot/internal/iooma"
	"github.com/sib-swiss/wikidata-orthologs-bot/internal/iostore"
	"github.com/sib-swiss/wikidata-orthologs-bot/internal/iowikidata"
	"github.com/sib-swiss/wikidata-orthologs-bot/internal/iowriter"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/config"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/ortho"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Reconcile the OMA export against Wikidata",
	Long: `Read the local OMA export, find the ortholog statements missing from
Wikidata, and either save them as a CSV report (the default) or write
them through the MediaWiki API with --write.

The existing-statement index is always rebuilt from Wikidata at the
start of the run, so a repeated run writes nothing new. Write mode
requires the WDUSER and WDPASS bot credentials.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolP("write", "w", false,
		"write statements to Wikidata instead of producing a report")
	runCmd.Flags().IntP("jobs", "j", 0,
		"number of parallel write workers")
	runCmd.Flags().StringP("output", "o", "orthologs_pending.csv",
		"dry-run report path, '-' for STDOUT")
	runCmd.Flags().StringSlice("taxa", nil,
		"process only export files whose NCBI taxon IDs are all listed")
	runCmd.Flags().Bool("validate-refs", false,
		"skip statements whose OMA reference URL does not respond")
	runCmd.Flags().Bool("refresh-mappings", false,
		"re-query gene and taxon ID mappings instead of using the cache")
}

func runRun(cmd *cobra.Command, args []string) error {
	applyRunFlags(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if cfg.Run.Write {
		ioconfig.LoadCredentials(cfg)
		if cfg.Wikidata.User == "" || cfg.Wikidata.Password == "" {
			err := ioconfig.MissingCredentialsError()
			gn.PrintErrorMessage(err)
			return err
		}
	}

	client := iowikidata.New(cfg)

	cache, err := iocache.New(config.MappingCacheDir(homeDir))
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer cache.Close()

	genes, taxa, err := ioindex.LoadMappings(
		ctx, client, cache, cfg.Run.RefreshMappings)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	idx, err := ioindex.Build(ctx, client)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	pending, stats, err := reconcile(genes, taxa, idx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	printStats(stats)

	if !cfg.Run.Write {
		return dryRun(client, pending)
	}
	return writeBatch(ctx, client, pending)
}

// applyRunFlags feeds CLI flags into the config. Flags have the highest
// precedence, so they are applied after file and environment settings.
func applyRunFlags(cmd *cobra.Command) {
	var opts []config.Option
	flags := cmd.Flags()

	write, _ := flags.GetBool("write")
	opts = append(opts, config.OptRunWrite(write))

	if flags.Changed("jobs") {
		jobs, _ := flags.GetInt("jobs")
		opts = append(opts, config.OptJobsNumber(jobs))
	}

	output, _ := flags.GetString("output")
	opts = append(opts, config.OptRunOutput(output))

	taxa, _ := flags.GetStringSlice("taxa")
	opts = append(opts, config.OptRunTaxa(taxa))

	validateRefs, _ := flags.GetBool("validate-refs")
	opts = append(opts, config.OptRunValidateRefs(validateRefs))

	refresh, _ := flags.GetBool("refresh-mappings")
	opts = append(opts, config.OptRunRefreshMappings(refresh))

	cfg.Update(opts)
}

func reconcile(
	genes, taxa ortho.Mapping, idx *ortho.StatementIndex,
) ([]ortho.PendingWrite, ortho.Stats, error) {
	loader := iooma.New(cfg.OMADir(), cfg.Run.Taxa)
	rec := ortho.NewReconciler(genes, taxa, idx)

	var pending []ortho.PendingWrite
	lstats, err := loader.Each(func(p ortho.GenePair) error {
		if w, ok := rec.Reconcile(p); ok {
			pending = append(pending, w)
		}
		return nil
	})
	if err != nil {
		return nil, rec.Stats(), err
	}

	slog.Info("Finished reading export",
		"files", lstats.Files,
		"files_skipped", lstats.FilesSkipped,
		"rows", lstats.Rows,
		"malformed", lstats.Malformed,
	)
	return pending, rec.Stats(), nil
}

func printStats(stats ortho.Stats) {
	gn.Info(`Reconciliation finished
Gene pairs read:      %s
Unresolved genes:     %s
Unresolved taxa:      %s
Self pairs:           %s
In-run duplicates:    %s
Already in Wikidata:  %s
Pending statements:   %s`,
		humanize.Comma(int64(stats.Read)),
		humanize.Comma(int64(stats.UnresolvedGene)),
		humanize.Comma(int64(stats.UnresolvedTaxon)),
		humanize.Comma(int64(stats.SelfPair)),
		humanize.Comma(int64(stats.Duplicate)),
		humanize.Comma(int64(stats.AlreadyRecorded)),
		humanize.Comma(int64(stats.Pending)),
	)
}

func dryRun(
	client *iowikidata.Client, pending []ortho.PendingWrite,
) error {
	out := os.Stdout
	if cfg.Run.Output != "-" {
		f, err := os.Create(cfg.Run.Output)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		defer f.Close()
		out = f
	}

	wr := iowriter.New(*cfg, client, nil)
	if err := wr.DryRun(pending, out); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if cfg.Run.Output != "-" {
		gn.Info("Report with %s pending statements saved to <em>%s</em>",
			humanize.Comma(int64(len(pending))), cfg.Run.Output)
	}
	return nil
}

// writeBatch performs the writes. Individual statement failures are
// recorded in the run log and do not fail the command; only setup
// errors (login, run log) return a non-zero exit.
func writeBatch(
	ctx context.Context,
	client *iowikidata.Client,
	pending []ortho.PendingWrite,
) error {
	err := client.Login(ctx, cfg.Wikidata.User, cfg.Wikidata.Password)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	store, err := iostore.Open(config.RunLogPath(homeDir))
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer store.Close()

	wr := iowriter.New(*cfg, client, store)
	res, err := wr.Write(ctx, pending)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(`Write batch finished
Written:  %s
Failed:   %s
Skipped:  %s
Run log:  <em>%s</em>`,
		humanize.Comma(int64(res.Written)),
		humanize.Comma(int64(res.Failed)),
		humanize.Comma(int64(res.Skipped)),
		config.RunLogPath(homeDir),
	)
	return nil
}
