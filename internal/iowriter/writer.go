// Package iowriter turns reconciled pending writes into output: a CSV
// report in dry-run mode, or Wikidata statements written by a pool of
// parallel workers in write mode.
package iowriter

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"

	"github.com/sib-swiss/wikidata-orthologs-bot/internal/iostore"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/config"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/ortho"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/wikidata"
)

// Result aggregates the terminal outcomes of a batch.
type Result struct {
	Written int
	Failed  int
	Skipped int
}

// Writer executes a batch of pending ortholog writes.
type Writer struct {
	cfg    config.Config
	client wikidata.Client
	store  *iostore.Store

	urlMu sync.Mutex
	urlOK map[string]bool
}

// New creates a Writer. store may be nil for dry runs.
func New(
	cfg config.Config, client wikidata.Client, store *iostore.Store,
) *Writer {
	return &Writer{
		cfg:    cfg,
		client: client,
		store:  store,
		urlOK:  make(map[string]bool),
	}
}

// refOK HEAD-checks a reference URL, memoizing results so a URL shared
// by several pending writes is only checked once per run.
func (wr *Writer) refOK(ctx context.Context, url string) bool {
	wr.urlMu.Lock()
	ok, seen := wr.urlOK[url]
	wr.urlMu.Unlock()
	if seen {
		return ok
	}

	ok = wr.client.CheckURL(ctx, url)

	wr.urlMu.Lock()
	wr.urlOK[url] = ok
	wr.urlMu.Unlock()
	return ok
}

var csvHeader = []string{
	"subject_qid", "object_qid", "reference_url", "status",
}

// DryRun writes the pending batch as a CSV report without touching the
// Wikidata API.
func (wr *Writer) DryRun(pending []ortho.PendingWrite, out io.Writer) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return ReportWriteError(err)
	}
	for _, p := range pending {
		row := []string{
			p.Subject.QID, p.Object.QID, p.ReferenceURL,
			string(ortho.StatusPending),
		}
		if err := w.Write(row); err != nil {
			return ReportWriteError(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return ReportWriteError(err)
	}
	slog.Info("Dry run finished",
		"pending", humanize.Comma(int64(len(pending))))
	return nil
}

// Write performs the batch against the Wikidata API with
// cfg.JobsNumber parallel workers. Each write is terminal on its own:
// a failed statement is recorded and the batch continues.
func (wr *Writer) Write(
	ctx context.Context, pending []ortho.PendingWrite,
) (Result, error) {
	start := time.Now()

	runID, err := wr.store.BeginRun(ctx, "write")
	if err != nil {
		return Result{}, err
	}
	slog.Info("Starting write batch",
		"run", runID,
		"pending", len(pending),
		"jobs", wr.cfg.JobsNumber,
	)

	chIn := make(chan ortho.PendingWrite)
	chOut := make(chan ortho.PendingWrite)

	g, ctx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	for range wr.cfg.JobsNumber {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return wr.writeWorker(ctx, chIn, chOut)
		})
	}

	var res Result
	g.Go(func() error {
		return wr.collectOutcomes(ctx, chOut, len(pending), &res)
	})

	go func() {
		wg.Wait()
		close(chOut)
	}()

	err = feedPending(ctx, chIn, pending)
	close(chIn)
	if err != nil {
		_ = g.Wait()
		return res, err
	}

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return res, err
	}

	if err = wr.store.FinishRun(
		ctx, res.Written, res.Failed, res.Skipped); err != nil {
		return res, err
	}

	slog.Info("Write batch finished",
		"run", runID,
		"written", humanize.Comma(int64(res.Written)),
		"failed", humanize.Comma(int64(res.Failed)),
		"skipped", humanize.Comma(int64(res.Skipped)),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return res, nil
}

func feedPending(
	ctx context.Context,
	chIn chan<- ortho.PendingWrite,
	pending []ortho.PendingWrite,
) error {
	for _, p := range pending {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chIn <- p:
		}
	}
	return nil
}

// writeWorker executes one pending write at a time. The claim carries
// the OMA reference block and the found-in-taxon qualifier of the
// object gene.
func (wr *Writer) writeWorker(
	ctx context.Context,
	chIn <-chan ortho.PendingWrite,
	chOut chan<- ortho.PendingWrite,
) error {
	for p := range chIn {
		if wr.cfg.Run.ValidateRefs &&
			!wr.refOK(ctx, p.ReferenceURL) {
			p.Status = ortho.StatusSkipped
			p.Error = "reference URL not reachable"
		} else {
			claim := wikidata.Claim{
				SubjectQID:   p.Subject.QID,
				Property:     wikidata.PropOrtholog,
				ObjectQID:    p.Object.QID,
				ReferenceURL: p.ReferenceURL,
				StatedInQID:  wikidata.ItemOMA,
				TaxonQID:     p.Object.TaxonQID,
				Summary:      wr.cfg.Wikidata.EditSummary,
			}
			if err := wr.client.CreateClaim(ctx, claim); err != nil {
				p.Status = ortho.StatusFailed
				p.Error = err.Error()
				slog.Error("Write failed",
					"subject", p.Subject.QID,
					"object", p.Object.QID,
					"error", err,
				)
			} else {
				p.Status = ortho.StatusWritten
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- p:
		}
	}
	return nil
}

// collectOutcomes is the single goroutine that serializes run log
// appends and progress updates.
func (wr *Writer) collectOutcomes(
	ctx context.Context,
	chOut <-chan ortho.PendingWrite,
	total int,
	res *Result,
) error {
	bar := newProgressBar(total, "Writing statements ")
	defer bar.Finish()

	for p := range chOut {
		if err := wr.store.SaveOutcome(ctx, p); err != nil {
			return err
		}
		switch p.Status {
		case ortho.StatusWritten:
			res.Written++
		case ortho.StatusFailed:
			res.Failed++
		case ortho.StatusSkipped:
			res.Skipped++
		}
		bar.Increment()
	}
	return nil
}
