// Package iooma reads the OMA flat-file ortholog export. The export is a
// directory of per-species-pair CSV files named orthologs_<t1>-<t2>.csv,
// where t1 and t2 are NCBI taxon IDs. The column layout is owned by the
// upstream provider; the loader locates gene1/gene2 by header and
// tolerates added trailing columns.
package iooma

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/ortho"
)

var fileNameRe = regexp.MustCompile(`^orthologs_(\d+)-(\d+)\.csv$`)

// File is one export file with the taxa parsed from its name.
type File struct {
	Path   string
	TaxonA string
	TaxonB string
}

// Stats counts loader-level events. Malformed input is never fatal.
type Stats struct {
	// Files is the number of export files processed.
	Files int
	// FilesSkipped counts files rejected by name pattern, taxon filter
	// or an unreadable header.
	FilesSkipped int
	// Rows is the number of gene pairs yielded.
	Rows int
	// Malformed counts skipped lines (missing fields, bad CSV).
	Malformed int
}

// Loader streams GenePair records from an export directory.
// The stream is restartable: Each re-reads the files from scratch.
type Loader struct {
	dir  string
	taxa map[string]struct{}
}

// New creates a Loader over dir. A non-empty taxaFilter restricts
// processing to files whose two filename taxa are both in the filter.
func New(dir string, taxaFilter []string) *Loader {
	l := &Loader{dir: dir}
	if len(taxaFilter) > 0 {
		l.taxa = make(map[string]struct{}, len(taxaFilter))
		for _, t := range taxaFilter {
			l.taxa[strings.TrimSpace(t)] = struct{}{}
		}
	}
	return l
}

// Files lists export files matching the name pattern and taxon filter,
// sorted by name for deterministic runs.
func (l *Loader) Files() ([]File, int, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, 0, DataDirError(l.dir, err)
	}

	var res []File
	var skipped int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := fileNameRe.FindStringSubmatch(e.Name())
		if m == nil {
			if strings.HasSuffix(e.Name(), ".csv") {
				slog.Warn("Skipping file with unexpected name",
					"file", e.Name())
				skipped++
			}
			continue
		}
		if !l.wantTaxa(m[1], m[2]) {
			skipped++
			continue
		}
		res = append(res, File{
			Path:   filepath.Join(l.dir, e.Name()),
			TaxonA: m[1],
			TaxonB: m[2],
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Path < res[j].Path })
	return res, skipped, nil
}

func (l *Loader) wantTaxa(t1, t2 string) bool {
	if l.taxa == nil {
		return true
	}
	_, ok1 := l.taxa[t1]
	_, ok2 := l.taxa[t2]
	return ok1 && ok2
}

// Each streams every gene pair of the export to fn. Malformed lines are
// counted and skipped. Returning an error from fn stops the stream.
func (l *Loader) Each(fn func(ortho.GenePair) error) (Stats, error) {
	var stats Stats

	files, skipped, err := l.Files()
	if err != nil {
		return stats, err
	}
	stats.FilesSkipped = skipped

	for _, f := range files {
		if err := l.eachInFile(f, fn, &stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (l *Loader) eachInFile(
	f File,
	fn func(ortho.GenePair) error,
	stats *Stats,
) error {
	fh, err := os.Open(f.Path)
	if err != nil {
		// A vanished or unreadable file degrades the run, it does not
		// abort it.
		slog.Warn("Cannot open export file", "file", f.Path, "error", err)
		stats.FilesSkipped++
		return nil
	}
	defer fh.Close()

	r := csv.NewReader(fh)
	// Column count varies between export versions.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		slog.Warn("Cannot read export header", "file", f.Path, "error", err)
		stats.FilesSkipped++
		return nil
	}
	idxA, idxB := geneColumns(header)
	if idxA < 0 || idxB < 0 {
		slog.Warn("Export header misses gene columns",
			"file", f.Path, "header", strings.Join(header, ","))
		stats.FilesSkipped++
		return nil
	}

	stats.Files++
	base := filepath.Base(f.Path)
	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			stats.Malformed++
			continue
		}
		if len(row) <= idxA || len(row) <= idxB {
			stats.Malformed++
			continue
		}
		geneA := strings.TrimSpace(row[idxA])
		geneB := strings.TrimSpace(row[idxB])
		if geneA == "" || geneB == "" {
			stats.Malformed++
			continue
		}

		stats.Rows++
		pair := ortho.GenePair{
			TaxonA:     f.TaxonA,
			GeneA:      geneA,
			TaxonB:     f.TaxonB,
			GeneB:      geneB,
			SourceFile: base,
		}
		if err := fn(pair); err != nil {
			return err
		}
	}
}

// geneColumns finds the gene1/gene2 columns by header name.
func geneColumns(header []string) (int, int) {
	idxA, idxB := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "gene1":
			idxA = i
		case "gene2":
			idxB = i
		}
	}
	return idxA, idxB
}
