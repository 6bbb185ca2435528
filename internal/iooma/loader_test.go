package iooma_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sib-swiss/wikidata-orthologs-bot/internal/iooma"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/ortho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
	require.NoError(t, err)
}

func TestEach(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "orthologs_9606-10090.csv",
		`gene1,gene2,taxon_name,taxon_id
ENSG00000141510,ENSMUSG00000059552,Euarchontoglires,314146
ENSG00000254647,ENSMUSG00000000215,Euarchontoglires,314146
`)

	var pairs []ortho.GenePair
	l := iooma.New(dir, nil)
	stats, err := l.Each(func(p ortho.GenePair) error {
		pairs = append(pairs, p)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Files)
	assert.Equal(t, 2, stats.Rows)
	assert.Zero(t, stats.Malformed)
	require.Len(t, pairs, 2)
	assert.Equal(t, "9606", pairs[0].TaxonA)
	assert.Equal(t, "10090", pairs[0].TaxonB)
	assert.Equal(t, "ENSG00000141510", pairs[0].GeneA)
	assert.Equal(t, "orthologs_9606-10090.csv", pairs[0].SourceFile)
}

func TestEachMalformedLines(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "orthologs_9606-10090.csv",
		`gene1,gene2
ENSG00000141510,ENSMUSG00000059552
,ENSMUSG00000000215
onlyonefield
ENSG00000254647,ENSMUSG00000000215
`)

	var count int
	l := iooma.New(dir, nil)
	stats, err := l.Each(func(p ortho.GenePair) error {
		count++
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Equal(t, 2, stats.Malformed)
}

func TestEachTrailingColumns(t *testing.T) {
	// upstream may add columns; loader finds gene1/gene2 by header
	dir := t.TempDir()
	writeFile(t, dir, "orthologs_7227-9606.csv",
		`extra,gene1,gene2,added1,added2
x,FBgn0039044,ENSG00000141510,a,b
`)

	var pairs []ortho.GenePair
	l := iooma.New(dir, nil)
	_, err := l.Each(func(p ortho.GenePair) error {
		pairs = append(pairs, p)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "FBgn0039044", pairs[0].GeneA)
	assert.Equal(t, "ENSG00000141510", pairs[0].GeneB)
}

func TestEachSkipsUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "orthologs_9606-10090.csv",
		"gene1,gene2\nG1,G2\n")
	writeFile(t, dir, "readme.txt", "not csv")
	writeFile(t, dir, "summary.csv", "a,b\n1,2\n")

	l := iooma.New(dir, nil)
	stats, err := l.Each(func(ortho.GenePair) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Files)
	assert.Equal(t, 1, stats.FilesSkipped, "summary.csv has no taxa in name")
}

func TestTaxaFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "orthologs_9606-10090.csv", "gene1,gene2\nG1,G2\n")
	writeFile(t, dir, "orthologs_9606-7227.csv", "gene1,gene2\nG3,G4\n")

	l := iooma.New(dir, []string{"9606", "10090"})
	files, skipped, err := l.Files()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "9606", files[0].TaxonA)
	assert.Equal(t, "10090", files[0].TaxonB)
}

func TestEachRestartable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "orthologs_9606-10090.csv", "gene1,gene2\nG1,G2\n")

	l := iooma.New(dir, nil)
	for i := 0; i < 2; i++ {
		stats, err := l.Each(func(ortho.GenePair) error { return nil })
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Rows)
	}
}

func TestEachMissingDir(t *testing.T) {
	l := iooma.New(filepath.Join(t.TempDir(), "nope"), nil)
	_, err := l.Each(func(ortho.GenePair) error { return nil })
	assert.Error(t, err)
}
