package iocache_test

import (
	"testing"

	"github.com/sib-swiss/wikidata-orthologs-bot/internal/iocache"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/ortho"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/wikidata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingRoundTrip(t *testing.T) {
	c, err := iocache.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, c.Open())
	defer c.Close()

	m := ortho.Mapping{
		"ENSG00000141510":    "Q14818098",
		"ENSMUSG00000059552": "Q14911122",
	}
	require.NoError(t, c.StoreMapping(wikidata.PropEnsemblGeneID, m))

	got, err := c.GetMapping(wikidata.PropEnsemblGeneID)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestMappingMissing(t *testing.T) {
	c, err := iocache.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, c.Open())
	defer c.Close()

	got, err := c.GetMapping(wikidata.PropNCBITaxonID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClear(t *testing.T) {
	c, err := iocache.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, c.Open())

	m := ortho.Mapping{"9606": "Q15978631"}
	require.NoError(t, c.StoreMapping(wikidata.PropNCBITaxonID, m))
	require.NoError(t, c.Clear())

	require.NoError(t, c.Open())
	defer c.Close()
	got, err := c.GetMapping(wikidata.PropNCBITaxonID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNotOpen(t *testing.T) {
	c, err := iocache.New(t.TempDir())
	require.NoError(t, err)

	_, err = c.GetMapping(wikidata.PropNCBITaxonID)
	assert.Error(t, err)
	err = c.StoreMapping(wikidata.PropNCBITaxonID, ortho.Mapping{})
	assert.Error(t, err)
}
