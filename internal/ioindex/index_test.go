package ioindex_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sib-swiss/wikidata-orthologs-bot/internal/iocache"
	"github.com/sib-swiss/wikidata-orthologs-bot/internal/ioindex"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/wikidata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient implements wikidata.Client for index and mapping tests.
type fakeClient struct {
	idMaps     map[string]map[string]string
	pairs      [][2]string
	pairsErr   error
	idMapCalls int
}

func (f *fakeClient) IDMap(
	_ context.Context, property string,
) (map[string]string, error) {
	f.idMapCalls++
	return f.idMaps[property], nil
}

func (f *fakeClient) PropertyPairs(
	_ context.Context, _ string,
) ([][2]string, error) {
	return f.pairs, f.pairsErr
}

func (f *fakeClient) Login(context.Context, string, string) error { return nil }

func (f *fakeClient) CreateClaim(context.Context, wikidata.Claim) error {
	return nil
}

func (f *fakeClient) CheckURL(context.Context, string) bool { return true }

func TestBuild(t *testing.T) {
	client := &fakeClient{
		pairs: [][2]string{{"Q1", "Q2"}, {"Q2", "Q1"}, {"Q3", "Q4"}},
	}
	idx, err := ioindex.Build(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.Has("Q2", "Q1"))
}

func TestBuildFailureIsFatal(t *testing.T) {
	client := &fakeClient{pairsErr: errors.New("wdqs timeout")}
	idx, err := ioindex.Build(context.Background(), client)
	require.Error(t, err)
	assert.Nil(t, idx, "no partial index on failure")
}

func TestLoadMappingsCaches(t *testing.T) {
	client := &fakeClient{
		idMaps: map[string]map[string]string{
			wikidata.PropEnsemblGeneID: {"ENSG00000141510": "Q14818098"},
			wikidata.PropNCBITaxonID:   {"9606": "Q15978631"},
		},
	}
	cache, err := iocache.New(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	genes, taxa, err := ioindex.LoadMappings(
		context.Background(), client, cache, false)
	require.NoError(t, err)
	assert.Equal(t, "Q14818098", genes["ENSG00000141510"])
	assert.Equal(t, "Q15978631", taxa["9606"])
	assert.Equal(t, 2, client.idMapCalls)

	// second load is served from cache
	_, _, err = ioindex.LoadMappings(
		context.Background(), client, cache, false)
	require.NoError(t, err)
	assert.Equal(t, 2, client.idMapCalls)
}

func TestLoadMappingsRefresh(t *testing.T) {
	client := &fakeClient{
		idMaps: map[string]map[string]string{
			wikidata.PropEnsemblGeneID: {"ENSG00000141510": "Q14818098"},
			wikidata.PropNCBITaxonID:   {"9606": "Q15978631"},
		},
	}
	cache, err := iocache.New(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	_, _, err = ioindex.LoadMappings(context.Background(), client, cache, false)
	require.NoError(t, err)

	// refresh bypasses the cached copy
	_, _, err = ioindex.LoadMappings(context.Background(), client, cache, true)
	require.NoError(t, err)
	assert.Equal(t, 4, client.idMapCalls)
}
