// Package ioindex builds the run-wide snapshots of remote Wikidata
// state: the existing-statement index and the gene/taxon ID mappings.
package ioindex

import (
	"context"
	"log/slog"

	"github.com/sib-swiss/wikidata-orthologs-bot/internal/iocache"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/ortho"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/wikidata"
)

// Build fetches every recorded ortholog statement and returns the
// immutable index snapshot the reconciler checks against.
//
// A partial index is worse than no index: absence of a pair would be
// read as "not recorded yet" and cause duplicate writes. Any failure is
// therefore fatal for the run, and the index is never served from cache.
func Build(
	ctx context.Context, client wikidata.Client,
) (*ortho.StatementIndex, error) {
	pairs, err := client.PropertyPairs(ctx, wikidata.PropOrtholog)
	if err != nil {
		return nil, BuildError(err)
	}
	idx := ortho.NewStatementIndex(pairs)
	slog.Info("Built existing-statement index",
		"statements", len(pairs), "pairs", idx.Len())
	return idx, nil
}

// LoadMappings returns the gene (P594) and taxon (P685) ID mappings,
// serving them from the local cache when possible. With refresh true
// the cache is cleared first. A nil cache always queries Wikidata.
func LoadMappings(
	ctx context.Context,
	client wikidata.Client,
	cache *iocache.Cache,
	refresh bool,
) (ortho.Mapping, ortho.Mapping, error) {
	if cache != nil {
		if refresh {
			if err := cache.Clear(); err != nil {
				return nil, nil, err
			}
		}
		if err := cache.Open(); err != nil {
			return nil, nil, err
		}
	}

	genes, err := loadMapping(ctx, client, cache, wikidata.PropEnsemblGeneID)
	if err != nil {
		return nil, nil, err
	}
	taxa, err := loadMapping(ctx, client, cache, wikidata.PropNCBITaxonID)
	if err != nil {
		return nil, nil, err
	}
	return genes, taxa, nil
}

func loadMapping(
	ctx context.Context,
	client wikidata.Client,
	cache *iocache.Cache,
	property string,
) (ortho.Mapping, error) {
	if cache != nil {
		m, err := cache.GetMapping(property)
		if err != nil {
			return nil, err
		}
		if m != nil {
			slog.Info("Using cached ID mapping",
				"property", property, "size", len(m))
			return m, nil
		}
	}

	raw, err := client.IDMap(ctx, property)
	if err != nil {
		return nil, MappingFetchError(property, err)
	}
	m := ortho.Mapping(raw)

	if cache != nil {
		if err = cache.StoreMapping(property, m); err != nil {
			return nil, err
		}
	}
	return m, nil
}
