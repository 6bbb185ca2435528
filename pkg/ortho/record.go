// Package ortho contains the domain model of the ortholog pipeline and the
// reconciliation engine. This is a pure package - no I/O happens here.
package ortho

import (
	"fmt"
)

// GenePair is one ortholog relationship as reported by the OMA export.
// Immutable once parsed. (A,B) and (B,A) denote the same biological fact;
// Canonical() picks a single representative ordering.
type GenePair struct {
	// TaxonA and TaxonB are NCBI taxonomy IDs, taken from the export
	// file name.
	TaxonA string
	TaxonB string

	// GeneA and GeneB are external gene identifiers (Ensembl).
	GeneA string
	GeneB string

	// SourceFile names the export file the pair came from.
	SourceFile string
}

// Canonical returns the pair with the lexicographically smaller gene ID
// on the A side. Symmetric duplicates collapse to the same value.
func (g GenePair) Canonical() GenePair {
	if g.GeneB < g.GeneA {
		g.GeneA, g.GeneB = g.GeneB, g.GeneA
		g.TaxonA, g.TaxonB = g.TaxonB, g.TaxonA
	}
	return g
}

// Key is a dedup key over the canonical gene pair.
func (g GenePair) Key() string {
	c := g.Canonical()
	return c.GeneA + "|" + c.GeneB
}

func (g GenePair) String() string {
	return fmt.Sprintf("%s(%s)-%s(%s)", g.GeneA, g.TaxonA, g.GeneB, g.TaxonB)
}

// PairKey builds the canonical unordered key for two QIDs. It is used
// both by the existing-fact index and by in-run dedup of emitted writes.
func PairKey(q1, q2 string) string {
	if q2 < q1 {
		q1, q2 = q2, q1
	}
	return q1 + "|" + q2
}

// OMABrowserURL returns the OMA browser page for a gene, used as the
// reference URL of written statements.
func OMABrowserURL(geneID string) string {
	return fmt.Sprintf("https://omabrowser.org/oma/vps/%s/", geneID)
}
