// Package wikidata defines the contract between the pipeline and the
// Wikidata backend, plus the property and item identifiers the bot relies on.
// Implementations live in internal/iowikidata.
package wikidata

import (
	"context"
)

// Wikidata properties used by the bot.
const (
	// PropOrtholog is "ortholog" (P684), the statement the bot writes.
	PropOrtholog = "P684"
	// PropEnsemblGeneID is "Ensembl gene ID" (P594), the external gene
	// identifier used by the OMA export.
	PropEnsemblGeneID = "P594"
	// PropNCBITaxonID is "NCBI taxonomy ID" (P685).
	PropNCBITaxonID = "P685"
	// PropFoundInTaxon is "found in taxon" (P703), a qualifier on writes.
	PropFoundInTaxon = "P703"
	// PropStatedIn is "stated in" (P248), part of the reference block.
	PropStatedIn = "P248"
	// PropReferenceURL is "reference URL" (P854), part of the reference block.
	PropReferenceURL = "P854"
)

// ItemOMA is the Wikidata item of the OMA database (Q7104801),
// used as the "stated in" value of every reference the bot adds.
const ItemOMA = "Q7104801"

// Claim describes one ortholog statement to add, together with its
// reference block and found-in-taxon qualifier.
type Claim struct {
	// SubjectQID is the item the statement is added to.
	SubjectQID string
	// Property is the statement property, normally PropOrtholog.
	Property string
	// ObjectQID is the statement value.
	ObjectQID string
	// ReferenceURL points to the OMA browser page backing the statement.
	ReferenceURL string
	// StatedInQID identifies the source database, normally ItemOMA.
	StatedInQID string
	// TaxonQID is the found-in-taxon qualifier value (taxon of the object
	// gene). Empty means no qualifier is added.
	TaxonQID string
	// Summary is the edit summary for the write.
	Summary string
}

// Client is the boundary to the Wikidata backend. The pipeline treats it
// as an opaque RPC dependency; retry policy for transient failures is the
// implementation's responsibility.
type Client interface {
	// IDMap bulk-fetches all (external id, item) pairs for a property,
	// e.g. every Ensembl gene ID known to Wikidata. The returned map is
	// keyed by external ID with QID values.
	IDMap(ctx context.Context, property string) (map[string]string, error)

	// PropertyPairs bulk-fetches all (subject, object) item pairs holding
	// a statement of the given property. Used to build the existing-fact
	// index for PropOrtholog.
	PropertyPairs(ctx context.Context, property string) ([][2]string, error)

	// Login authenticates the bot account. Required before CreateClaim.
	Login(ctx context.Context, user, password string) error

	// CreateClaim adds one statement with its reference block and
	// qualifier. Transient failures are retried internally; an error means
	// retries were exhausted or the failure is permanent.
	CreateClaim(ctx context.Context, claim Claim) error

	// CheckURL reports whether a reference URL responds successfully.
	CheckURL(ctx context.Context, url string) bool
}

// NumericID converts a QID like "Q14818098" to its numeric part.
// Returns 0 for malformed identifiers.
func NumericID(qid string) int64 {
	if len(qid) < 2 || (qid[0] != 'Q' && qid[0] != 'P') {
		return 0
	}
	var n int64
	for _, r := range qid[1:] {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int64(r-'0')
	}
	return n
}
