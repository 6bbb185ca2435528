package iowikidata

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/errcode"
)

func SparqlQueryError(err error) error {
	return &gn.Error{
		Code: errcode.SparqlQueryError,
		Msg: `Bulk query against the Wikidata query service failed.
The service throttles heavy queries; try again later.`,
		Err: fmt.Errorf("sparql query failed: %w", err),
	}
}

func LoginError(user string, err error) error {
	return &gn.Error{
		Code: errcode.LoginError,
		Msg: `Cannot log in to Wikidata as <em>%s</em>.
Check <em>WDUSER</em> and <em>WDPASS</em>.`,
		Vars: []any{user},
		Err:  fmt.Errorf("wikidata login failed for %s: %w", user, err),
	}
}

// ClaimWriteError keeps both QIDs so a failed write can be reconciled
// manually later.
func ClaimWriteError(subjectQID, objectQID string, err error) error {
	return &gn.Error{
		Code: errcode.ClaimWriteError,
		Msg:  "Cannot write ortholog statement <em>%s → %s</em>",
		Vars: []any{subjectQID, objectQID},
		Err: fmt.Errorf("cannot write claim %s -> %s: %w",
			subjectQID, objectQID, err),
	}
}
