package ioindex

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/errcode"
)

// BuildError aborts the run: writing against an incomplete index could
// duplicate existing statements.
func BuildError(err error) error {
	return &gn.Error{
		Code: errcode.IndexBuildError,
		Msg: `Cannot fetch existing ortholog statements from Wikidata.
Without a complete index the bot could write duplicates, so the run stops here.`,
		Err: fmt.Errorf("cannot build statement index: %w", err),
	}
}

func MappingFetchError(property string, err error) error {
	return &gn.Error{
		Code: errcode.MappingFetchError,
		Msg:  "Cannot fetch ID mapping for property <em>%s</em>",
		Vars: []any{property},
		Err:  fmt.Errorf("cannot fetch mapping %s: %w", property, err),
	}
}
