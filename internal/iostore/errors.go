package iostore

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/errcode"
)

func OpenError(path string, err error) error {
	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  "Cannot open run log database <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot open run log %s: %w", path, err),
	}
}

func WriteError(err error) error {
	return &gn.Error{
		Code: errcode.StoreWriteError,
		Msg:  "Cannot update run log database",
		Err:  fmt.Errorf("run log write: %w", err),
	}
}
