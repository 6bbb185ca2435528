package iofs

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/errcode"
)

func CreateDirError(dir string, err error) error {
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot create directory <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("cannot create dir %s: %w", dir, err),
	}
}

func WriteFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  "Cannot write file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot write file %s: %w", path, err),
	}
}
