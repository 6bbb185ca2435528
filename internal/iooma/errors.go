package iooma

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/errcode"
)

func DataDirError(dir string, err error) error {
	return &gn.Error{
		Code: errcode.DataDirError,
		Msg: `Cannot read OMA data directory <em>%s</em>.
Run <em>orthobot fetch</em> first to download the export.`,
		Vars: []any{dir},
		Err:  fmt.Errorf("cannot read data dir %s: %w", dir, err),
	}
}

func DownloadError(url string, err error) error {
	return &gn.Error{
		Code: errcode.DownloadError,
		Msg:  "Cannot download OMA export from <em>%s</em>",
		Vars: []any{url},
		Err:  fmt.Errorf("cannot download %s: %w", url, err),
	}
}

func UnzipError(path string, err error) error {
	return &gn.Error{
		Code: errcode.UnzipError,
		Msg:  "Cannot unpack OMA archive <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot unzip %s: %w", path, err),
	}
}
