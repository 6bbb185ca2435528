package iocache

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/errcode"
)

func OpenError(dir string, err error) error {
	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg: `Cannot use mapping cache at <em>%s</em>.
Remove the directory to rebuild it.`,
		Vars: []any{dir},
		Err:  fmt.Errorf("mapping cache at %s: %w", dir, err),
	}
}

func NotOpenError() error {
	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  "Mapping cache is not open",
		Err:  fmt.Errorf("mapping cache is not open"),
	}
}

func CodecError(property string, err error) error {
	return &gn.Error{
		Code: errcode.CacheCodecError,
		Msg:  "Cannot encode or decode cached mapping for <em>%s</em>",
		Vars: []any{property},
		Err:  fmt.Errorf("mapping cache codec for %s: %w", property, err),
	}
}
