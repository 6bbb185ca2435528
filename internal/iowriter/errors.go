package iowriter

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/errcode"
)

func ReportWriteError(err error) error {
	return &gn.Error{
		Code: errcode.ReportWriteError,
		Msg:  "Cannot write dry-run report",
		Err:  fmt.Errorf("cannot write report: %w", err),
	}
}
