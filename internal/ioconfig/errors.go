package ioconfig

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/errcode"
)

func ReadConfigError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ConfigLoadError,
		Msg: `Cannot read config file <em>%s</em>.
Fix or remove the file; a fresh default is generated on the next run.`,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read config %s: %w", path, err),
	}
}

func ParseConfigError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ConfigLoadError,
		Msg:  "Cannot parse config file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot parse config %s: %w", path, err),
	}
}

// MissingCredentialsError is returned when write mode is requested
// without WDUSER/WDPASS in the environment.
func MissingCredentialsError() error {
	return &gn.Error{
		Code: errcode.MissingCredentialsError,
		Msg: `Write mode needs bot credentials.
Set <em>WDUSER</em> and <em>WDPASS</em> in the environment or in a local <em>.env</em> file.`,
		Err: fmt.Errorf("WDUSER and WDPASS must be set in write mode"),
	}
}
