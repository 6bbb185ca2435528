package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CreateLogFileError
	WriteFileError

	// Configuration errors
	ConfigLoadError
	MissingCredentialsError

	// OMA export errors
	DownloadError
	UnzipError
	DataDirError
	LoaderReadError

	// Wikidata query errors
	SparqlQueryError
	IndexBuildError
	MappingFetchError

	// Wikidata write errors
	LoginError
	ClaimWriteError

	// Cache errors
	CacheOpenError
	CacheCodecError

	// Run log errors
	StoreOpenError
	StoreWriteError

	// Report errors
	ReportWriteError
)
