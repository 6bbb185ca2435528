// Package config provides configuration management for the orthologs bot.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Wikidata: api_url, sparql_url, edit_summary, max_retries, timeout_sec
//   - OMA: download_url
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags and env credentials only):
//   - Wikidata.User, Wikidata.Password (WDUSER/WDPASS, never persisted)
//   - Run.* (per-command flags)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use ORTHOBOT_ prefix with underscores for nesting:
//
//	ORTHOBOT_WIKIDATA_API_URL=https://www.wikidata.org/w/api.php
//	ORTHOBOT_WIKIDATA_MAX_RETRIES=5
//	ORTHOBOT_LOG_LEVEL=info
//	ORTHOBOT_JOBS_NUMBER=4
//
// Bot credentials come from WDUSER and WDPASS (or a local .env file),
// matching the conventions of other Wikidata bots.
package config

// Config represents the complete orthologs bot configuration.
type Config struct {
	// Wikidata contains endpoints and write settings for the Wikidata API.
	Wikidata WikidataConfig `mapstructure:"wikidata" yaml:"wikidata"`

	// OMA contains settings for the OMA ortholog export.
	OMA OMAConfig `mapstructure:"oma" yaml:"oma"`

	// Run contains settings specific to a single `orthobot run` invocation.
	Run RunConfig `mapstructure:"-" yaml:"-"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel writes.
	// Default is 1 (sequential) to stay polite to the Wikidata API.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache, data and logs directories
	// reside. It must be set by CLI during init, there is no default for it.
	HomeDir string
}

// WikidataConfig contains Wikidata endpoint and write parameters.
type WikidataConfig struct {
	// APIURL is the MediaWiki action API endpoint used for login and writes.
	APIURL string `mapstructure:"api_url" yaml:"api_url"`

	// SparqlURL is the WDQS endpoint used for bulk statement queries.
	SparqlURL string `mapstructure:"sparql_url" yaml:"sparql_url"`

	// EditSummary is attached to every statement written by the bot.
	EditSummary string `mapstructure:"edit_summary" yaml:"edit_summary"`

	// MaxRetries bounds retry attempts for transient API failures.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`

	// TimeoutSec is the per-request HTTP timeout in seconds. Bulk SPARQL
	// queries over a full property can take minutes, so keep it generous.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// User is the bot account name. Comes from WDUSER, never from config.yaml.
	User string `mapstructure:"-" yaml:"-"`

	// Password is the bot password. Comes from WDPASS, never from config.yaml.
	Password string `mapstructure:"-" yaml:"-"`
}

// OMAConfig contains settings for the OMA flat-file export.
type OMAConfig struct {
	// DownloadURL is where `orthobot fetch` gets the zipped export.
	DownloadURL string `mapstructure:"download_url" yaml:"download_url"`

	// DataDir overrides the default location of decompressed export files.
	// Empty means DataDir(HomeDir).
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
}

// RunConfig contains per-invocation settings of the run command.
// All fields are runtime-only and set from CLI flags.
type RunConfig struct {
	// Write enables write mode. Default is dry-run (CSV report only).
	Write bool

	// Output is the dry-run CSV report path.
	Output string

	// Taxa restricts processing to export files whose filename taxa are
	// all in this list. Empty means process every file.
	Taxa []string

	// ValidateRefs enables HEAD-checking of OMA browser reference URLs.
	ValidateRefs bool

	// RefreshMappings bypasses the local mapping cache and re-queries
	// Wikidata for gene and taxon ID mappings.
	RefreshMappings bool
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Wikidata: WikidataConfig{
			APIURL:      "https://www.wikidata.org/w/api.php",
			SparqlURL:   "https://query.wikidata.org/sparql",
			EditSummary: "Add orthologs from OMA (Orthologous MAtrix) database",
			MaxRetries:  5,
			TimeoutSec:  300,
		},
		OMA: OMAConfig{
			DownloadURL: "https://www.bgee.org/ftp/current/homologous_genes/OMA_orthologs.zip",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		// Writes go to a shared remote API, so default to sequential.
		JobsNumber: 1,
	}
	return res
}
