package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptWikidataAPIURL sets the MediaWiki action API endpoint.
func OptWikidataAPIURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Wikidata API URL", s) {
			c.Wikidata.APIURL = s
		}
	}
}

// OptWikidataSparqlURL sets the WDQS SPARQL endpoint.
func OptWikidataSparqlURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Wikidata SPARQL URL", s) {
			c.Wikidata.SparqlURL = s
		}
	}
}

// OptWikidataEditSummary sets the edit summary attached to writes.
func OptWikidataEditSummary(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Edit Summary", s) {
			c.Wikidata.EditSummary = s
		}
	}
}

// OptWikidataMaxRetries sets the retry limit for transient API failures.
func OptWikidataMaxRetries(i int) Option {
	return func(c *Config) {
		if isValidInt("Max Retries", i) {
			c.Wikidata.MaxRetries = i
		}
	}
}

// OptWikidataTimeoutSec sets the per-request HTTP timeout in seconds.
func OptWikidataTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Timeout", i) {
			c.Wikidata.TimeoutSec = i
		}
	}
}

// OptWikidataUser sets the bot account name.
// Runtime-only field - comes from WDUSER, not in ToOptions().
func OptWikidataUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s != "" {
			c.Wikidata.User = s
		}
	}
}

// OptWikidataPassword sets the bot password.
// Runtime-only field - comes from WDPASS, not in ToOptions().
func OptWikidataPassword(s string) Option {
	return func(c *Config) {
		if s != "" {
			c.Wikidata.Password = s
		}
	}
}

// OptOMADownloadURL sets the URL of the zipped OMA export.
func OptOMADownloadURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("OMA Download URL", s) {
			c.OMA.DownloadURL = s
		}
	}
}

// OptOMADataDir overrides the location of decompressed export files.
// Runtime-only field - not in ToOptions().
func OptOMADataDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s != "" {
			c.OMA.DataDir = s
		}
	}
}

// OptRunWrite enables write mode instead of the dry-run CSV report.
// Runtime-only field - not in ToOptions().
func OptRunWrite(b bool) Option {
	return func(c *Config) {
		c.Run.Write = b
	}
}

// OptRunOutput sets the dry-run CSV report path.
// Runtime-only field - not in ToOptions().
func OptRunOutput(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s != "" {
			c.Run.Output = s
		}
	}
}

// OptRunTaxa restricts processing to the given NCBI taxon IDs.
// Runtime-only field - not in ToOptions().
func OptRunTaxa(tt []string) Option {
	return func(c *Config) {
		if len(tt) > 0 {
			c.Run.Taxa = tt
		}
	}
}

// OptRunValidateRefs enables HEAD-checking of OMA reference URLs.
// Runtime-only field - not in ToOptions().
func OptRunValidateRefs(b bool) Option {
	return func(c *Config) {
		c.Run.ValidateRefs = b
	}
}

// OptRunRefreshMappings bypasses the local mapping cache.
// Runtime-only field - not in ToOptions().
func OptRunRefreshMappings(b bool) Option {
	return func(c *Config) {
		c.Run.RefreshMappings = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel writes.
// Default is 1 (sequential).
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
