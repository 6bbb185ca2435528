// Package ioconfig provides I/O operations for loading configuration from
// files, environment variables and .env credentials.
// This is an impure package that handles file system operations.
package ioconfig

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/config"
)

// Load reads configuration for the bot. Precedence (highest to lowest):
// environment variables (ORTHOBOT_*) > config.yaml > built-in defaults.
// CLI flags are applied later by the commands via config.Option values.
func Load(homeDir string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Enable environment variable overrides
	v.SetEnvPrefix("ORTHOBOT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults BEFORE reading config - this allows env vars to work
	// with AutomaticEnv() even for keys absent from the config file.
	defaults := config.New()
	v.SetDefault("wikidata.api_url", defaults.Wikidata.APIURL)
	v.SetDefault("wikidata.sparql_url", defaults.Wikidata.SparqlURL)
	v.SetDefault("wikidata.edit_summary", defaults.Wikidata.EditSummary)
	v.SetDefault("wikidata.max_retries", defaults.Wikidata.MaxRetries)
	v.SetDefault("wikidata.timeout_sec", defaults.Wikidata.TimeoutSec)
	v.SetDefault("oma.download_url", defaults.OMA.DownloadURL)
	v.SetDefault("oma.data_dir", defaults.OMA.DataDir)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.destination", defaults.Log.Destination)
	v.SetDefault("jobs_number", defaults.JobsNumber)

	configPath := config.ConfigFilePath(homeDir)
	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, ReadConfigError(configPath, err)
		}
	}

	var fileCfg config.Config
	if err := v.Unmarshal(&fileCfg); err != nil {
		return nil, ParseConfigError(configPath, err)
	}

	// Rebuild from defaults through Options so invalid values from the
	// file or environment are rejected instead of propagated.
	cfg := config.New()
	cfg.Update(fileCfg.ToOptions())
	if fileCfg.OMA.DataDir != "" {
		cfg.Update([]config.Option{config.OptOMADataDir(fileCfg.OMA.DataDir)})
	}
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	return cfg, nil
}

// LoadCredentials fills bot credentials from the environment, after
// loading a local .env file when present. Credentials are runtime-only:
// they never come from config.yaml. Matching other Wikidata bots, the
// variables are WDUSER and WDPASS.
func LoadCredentials(cfg *config.Config) {
	// A missing .env is fine; environment variables may be set directly.
	_ = godotenv.Load(".env")

	cfg.Update([]config.Option{
		config.OptWikidataUser(os.Getenv("WDUSER")),
		config.OptWikidataPassword(os.Getenv("WDPASS")),
	})
}
