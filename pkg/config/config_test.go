package config_test

import (
	"path/filepath"
	"testing"

	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "orthobot"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "orthobot"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "orthobot", "logs"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "orthobot", "oma"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "https://www.wikidata.org/w/api.php", cfg.Wikidata.APIURL)
		assert.Equal(t, "https://query.wikidata.org/sparql", cfg.Wikidata.SparqlURL)
		assert.Equal(t, 5, cfg.Wikidata.MaxRetries)
		assert.Equal(t, 300, cfg.Wikidata.TimeoutSec)
		assert.Contains(t, cfg.Wikidata.EditSummary, "OMA")

		assert.Contains(t, cfg.OMA.DownloadURL, "bgee.org")
		assert.Empty(t, cfg.OMA.DataDir)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		// Writes are sequential unless asked otherwise
		assert.Equal(t, 1, cfg.JobsNumber)

		// Dry-run by default, credentials unset
		assert.False(t, cfg.Run.Write)
		assert.Empty(t, cfg.Wikidata.User)
		assert.Empty(t, cfg.Wikidata.Password)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("applies valid options", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptWikidataUser("OrthoBot"),
			config.OptWikidataPassword("secret"),
			config.OptJobsNumber(8),
			config.OptLogLevel("debug"),
			config.OptRunWrite(true),
			config.OptRunTaxa([]string{"9606", "10090"}),
		})

		assert.Equal(t, "OrthoBot", cfg.Wikidata.User)
		assert.Equal(t, "secret", cfg.Wikidata.Password)
		assert.Equal(t, 8, cfg.JobsNumber)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.True(t, cfg.Run.Write)
		assert.Equal(t, []string{"9606", "10090"}, cfg.Run.Taxa)
	})

	t.Run("rejects invalid options, keeps config valid", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptJobsNumber(-1),
			config.OptLogLevel("chatty"),
			config.OptWikidataAPIURL("  "),
		})

		assert.Equal(t, 1, cfg.JobsNumber)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "https://www.wikidata.org/w/api.php", cfg.Wikidata.APIURL)
	})
}

func TestToOptions(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptJobsNumber(4),
		config.OptLogFormat("text"),
		config.OptWikidataUser("OrthoBot"),
		config.OptRunWrite(true),
	})

	clone := config.New()
	clone.Update(cfg.ToOptions())

	// Persistent fields round-trip
	assert.Equal(t, 4, clone.JobsNumber)
	assert.Equal(t, "text", clone.Log.Format)

	// Runtime-only fields do not
	assert.Empty(t, clone.Wikidata.User)
	assert.False(t, clone.Run.Write)
}

func TestOMADir(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/bot")})
	assert.Equal(t,
		filepath.Join("/home/bot", ".local", "share", "orthobot", "oma"),
		cfg.OMADir())

	cfg.Update([]config.Option{config.OptOMADataDir("/data/oma")})
	assert.Equal(t, "/data/oma", cfg.OMADir())
}
