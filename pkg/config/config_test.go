package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Index.Language)
	assert.Equal(t, "msgpack", cfg.Index.Format)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "docs-lifecycle", cfg.Kafka.Topics.DocLifecycle)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := []byte("index:\n  language: pt_BR\n  workers: 8\nlogging:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, body, 0o644))

	t.Setenv("SI_INDEX_ENV_VERSION", "42")
	t.Setenv("SI_KAFKA_BROKERS", "a:1,b:2")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pt_BR", cfg.Index.Language)
	assert.Equal(t, 8, cfg.Index.Workers)
	assert.Equal(t, "42", cfg.Index.EnvVersion)
	assert.Equal(t, []string{"a:1", "b:2"}, cfg.Kafka.Brokers)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched keys keep their defaults
	assert.Equal(t, "searchindex.js", cfg.Index.ArtifactName)
}

func TestLoadRepoConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "searchindex.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "language_data.js", cfg.Index.LanguageDataName)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown format", func(c *Config) { c.Index.Format = "xml" }},
		{"zero workers", func(c *Config) { c.Index.Workers = 0 }},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "s3" }},
		{"file backend without dir", func(c *Config) { c.Storage.Dir = "" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	cfg.Storage.Backend = "redis"
	cfg.Storage.Dir = ""
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
