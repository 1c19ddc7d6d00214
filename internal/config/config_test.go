package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "auto", cfg.LLM.Provider)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 4, cfg.Analysis.BatchWorkers)
	assert.Equal(t, 500, cfg.Prompts.SummaryMaxChars)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("OPENAI_API_KEY", "oai-key")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("ANALYSIS_BATCH_WORKERS", "8")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "gem-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "oai-key", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 8, cfg.Analysis.BatchWorkers)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prodsight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7000"
store:
  backend: redis
prompts:
  summary_max_chars: 200
llm:
  models:
    session_intelligence: gpt-4o
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, 200, cfg.Prompts.SummaryMaxChars)
	assert.Equal(t, map[string]string{"session_intelligence": "gpt-4o"}, cfg.LLM.Models)
}

func TestLoadConfigRejectsUnknownValues(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	_, err := LoadConfig("")
	assert.ErrorContains(t, err, "store.backend")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
