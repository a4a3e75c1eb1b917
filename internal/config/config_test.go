package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exile-tools/poemarket/internal/config"
	domain "github.com/exile-tools/poemarket/pkg/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
context:
  league_id: Metamorph
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://poe.ninja", cfg.Ninja.BaseURL)
	assert.Equal(t, 3, cfg.Ninja.Retry.Attempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Ninja.Retry.Delay)

	assert.Equal(t, "https://www.pathofexile.com", cfg.Trade.BaseURL)
	assert.Equal(t, 10, cfg.Trade.Fetch.BatchSize)
	assert.Equal(t, 5, cfg.Trade.Fetch.Concurrency)
	assert.Equal(t, 2.0, cfg.Trade.RateLimit.PerSecond)
	assert.Equal(t, 4, cfg.Trade.RateLimit.Burst)
	assert.Equal(t, int64(10000), cfg.Trade.RateLimit.DailyLimit)

	assert.Equal(t, "Metamorph", cfg.Context.LeagueID)
	assert.Equal(t, domain.LanguageEnglish, cfg.Context.Language)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_ExplicitValues(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
ninja:
  base_url: https://ninja.test
  retry:
    attempts: 5
    delay: 250ms
trade:
  fetch:
    batch_size: 8
    concurrency: 3
context:
  league_id: Ritual
  language: de
logging:
  level: debug
  format: json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://ninja.test", cfg.Ninja.BaseURL)
	assert.Equal(t, 5, cfg.Ninja.Retry.Attempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Ninja.Retry.Delay)
	assert.Equal(t, 8, cfg.Trade.Fetch.BatchSize)
	assert.Equal(t, 3, cfg.Trade.Fetch.Concurrency)
	assert.Equal(t, domain.LanguageGerman, cfg.Context.Language)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("POEM_TEST_LEAGUE", "Delirium")

	path := writeConfig(t, `
context:
  league_id: ${POEM_TEST_LEAGUE}
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Delirium", cfg.Context.LeagueID)
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "negative retry attempts",
			yaml: `
ninja:
  retry:
    attempts: -1
`,
			wantErr: "ninja.retry.attempts",
		},
		{
			name: "negative batch size",
			yaml: `
trade:
  fetch:
    batch_size: -2
`,
			wantErr: "trade.fetch.batch_size",
		},
		{
			name: "negative concurrency",
			yaml: `
trade:
  fetch:
    concurrency: -1
`,
			wantErr: "trade.fetch.concurrency",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, tt.yaml)
			_, err := config.Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "context: [not: a: mapping")
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config YAML")
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	assert.Equal(t, "Standard", cfg.Context.LeagueID)
	assert.Equal(t, 3, cfg.Ninja.Retry.Attempts)
	assert.Equal(t, 5, cfg.Trade.Fetch.Concurrency)
}
