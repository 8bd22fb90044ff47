package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearEnv blanks every bound variable; viper treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envKeys {
		t.Setenv(env, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT_SEC", "3")
	t.Setenv("NEWSDATA_API_KEY", " news-key ")
	t.Setenv("CMC_API_KEY", "cmc-key")
	t.Setenv("LISTING_LIMIT", "20")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ALLOW_MISSING_CREDENTIALS", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, 3, cfg.Server.RequestTimeoutSec)
	require.Equal(t, "news-key", cfg.NewsData.APIKey)
	require.Equal(t, "cmc-key", cfg.CoinMarketCap.APIKey)
	require.Equal(t, 20, cfg.CoinMarketCap.ListingLimit)
	require.Equal(t, "debug", cfg.Log.Level)
	require.True(t, cfg.AllowMissingCredentials)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "cfg.json")
	body := `{"server":{"port":"7000","template_dir":"/srv/pages"},"coinmarketcap":{"api_key":"from-file","listing_limit":5}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("CMC_API_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "7000", cfg.Server.Port)
	require.Equal(t, "/srv/pages", cfg.Server.TemplateDir)
	require.Equal(t, 5, cfg.CoinMarketCap.ListingLimit)
	require.Equal(t, "from-env", cfg.CoinMarketCap.APIKey)
	require.Equal(t, "https://newsdata.io", cfg.NewsData.BaseURL)
}

func TestLoad_ExplicitMissingFileIsAnError(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "absent.json")
}

func TestLoad_ImplicitConfigJSON(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	// Without config.json the working directory contributes nothing.
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"server":{"port":"7100"}}`), 0o600))
	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, "7100", cfg.Server.Port)
}

func TestLoad_BadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate_MissingCredentials(t *testing.T) {
	cfg := Default()

	err := cfg.Validate()
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, []string{"NEWSDATA_API_KEY", "CMC_API_KEY"}, cerr.Missing)
	require.Contains(t, err.Error(), "missing NEWSDATA_API_KEY, CMC_API_KEY")

	cfg.AllowMissingCredentials = true
	require.NoError(t, cfg.Validate())

	cfg.AllowMissingCredentials = false
	cfg.NewsData.APIKey = "a"
	cfg.CoinMarketCap.APIKey = "b"
	require.NoError(t, cfg.Validate())
}

func TestValidate_FieldProblems(t *testing.T) {
	cfg := Default()
	cfg.AllowMissingCredentials = true
	cfg.Server.Port = "http"
	cfg.Server.RequestTimeoutSec = 0
	cfg.NewsData.BaseURL = "not a url"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	require.Empty(t, cerr.Missing)
	require.Len(t, cerr.Problems, 4)
}
