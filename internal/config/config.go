package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Server struct {
	Port              string `mapstructure:"port" json:"port" validate:"required,numeric"`
	RequestTimeoutSec int    `mapstructure:"request_timeout_sec" json:"request_timeout_sec" validate:"min=1,max=120"`
	StaticDir         string `mapstructure:"static_dir" json:"static_dir"`
	TemplateDir       string `mapstructure:"template_dir" json:"template_dir" validate:"required"`
}

type NewsData struct {
	APIKey  string `mapstructure:"api_key" json:"api_key"`
	BaseURL string `mapstructure:"base_url" json:"base_url" validate:"required,url"`
	Limit   int    `mapstructure:"limit" json:"limit" validate:"min=1,max=50"`
}

type CoinMarketCap struct {
	APIKey       string `mapstructure:"api_key" json:"api_key"`
	BaseURL      string `mapstructure:"base_url" json:"base_url" validate:"required,url"`
	ListingLimit int    `mapstructure:"listing_limit" json:"listing_limit" validate:"min=1,max=200"`
}

type Log struct {
	Level string `mapstructure:"level" json:"level" validate:"oneof=debug info warn error"`
}

type Config struct {
	Server        Server        `mapstructure:"server" json:"server"`
	NewsData      NewsData      `mapstructure:"newsdata" json:"newsdata"`
	CoinMarketCap CoinMarketCap `mapstructure:"coinmarketcap" json:"coinmarketcap"`
	Log           Log           `mapstructure:"log" json:"log"`
	// AllowMissingCredentials starts the service even when a provider key is
	// absent; the affected pipelines then answer "not configured".
	AllowMissingCredentials bool `mapstructure:"allow_missing_credentials" json:"allow_missing_credentials"`
}

func Default() Config {
	return Config{
		Server: Server{
			Port:              "8080",
			RequestTimeoutSec: 10,
			StaticDir:         "./static",
			TemplateDir:       "./static",
		},
		NewsData: NewsData{
			BaseURL: "https://newsdata.io",
			Limit:   10,
		},
		CoinMarketCap: CoinMarketCap{
			BaseURL:      "https://pro-api.coinmarketcap.com",
			ListingLimit: 12,
		},
		Log: Log{Level: "info"},
	}
}

// envKeys maps config keys to the environment variables that override them.
var envKeys = map[string]string{
	"server.port":                 "PORT",
	"server.request_timeout_sec":  "REQUEST_TIMEOUT_SEC",
	"server.static_dir":           "STATIC_DIR",
	"server.template_dir":         "TEMPLATE_DIR",
	"newsdata.api_key":            "NEWSDATA_API_KEY",
	"newsdata.base_url":           "NEWSDATA_BASE_URL",
	"newsdata.limit":              "NEWS_LIMIT",
	"coinmarketcap.api_key":       "CMC_API_KEY",
	"coinmarketcap.base_url":      "CMC_BASE_URL",
	"coinmarketcap.listing_limit": "LISTING_LIMIT",
	"log.level":                   "LOG_LEVEL",
	"allow_missing_credentials":   "ALLOW_MISSING_CREDENTIALS",
}

// Load reads config from path (JSON, YAML or TOML by extension). A path
// that does not exist is an error. If path is empty, config.json in the
// working directory is used when present.
// Environment variables override the file; defaults fill the rest.
func Load(path string) (Config, error) {
	def := Default()
	v := viper.New()
	setDefaults(v, def)
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return def, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return def, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return def, fmt.Errorf("parse config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.NewsData.APIKey = strings.TrimSpace(cfg.NewsData.APIKey)
	cfg.CoinMarketCap.APIKey = strings.TrimSpace(cfg.CoinMarketCap.APIKey)
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.request_timeout_sec", d.Server.RequestTimeoutSec)
	v.SetDefault("server.static_dir", d.Server.StaticDir)
	v.SetDefault("server.template_dir", d.Server.TemplateDir)
	v.SetDefault("newsdata.api_key", d.NewsData.APIKey)
	v.SetDefault("newsdata.base_url", d.NewsData.BaseURL)
	v.SetDefault("newsdata.limit", d.NewsData.Limit)
	v.SetDefault("coinmarketcap.api_key", d.CoinMarketCap.APIKey)
	v.SetDefault("coinmarketcap.base_url", d.CoinMarketCap.BaseURL)
	v.SetDefault("coinmarketcap.listing_limit", d.CoinMarketCap.ListingLimit)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("allow_missing_credentials", d.AllowMissingCredentials)
}

// RequestTimeout bounds every outbound provider call.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSec) * time.Second
}

// ConfigurationError lists everything wrong with a Config.
type ConfigurationError struct {
	Missing  []string
	Problems []string
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	parts = append(parts, e.Problems...)
	return "configuration: " + strings.Join(parts, "; ")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and, unless AllowMissingCredentials is
// set, that both provider keys are present. It returns a
// *ConfigurationError or nil.
func (c Config) Validate() error {
	cerr := &ConfigurationError{}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			cerr.Problems = append(cerr.Problems, fmt.Sprintf("%s fails %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}
	if !c.AllowMissingCredentials {
		if c.NewsData.APIKey == "" {
			cerr.Missing = append(cerr.Missing, "NEWSDATA_API_KEY")
		}
		if c.CoinMarketCap.APIKey == "" {
			cerr.Missing = append(cerr.Missing, "CMC_API_KEY")
		}
	}
	if len(cerr.Missing) == 0 && len(cerr.Problems) == 0 {
		return nil
	}
	return cerr
}
