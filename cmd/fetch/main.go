// Command fetch runs one page pipeline against the live providers and
// prints the rendered HTML fragment. It is a debugging aid; the server is
// what serves pages.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cryptodigest/internal/config"
	"cryptodigest/internal/digest"
	"cryptodigest/internal/httpx"
	"cryptodigest/internal/logger"
	"cryptodigest/internal/provider/coinmarketcap"
	"cryptodigest/internal/provider/newsdata"
	"cryptodigest/internal/render"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// fragmentStore makes Document return the bare fragment.
var fragmentStore = render.MapStore{
	render.NewsPage.File:   render.NewsPage.Placeholder,
	render.InfoPage.File:   render.InfoPage.Placeholder,
	render.PricesPage.File: render.PricesPage.Placeholder,
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		symbol     string
		timeout    int
		logLevel   string
	)

	root := &cobra.Command{
		Use:          "fetch",
		Short:        "Fetch and render one page fragment from the live providers",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to a config file (optional)")
	root.PersistentFlags().StringVarP(&symbol, "symbol", "s", "", "coin ticker, e.g. BTC")
	root.PersistentFlags().IntVar(&timeout, "timeout", 0, "request timeout in seconds (overrides config)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	build := func() (*digest.Service, error) {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("dotenv: %w", err)
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		if timeout > 0 {
			cfg.Server.RequestTimeoutSec = timeout
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		log := logger.NewConsole(cfg.Log.Level)

		hc := httpx.New(cfg.RequestTimeout())
		dcfg := digest.Config{
			Renderer:  render.New(fragmentStore, render.WithLogger(log)),
			Timeout:   cfg.RequestTimeout(),
			NewsLimit: cfg.NewsData.Limit,
			Log:       log,
		}
		if cfg.NewsData.APIKey != "" {
			dcfg.News = newsdata.New(cfg.NewsData.APIKey,
				newsdata.WithBaseURL(cfg.NewsData.BaseURL),
				newsdata.WithHTTPClient(hc))
		}
		if cfg.CoinMarketCap.APIKey != "" {
			dcfg.Market = coinmarketcap.New(cfg.CoinMarketCap.APIKey,
				coinmarketcap.WithBaseURL(cfg.CoinMarketCap.BaseURL),
				coinmarketcap.WithHTTPClient(hc),
				coinmarketcap.WithListingLimit(cfg.CoinMarketCap.ListingLimit))
		}
		return digest.New(dcfg), nil
	}

	pages := []struct {
		use, short string
		run        func(s *digest.Service, ctx context.Context, symbol string) (string, error)
	}{
		{"news", "Latest news, optionally for --symbol", (*digest.Service).News},
		{"info", "Coin info for --symbol", (*digest.Service).Info},
		{"prices", "Top listing, or one quote for --symbol", (*digest.Service).Prices},
	}
	for _, p := range pages {
		root.AddCommand(&cobra.Command{
			Use:   p.use,
			Short: p.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				svc, err := build()
				if err != nil {
					return err
				}
				out, err := p.run(svc, cmd.Context(), symbol)
				if err != nil {
					return fmt.Errorf("%s: %s", p.use, digest.Classify(err))
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			},
		})
	}
	return root
}
