package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"steamtrader/internal/components/chrono"
	"steamtrader/internal/components/telemetry"
	"steamtrader/lib/pricestore"
	"steamtrader/lib/restyutil"
	"steamtrader/lib/steamtrader"
	"steamtrader/lib/steamtrader/web"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
	dumpHttp   *string
)

// session holds what the commands share, it is filled in by the root
// command's pre-run hook.
var session struct {
	config  Config
	tel     telemetry.API
	clock   chrono.API
	dump    restyutil.InstrumentOutput
	otel    telemetry.Telemetry
	closers []closer
}

var rootCmd = &cobra.Command{
	Use:           "steamtrader-cli",
	Short:         "steamtrader-cli reads and trades on the steam-trader.com marketplace.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initSlog(*verbose)

		config, err := loadConfig(*configPath, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		session.config = config

		session.otel, err = telemetry.Setup(cmd.Context(), "steamtrader-cli", config.Telemetry)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		session.tel = telemetry.SlogAPI{}
		if session.otel.MeterProvider != nil {
			otelAPI, err := telemetry.NewOtelAPI(session.tel)
			if err != nil {
				return err
			}
			session.tel = otelAPI
		}

		session.clock, err = chrono.NewStandardImpl(config.Timezone)
		if err != nil {
			return fmt.Errorf("load timezone: %w", err)
		}

		if *dumpHttp != "" {
			out, err := restyutil.NewFilesystemOutput(*dumpHttp)
			if err != nil {
				return fmt.Errorf("prepare http dump directory: %w", err)
			}
			session.dump = out
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		var errs []error
		for i := len(session.closers) - 1; i >= 0; i-- {
			errs = append(errs, session.closers[i]())
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		errs = append(errs, session.otel.Shutdown(ctx))
		return errors.Join(errs...)
	},
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", defaultConfigFile, "The config file to read, searched for in parent directories unless given explicitly.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug reports.")
	dumpHttp = rootCmd.PersistentFlags().String("dump-http", "", "A directory to write every http exchange to.")
}

func initSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func apiClient() (*steamtrader.Client, error) {
	cfg := session.config
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("an api key is required, set api_key in %s or STEAMTRADER_API_KEY", defaultConfigFile)
	}
	return steamtrader.NewClient(cfg.APIKey, session.tel, steamtrader.Options{
		BaseURL:           cfg.APIBaseURL,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Timeout:           cfg.timeout(),
		Retries:           cfg.Retries,
		Concurrency:       cfg.Concurrency,
		Dump:              session.dump,
	})
}

func webClient(ctx context.Context) (*web.Client, error) {
	cfg := session.config
	c, closeCache, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	session.closers = append(session.closers, closeCache)
	return web.NewClient(session.tel, web.Options{
		BaseURL:           cfg.WebBaseURL,
		SessionID:         cfg.SessionID,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Timeout:           cfg.timeout(),
		Cache:             c,
		CacheTTL:          cfg.Cache.ttl(),
		Dump:              session.dump,
	})
}

// priceStore returns ok false when no store is configured.
func priceStore(ctx context.Context) (store pricestore.Store, ok bool, err error) {
	cfg := session.config.Store
	if cfg.File == "" && cfg.URL == "" {
		return pricestore.Store{}, false, nil
	}
	db, err := cfg.OpenDB()
	if err != nil {
		return pricestore.Store{}, false, fmt.Errorf("open price store: %w", err)
	}
	session.closers = append(session.closers, db.Close)
	store, err = pricestore.NewStore(ctx, db)
	if err != nil {
		return pricestore.Store{}, false, fmt.Errorf("prepare price store: %w", err)
	}
	return store, true, nil
}
