package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"pricewatch/internal/config"
	"pricewatch/internal/coordinator"
	"pricewatch/internal/fetcher"
	"pricewatch/internal/logger"
	"pricewatch/internal/pipeline"
	"pricewatch/internal/report"
	"pricewatch/internal/scheduler"
	"pricewatch/internal/telegram"
)

var version = "dev"

var (
	configFile string
	once       bool
	dryRun     bool
	variant    string
	noColor    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "pricewatch",
		Short:   "Post tgju.org market prices to a Telegram channel",
		Version: version,
		Long: `pricewatch downloads the tgju.org home page at a fixed interval, extracts
currency, gold and cryptocurrency quotes, and posts a formatted report to a
Telegram channel.

Configuration comes from environment variables (TELEGRAM_BOT_ID,
TELEGRAM_CHANNEL_ID, POLL_INTERVAL, ...) or a config.yaml file.`,
		Example: `  # Run forever, posting every POLL_INTERVAL
  pricewatch

  # Print a single report without sending it
  pricewatch --once --dry-run

  # Include the currency, coin and crypto tables
  pricewatch --variant tables`,
		Args:         cobra.NoArgs,
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file (default: ./config.yaml or $HOME/.pricewatch/config.yaml)")
	rootCmd.Flags().BoolVar(&once, "once", false, "run a single cycle and exit")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the report to stdout instead of sending it")
	rootCmd.Flags().StringVar(&variant, "variant", "", "report variant: trend or tables (overrides REPORT_VARIANT)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored log levels")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return err
	}
	if variant != "" {
		cfg.ReportVariant = variant
	}
	reportVariant, err := report.ParseVariant(cfg.ReportVariant)
	if err != nil {
		return err
	}
	if !dryRun {
		if err := cfg.RequireTelegram(); err != nil {
			return err
		}
	}

	l := logger.New(logger.Options{
		Level: cfg.LogLevel,
		Color: !noColor && log.IsTerminal(os.Stdout.Fd()),
	})

	// Cancel on interrupt so a running cycle can finish cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coord := newCoordinator(cfg, reportVariant, l)

	if once {
		_, err := coord.Run(ctx)
		return err
	}

	return scheduler.New(coord, cfg.PollInterval, l).Run(ctx)
}

func newCoordinator(cfg *config.Config, v report.Variant, l *log.Logger) *coordinator.Coordinator {
	pageFetcher := fetcher.NewPageFetcher(fetcher.PageConfig{
		URL:      cfg.SiteURL,
		ProxyURL: cfg.Proxy(),
		Timeout:  cfg.RequestTimeout,
	}, l)

	notifier := telegram.NewNotifier(telegram.Config{
		BaseURL:   cfg.TelegramBaseURL,
		BotToken:  cfg.TelegramBotToken,
		ChannelID: cfg.TelegramChannelID,
		ParseMode: cfg.TelegramParseMode,
		Timeout:   cfg.RequestTimeout,
		ProxyURL:  cfg.Proxy(),
	}, l)

	var opts []coordinator.Option
	if dryRun {
		opts = append(opts, coordinator.WithDryRun(os.Stdout))
	}

	l.Info().Str("variant", v.String()).Str("site", cfg.SiteURL).Bool("dry_run", dryRun).Msgf("pricewatch %s", version)

	return coordinator.New(pageFetcher, pipeline.New(v, l), notifier, l, opts...)
}
