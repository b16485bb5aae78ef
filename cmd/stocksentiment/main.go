// Stock headline sentiment analyzer.
//
// Fetches recent news headlines for a stock, classifies each one and prints
// a buy / avoid / neutral recommendation.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"StockSentiment/internal/app"
	"StockSentiment/internal/config"
	"StockSentiment/internal/logging"
	"StockSentiment/internal/presenter"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "stocksentiment",
	Short:        "News headline sentiment for a single stock",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			if err := os.Setenv("STOCK_SENTIMENT_CONFIG", path); err != nil {
				return fmt.Errorf("set config path: %w", err)
			}
		}
		cfg = config.Load()
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
			cfg.Classifier.Backend = backend
		}
		logger = logging.NewWithWriter(os.Stderr, cfg.Logging)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file path")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("backend", "", "classifier backend (lexicon, inference, chatgpt)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "stocksentiment %s (%s)\n", version, commit)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [stock name]",
	Short: "Classify recent headlines for a stock and print a recommendation",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.New(cfg, logger, nil)
		if err != nil {
			return err
		}
		defer application.Close()

		report, err := application.Analyze(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			cmd.SilenceErrors = true
			fmt.Fprintln(cmd.ErrOrStderr(), presenter.ErrorMessage(err))
			return err
		}
		return presenter.WriteReport(cmd.OutOrStdout(), report)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with /metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		application, err := app.New(cfg, logger, nil)
		if err != nil {
			return err
		}
		defer application.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return application.Serve(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address override")
}
