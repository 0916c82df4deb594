// Command reporter serves the Mayflower Reporter case search: it loads the
// published JSON case index and exposes the search and citator views over
// HTTP, plus a one-shot search subcommand for the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/krabzholder/mayflower-reporter/internal/config"
	"github.com/krabzholder/mayflower-reporter/internal/index"
	"github.com/krabzholder/mayflower-reporter/internal/metrics"
	"github.com/krabzholder/mayflower-reporter/internal/search"
	"github.com/krabzholder/mayflower-reporter/internal/web"
)

var (
	cfgPath string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "reporter",
	Short: "Mayflower Reporter case search service",
	Long: `reporter serves the Mayflower District Court's published rulings:
a search box over the case index and a citator listing ordered by official
citation. The index itself is produced by the publishing pipeline and read
here as-is.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search and citator views over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		cli := index.NewClient(cfg.SiteBaseURL, cfg.IndexPath, cfg.FetchTimeoutDuration())
		snap := index.NewSnapshot(cli, logger)

		reg := prometheus.NewRegistry()
		m := metrics.New(reg)

		// Boot load. A failed fetch leaves the empty fallback in place and
		// the server comes up anyway; /api/refresh retries wholesale.
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.FetchTimeoutDuration()+time.Minute)
		loadErr := snap.Load(ctx)
		cancel()
		m.ObserveIndexLoad(loadErr, len(snap.Cases()))

		srv, err := web.New(snap, cfg.SiteBaseURL, logger, m, reg)
		if err != nil {
			return err
		}

		httpSrv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
		logger.Info("reporter listening",
			zap.String("addr", cfg.Addr),
			zap.String("site", cfg.SiteBaseURL),
			zap.Int("cases", len(snap.Cases())),
		)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-quit:
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run one query against the live case index",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		cli := index.NewClient(cfg.SiteBaseURL, cfg.IndexPath, cfg.FetchTimeoutDuration())
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.FetchTimeoutDuration())
		defer cancel()
		cases, fetchErr := cli.Fetch(ctx)
		if fetchErr != nil {
			logger.Warn("index load failed, searching empty index", zap.Error(fetchErr))
		}
		cases = index.Fallback(cases, fetchErr)

		res := search.Filter(cases, strings.Join(args, " "))
		switch res.State {
		case search.StateCleared:
			return nil
		case search.StateNoMatch:
			fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
			return nil
		}
		for _, c := range res.Cases {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", c.Title, c.ReporterCite, c.Judge, c.Docket)
		}
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd, searchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
