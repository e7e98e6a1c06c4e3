package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"basket-pricer-go/config"
	"basket-pricer-go/feed"
	"basket-pricer-go/infrastructure/logger"
	"basket-pricer-go/metrics"
)

func newFeedCmd(cfgFile *string) *cobra.Command {
	var (
		follow bool
		delay  int
		url    string
	)
	c := &cobra.Command{
		Use:   "feed [--follow] [--delay seconds] <basket_name> | <marketdata_file>",
		Short: "Fetch quotes for the keys listed in a market data file and rewrite it",
		Long: `Fetches fresh prices for every quote key already present in the market data
file and rewrites the file under an exclusive lock.

With --follow the update is repeated every --delay seconds until interrupted.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return cmd.Usage()
			}
			path, err := resolveFeedPath(args[0])
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), err)
				return nil
			}

			cfg, err := config.LoadWithEnvOverrides(*cfgFile)
			if err != nil {
				return err
			}
			if url != "" {
				cfg.Feed.URL = url
			}
			if delay > 0 {
				cfg.Feed.DelaySeconds = delay
			}
			log, err := logger.New(cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = log.Close() }()

			srv := metrics.StartMetricsServer(cfg.Metrics.Addr, func(err error) {
				log.LogError(err, map[string]interface{}{"component": "metrics", "addr": cfg.Metrics.Addr})
			})
			if srv != nil {
				defer srv.Close()
			}

			f := &feed.Feed{
				Path:    path,
				Fetcher: feed.NewHTTPFetcher(cfg.Feed.URL, time.Duration(cfg.Feed.TimeoutSeconds)*time.Second),
				Delay:   time.Duration(cfg.Feed.DelaySeconds) * time.Second,
				Log:     log.Logger,
			}
			if !follow {
				start := time.Now()
				n, err := f.Once(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Fetch done, duration: %s, assets: %d\n", time.Since(start).Round(time.Millisecond), n)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := f.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	c.Flags().BoolVarP(&follow, "follow", "f", false, "keep fetching every --delay seconds")
	c.Flags().IntVar(&delay, "delay", 0, "seconds between updates (default from config, 60)")
	c.Flags().StringVar(&url, "url", "", "quote endpoint (default from config)")
	return c
}

// resolveFeedPath 先当作文件路径，不存在时再按 <name>.feed 查找
func resolveFeedPath(arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && info.Mode().IsRegular() {
		return arg, nil
	}
	path := arg + feedSuffix
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return path, nil
	}
	return "", fmt.Errorf("unable to find market data file referenced by name: %s", arg)
}
