package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"basket-pricer-go/config"
	"basket-pricer-go/infrastructure/logger"
	"basket-pricer-go/metrics"
	"basket-pricer-go/pricer"
	"basket-pricer-go/watch"
)

const (
	basketSuffix = ".basket"
	feedSuffix   = ".feed"
)

// NewRootCmd 构建 basketpricer 命令
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		follow  bool
	)
	root := &cobra.Command{
		Use:   "basketpricer [--follow] <basket_name> | <basket_file> <marketdata_file>",
		Short: "Value a basket of holdings against a market data file",
		Long: `Values a basket of holdings against a market data (quote) file.

Parameters:
   basket_name      basket definition and market data file are expected in
                    <current_dir>/<basket_name>.basket and <current_dir>/<basket_name>.feed
   basket_file      basket definition file
   marketdata_file  market data file

With --follow the program runs until interrupted and revaluates the basket
whenever the basket or market data file changes.`,
		// 根命令带有子命令，不声明 Args 时 cobra 会把位置参数当作未知子命令
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			basketPath, quotePath, ok := resolvePaths(args)
			if !ok {
				return cmd.Usage()
			}
			return run(cmd, cfgFile, basketPath, quotePath, follow)
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "YAML config file (optional)")
	root.Flags().BoolVarP(&follow, "follow", "f", false, "watch basket and market data files and revaluate on change")
	root.AddCommand(newFeedCmd(&cfgFile))
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// resolvePaths 一个参数按名称拼后缀，两个参数为显式路径，其余无效。
func resolvePaths(args []string) (basketPath, quotePath string, ok bool) {
	switch len(args) {
	case 1:
		return args[0] + basketSuffix, args[0] + feedSuffix, true
	case 2:
		return args[0], args[1], true
	default:
		return "", "", false
	}
}

func run(cmd *cobra.Command, cfgFile, basketPath, quotePath string, follow bool) error {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return err
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

	r, err := pricer.BuildRunner(cfg, basketPath, quotePath, cmd.OutOrStdout(), log)
	if err != nil {
		return err
	}
	if _, err := r.Revaluate(cmd.Context()); err != nil {
		return err
	}
	if !follow {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = r.Follow(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		return nil
	case errors.Is(err, watch.ErrSubscriptionLost):
		// 只结束监听，不以异常状态退出
		log.Error("follow mode ended", zap.Error(err))
		return nil
	}
	return err
}
