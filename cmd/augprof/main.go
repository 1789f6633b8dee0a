package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"augkit/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "augprof",
		Short:         "Profile augmentation pipelines",
		Long:          `augprof instruments every registered transform class, runs a pipeline over synthetic samples and reports per-class call latency.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "augprof.yml", "config file (missing file means defaults)")
	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	return root
}

func main() {
	logging.InitFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.L().Error("augprof", "err", err)
		stop()
		os.Exit(1)
	}
}
