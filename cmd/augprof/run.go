package main

import (
	"github.com/spf13/cobra"

	"augkit/internal/config"
	"augkit/internal/engine"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Profile a pipeline and publish the report",
		Args:  cobra.NoArgs,
		RunE:  runProfile,
	}
	f := cmd.Flags()
	f.StringP("pipeline", "p", "", "pipeline document (overrides config)")
	f.IntP("samples", "n", 0, "number of synthetic samples (overrides config)")
	f.Uint64("seed", 0, "random seed (overrides config)")
	f.StringSlice("sink", nil, "report sinks (overrides config)")
	f.StringSlice("method", nil, "tracked methods (default all)")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address until interrupted")
	f.Bool("frames", false, "print the frame tree on stdout")
	return cmd
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	f := cmd.Flags()
	if f.Changed("pipeline") {
		cfg.Pipeline, _ = f.GetString("pipeline")
	}
	if f.Changed("samples") {
		cfg.Samples, _ = f.GetInt("samples")
	}
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetUint64("seed")
	}
	if f.Changed("sink") {
		cfg.Sinks, _ = f.GetStringSlice("sink")
	}
	if f.Changed("method") {
		cfg.Methods, _ = f.GetStringSlice("method")
	}
	if f.Changed("metrics-addr") {
		cfg.Metrics.Addr, _ = f.GetString("metrics-addr")
	}
	if frames, _ := f.GetBool("frames"); frames {
		sc := cfg.SinkConfigs["stdout"]
		if sc == nil {
			sc = map[string]any{}
			cfg.SinkConfigs["stdout"] = sc
		}
		sc["frames"] = true
	}
	return cfg, nil
}

func runProfile(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	e, err := engine.Bootstrap(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer e.Close()
	return e.Run(ctx)
}
