package main

import (
	"github.com/spf13/cobra"

	"augkit/internal/discovery"
	"augkit/internal/render"
	"augkit/transform"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the transform classes the profiler can track",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ms, _ := cmd.Flags().GetStringSlice("method")
			methods := transform.TrackedMethods()
			if len(ms) > 0 {
				methods = methods[:0]
				for _, m := range ms {
					methods = append(methods, transform.Method(m))
				}
			}
			return render.Classes(cmd.OutOrStdout(), discovery.Discover(transform.Default, methods))
		},
	}
	cmd.Flags().StringSlice("method", nil, "only classes defining one of these methods")
	return cmd
}
