package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/667r/INF295-Inteligencia-Artificial/src/convergence"
	"github.com/667r/INF295-Inteligencia-Artificial/src/logging"
	"github.com/667r/INF295-Inteligencia-Artificial/src/metrics"
)

func newRenderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render one convergence chart per configured instance (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}
}

func runRender(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	r, err := convergence.New(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	rep, err := r.Run(cmd.Context())
	if err != nil {
		return err
	}
	if cfg.MetricsFile != "" {
		rec := metrics.NewRecorder()
		rec.Observe(rep)
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			// metrics are a side channel; the charts are already on disk
			logging.Errorf("%v", err)
		}
	}
	if opts.strict && rep.Failed() {
		return fmt.Errorf("%w: %s", errInstancesFailed, rep)
	}
	return nil
}
