package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/667r/INF295-Inteligencia-Artificial/src/convergence"
)

func newSummaryCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print convergence statistics per instance without rendering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			outs := convergence.Summaries(cfg)
			switch format {
			case "text":
				return convergence.WriteSummaryText(cmd.OutOrStdout(), outs)
			case "latex":
				return convergence.WriteSummaryLaTeX(cmd.OutOrStdout(), outs)
			}
			return fmt.Errorf("unknown summary format %q (want text|latex)", format)
		},
	}
	cmd.Flags().StringVar(&format, "as", "text", "Output layout: text or latex")
	return cmd
}
