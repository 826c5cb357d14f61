package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/667r/INF295-Inteligencia-Artificial/src/config"
	"github.com/667r/INF295-Inteligencia-Artificial/src/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// errInstancesFailed is returned in --strict mode when at least one instance failed.
var errInstancesFailed = errors.New("one or more instances failed")

type options struct {
	configPath  string
	instances   []string
	inputDir    string
	outputDir   string
	tableSuffix string
	format      string
	dpi         float64
	annotate    bool
	metricsFile string
	strict      bool
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "convplot",
		Short: "Render solver convergence charts",
		Long: "convplot reads the per-instance convergence tables written by the solver\n" +
			"(<input-dir>/<instance>.csv with Iteracion,Profit columns) and draws one\n" +
			"profit-vs-iteration chart per instance into the output directory.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.SetOutput(cmd.ErrOrStderr())
			return logging.SetLogLevel(opts.logLevel)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}
	f := root.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "Optional YAML config file (flags override it)")
	f.StringSliceVar(&opts.instances, "instances", nil, "Instances to plot, comma separated (default: eil22.txt,a48.txt,c50.txt,f72.txt,tai75A.txt)")
	f.StringVar(&opts.inputDir, "input-dir", "", "Directory holding the solver convergence tables (default results)")
	f.StringVar(&opts.outputDir, "output-dir", "", "Directory for the charts, created if missing (default graficos)")
	f.StringVar(&opts.tableSuffix, "table-suffix", "", "Suffix appended to the instance name to find its table (default .csv)")
	f.StringVar(&opts.format, "format", "", "Image format: png or svg (default png)")
	f.Float64Var(&opts.dpi, "dpi", 0, "Raster resolution for the 6x4 in figure (default 300)")
	f.BoolVar(&opts.annotate, "annotate", false, "Stamp best profit and iteration onto PNG charts")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus textfile metrics for the batch to this path")
	f.BoolVar(&opts.strict, "strict", false, "Exit non-zero when any instance fails to render (missing tables do not count)")
	f.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")

	root.AddCommand(newRenderCmd(opts), newSummaryCmd(opts))
	return root
}

// loadConfig layers defaults, the optional config file and explicitly set flags.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("instances") {
		cfg.Instances = opts.instances
	}
	if flags.Changed("input-dir") {
		cfg.InputDir = opts.inputDir
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("table-suffix") {
		cfg.TableSuffix = opts.tableSuffix
	}
	if flags.Changed("format") {
		cfg.ImageFormat = opts.format
	}
	if flags.Changed("dpi") {
		cfg.DPI = opts.dpi
	}
	if flags.Changed("annotate") {
		cfg.Annotate = opts.annotate
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	logging.Debugf("config: instances=%v input=%s output=%s format=%s dpi=%g", cfg.Instances, cfg.InputDir, cfg.OutputDir, cfg.ImageFormat, cfg.DPI)
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
