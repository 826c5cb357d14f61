// Package convergence renders one convergence chart per configured instance.
package convergence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/667r/INF295-Inteligencia-Artificial/src/config"
	"github.com/667r/INF295-Inteligencia-Artificial/src/logging"
	"github.com/667r/INF295-Inteligencia-Artificial/src/plot"
	"github.com/667r/INF295-Inteligencia-Artificial/src/results"
)

// errMissingTable marks an instance whose table has not been produced yet.
var errMissingTable = errors.New("result table not found")

// Renderer walks the configured instances in order. It holds no state between instances.
type Renderer struct {
	cfg     config.Config
	notices io.Writer
}

// New validates cfg and returns a renderer printing one notice per instance to notices
// (io.Discard when nil).
func New(cfg config.Config, notices io.Writer) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if notices == nil {
		notices = io.Discard
	}
	return &Renderer{cfg: cfg, notices: notices}, nil
}

// Run creates the output directory and renders every instance. Per-instance failures are
// recorded in the report; the returned error is reserved for failures that stop the batch
// (output directory, cancellation). On cancellation the report holds the instances done so far.
func (r *Renderer) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	defer logging.TimeTrack(start, "render batch")
	var rep Report
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return rep, fmt.Errorf("create output dir: %w", err)
	}
	for _, name := range r.cfg.Instances {
		if err := ctx.Err(); err != nil {
			rep.Duration = time.Since(start)
			return rep, err
		}
		o := r.RenderInstance(name)
		rep.Outcomes = append(rep.Outcomes, o)
		fmt.Fprintln(r.notices, o.Notice())
	}
	rep.Duration = time.Since(start)
	logging.Infof("convergence charts: %s", rep)
	return rep, nil
}

// RenderInstance renders a single instance. The output directory must already exist.
func (r *Renderer) RenderInstance(name string) (o Outcome) {
	start := time.Now()
	o = Outcome{Instance: name, TablePath: r.cfg.TablePath(name)}
	defer func() { o.Elapsed = time.Since(start) }()

	tbl, err := loadTable(r.cfg, o.TablePath)
	switch {
	case errors.Is(err, errMissingTable):
		logging.Debugf("%s: no table at %s", name, o.TablePath)
		o.Status = StatusSkipped
		return o
	case err != nil:
		o.Status, o.Err = StatusFailed, err
		logging.Debugf("%s: %v", name, err)
		return o
	}
	o.Summary = tbl.Summarize()

	var buf bytes.Buffer
	if err := plot.RenderConvergence(&buf, name, tbl, r.plotOptions()); err != nil {
		o.Status, o.Err = StatusFailed, err
		return o
	}
	imagePath := filepath.Join(r.cfg.OutputDir, r.cfg.ImageName(name))
	if err := os.WriteFile(imagePath, buf.Bytes(), 0o644); err != nil {
		o.Status, o.Err = StatusFailed, fmt.Errorf("write %s: %w", imagePath, err)
		return o
	}
	o.Status, o.ImagePath = StatusRendered, imagePath
	logging.Debugf("%s: %d rows, best=%.2f -> %s (%d bytes)", name, o.Summary.Rows, o.Summary.BestProfit, imagePath, buf.Len())
	return o
}

func (r *Renderer) plotOptions() plot.Options {
	w, h := r.cfg.PixelSize()
	return plot.Options{
		Format:   r.cfg.ImageFormat,
		Width:    w,
		Height:   h,
		DPI:      r.cfg.DPI,
		Annotate: r.cfg.Annotate,
	}
}

// loadTable distinguishes an absent table (errMissingTable) from one that cannot be read.
func loadTable(cfg config.Config, path string) (*results.Table, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errMissingTable
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return results.ReadTable(path, results.Columns{
		Iteration: cfg.IterationColumn,
		Profit:    cfg.ProfitColumn,
		Delimiter: cfg.DelimiterRune(),
	})
}

func imageBase(path string) string { return filepath.Base(path) }
