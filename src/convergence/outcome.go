package convergence

import (
	"fmt"
	"time"

	"github.com/667r/INF295-Inteligencia-Artificial/src/results"
)

// Status is the per-instance result of a batch run.
type Status int

const (
	StatusRendered Status = iota
	StatusSkipped
	StatusFailed
	// StatusRead marks a table that was parsed for a summary; no image is involved.
	StatusRead
)

func (s Status) String() string {
	switch s {
	case StatusRendered:
		return "rendered"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	case StatusRead:
		return "read"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome describes what happened to one configured instance.
type Outcome struct {
	Instance  string
	Status    Status
	TablePath string
	// ImagePath is set only for rendered instances.
	ImagePath string
	Summary   results.Summary
	Err       error
	Elapsed   time.Duration
}

// Notice is the console line reported for the outcome.
func (o Outcome) Notice() string {
	switch o.Status {
	case StatusRendered:
		return fmt.Sprintf("Generado: %s", imageBase(o.ImagePath))
	case StatusRead:
		return fmt.Sprintf("Leido: %s", o.TablePath)
	case StatusSkipped:
		return fmt.Sprintf("Falta archivo CSV para: %s. Ejecuta el solver primero.", o.Instance)
	default:
		return fmt.Sprintf("Error en %s: %v", o.Instance, o.Err)
	}
}

// Report aggregates the outcomes of one run, in configured order.
type Report struct {
	Outcomes []Outcome
	Duration time.Duration
}

// Count returns how many instances ended with status s.
func (r Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Failed reports whether any instance failed to render. Missing tables do not count.
func (r Report) Failed() bool { return r.Count(StatusFailed) > 0 }

func (r Report) String() string {
	return fmt.Sprintf("%d rendered, %d skipped, %d failed in %s",
		r.Count(StatusRendered), r.Count(StatusSkipped), r.Count(StatusFailed), r.Duration.Round(time.Millisecond))
}
