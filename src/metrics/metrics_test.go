package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/667r/INF295-Inteligencia-Artificial/src/convergence"
	"github.com/667r/INF295-Inteligencia-Artificial/src/results"
)

func sampleReport() convergence.Report {
	return convergence.Report{
		Duration: 1500 * time.Millisecond,
		Outcomes: []convergence.Outcome{
			{Instance: "a48.txt", Status: convergence.StatusRendered, Summary: results.Summary{BestProfit: 15, LastImprovement: 1}},
			{Instance: "c50.txt", Status: convergence.StatusSkipped},
			{Instance: "f72.txt", Status: convergence.StatusFailed},
		},
	}
}

func TestRecorder_Observe(t *testing.T) {
	r := NewRecorder()
	r.Observe(sampleReport())

	expected := strings.NewReader(`
        # HELP convplot_instances Number of configured instances per outcome of the last render batch
        # TYPE convplot_instances gauge
        convplot_instances{status="failed"} 1
        convplot_instances{status="rendered"} 1
        convplot_instances{status="skipped"} 1
        # HELP convplot_best_profit Best profit recorded in the convergence table of an instance
        # TYPE convplot_best_profit gauge
        convplot_best_profit{instance="a48.txt"} 15
    `)
	if err := testutil.GatherAndCompare(r.Registry(), expected, "convplot_instances", "convplot_best_profit"); err != nil {
		t.Fatalf("metrics mismatch: %v", err)
	}
	if got := testutil.ToFloat64(r.duration); got != 1.5 {
		t.Fatalf("duration = %v, want 1.5", got)
	}
}

func TestRecorder_ObserveResetsInstances(t *testing.T) {
	r := NewRecorder()
	r.Observe(sampleReport())
	r.Observe(convergence.Report{})
	if n := testutil.CollectAndCount(r.bestProfit); n != 0 {
		t.Fatalf("stale per-instance series left: %d", n)
	}
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.Observe(sampleReport())
	path := filepath.Join(t.TempDir(), "convplot.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `convplot_last_improvement_iteration{instance="a48.txt"} 1`) {
		t.Fatalf("textfile missing series:\n%s", data)
	}
	if err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
