package results

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSummarize(t *testing.T) {
	tbl := &Table{
		Iterations: []float64{0, 100, 200, 300, 400},
		Profits:    []float64{200, 240, 240, 250, 245},
	}
	want := Summary{
		Rows:            5,
		FirstIteration:  0,
		LastIteration:   400,
		InitialProfit:   200,
		BestProfit:      250,
		FinalProfit:     245,
		LastImprovement: 300,
		Improvements:    2,
		GainPct:         25,
	}
	if diff := cmp.Diff(want, tbl.Summarize()); diff != "" {
		t.Fatalf("summary (-want +got):\n%s", diff)
	}
}

func TestSummarize_SingleRowAndZeroInitial(t *testing.T) {
	s := (&Table{Iterations: []float64{7}, Profits: []float64{0}}).Summarize()
	if s.Rows != 1 || s.LastImprovement != 7 || s.GainPct != 0 || s.Improvements != 0 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if got := (&Table{}).Summarize(); got.Rows != 0 {
		t.Fatalf("empty table summary: %+v", got)
	}
}

func TestSummarize_NegativeInitial(t *testing.T) {
	s := (&Table{Iterations: []float64{0, 1}, Profits: []float64{-100, -50}}).Summarize()
	if s.GainPct != 50 {
		t.Fatalf("GainPct = %v, want 50", s.GainPct)
	}
}
