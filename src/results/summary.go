package results

// Summary condenses a convergence history into the figures reported per instance.
type Summary struct {
	Rows            int
	FirstIteration  float64
	LastIteration   float64
	InitialProfit   float64
	BestProfit      float64
	FinalProfit     float64
	LastImprovement float64 // iteration at which the best profit was last raised
	Improvements    int
	GainPct         float64
}

// Summarize computes the convergence summary. The table must hold at least one row, which
// ReadTable guarantees.
func (t *Table) Summarize() Summary {
	s := Summary{Rows: t.Len()}
	if s.Rows == 0 {
		return s
	}
	s.FirstIteration = t.Iterations[0]
	s.LastIteration = t.Iterations[s.Rows-1]
	s.InitialProfit = t.Profits[0]
	s.FinalProfit = t.Profits[s.Rows-1]
	s.BestProfit = t.Profits[0]
	s.LastImprovement = t.Iterations[0]
	for i := 1; i < s.Rows; i++ {
		if t.Profits[i] > s.BestProfit {
			s.BestProfit = t.Profits[i]
			s.LastImprovement = t.Iterations[i]
			s.Improvements++
		}
	}
	if s.InitialProfit != 0 {
		s.GainPct = (s.BestProfit - s.InitialProfit) / abs(s.InitialProfit) * 100
	}
	return s
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
