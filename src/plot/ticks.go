package plot

import (
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// niceTicks generates about n tick marks covering [min, max] using 1/2/2.5/5 steps.
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span / step)
		if count < 2 {
			count = 2
		}
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	// the closest count may still overshoot once start/end snap outward; coarsen until it fits
	for math.Round((end-start)/bestStep)+1 > float64(n+2) {
		bestStep = coarserStep(bestStep)
		start = math.Floor(min/bestStep) * bestStep
		end = math.Ceil(max/bestStep) * bestStep
	}
	count := int(math.Round((end - start) / bestStep))
	ticks := make([]chart.Tick, 0, count+1)
	for i := 0; i <= count; i++ {
		// multiply instead of accumulating so labels don't drift (0.1+0.2...)
		v := start + float64(i)*bestStep
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v, bestStep)})
	}
	return ticks
}

// coarserStep returns the next step in the 1, 2, 2.5, 5, 10 sequence.
func coarserStep(step float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(step)))
	m := step / mag
	for _, c := range []float64{2, 2.5, 5, 10} {
		if c > m*(1+1e-6) {
			return c * mag
		}
	}
	return 20 * mag
}

// formatTick prints v with just enough decimals to tell neighbouring ticks apart.
func formatTick(v, step float64) string {
	if v == 0 || math.Abs(v) < step/1e6 {
		return "0"
	}
	decimals := 0
	if step < 1 {
		decimals = int(math.Ceil(-math.Log10(step)))
		if scaled := step * math.Pow(10, float64(decimals)); math.Abs(scaled-math.Round(scaled)) > 1e-9 {
			decimals++
		}
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// tickRange returns the continuous range spanned by ticks.
func tickRange(ticks []chart.Tick) chart.Range {
	if len(ticks) == 0 {
		return nil
	}
	return &chart.ContinuousRange{Min: ticks[0].Value, Max: ticks[len(ticks)-1].Value}
}
