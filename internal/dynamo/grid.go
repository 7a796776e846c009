package dynamo

import "gonum.org/v1/gonum/floats"

// Grid returns n evenly spaced points over [start, end]. The first and last
// points are exactly start and end. A single-point grid is just start.
func Grid(start, end float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{start}
	}
	g := floats.Span(make([]float64, n), start, end)
	g[0], g[n-1] = start, end
	return g
}
