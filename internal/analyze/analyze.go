// Package analyze provides read-only batch statistics: the histograms the
// review workflow looks at, and the temporal-correlation check that guards
// against difficulty trends leaking into the live-date sequence.
package analyze

import "math"

// Pearson computes the Pearson correlation coefficient between two equal
// length series. Returns 0 for degenerate input (short series or zero
// variance).
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}
