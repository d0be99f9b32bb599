// SPDX-License-Identifier: MIT

package raypath

import "math"

// glOrder is the number of Gauss-Legendre nodes per turning-zone panel.
const glOrder = 16

// maxPanels bounds the geometric refinement of a turning zone.
const maxPanels = 48

var glNodes, glWeights = gaussLegendre(glOrder)

// gaussLegendre returns the n nodes on [−1, 1] and their weights, found by
// Newton iteration on the Legendre polynomial P_n.
func gaussLegendre(n int) (x, w []float64) {
	x = make([]float64, n)
	w = make([]float64, n)
	for i := 0; i < (n+1)/2; i++ {
		z := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))
		var dp float64
		for iter := 0; iter < 100; iter++ {
			p0, p1 := 1.0, 0.0
			for j := 1; j <= n; j++ {
				p2 := p1
				p1 = p0
				p0 = ((2*float64(j)-1)*z*p1 - (float64(j)-1)*p2) / float64(j)
			}
			dp = float64(n) * (z*p0 - p1) / (z*z - 1)
			prev := z
			z = prev - p0/dp
			if math.Abs(z-prev) < 1e-15 {
				break
			}
		}
		x[i], x[n-1-i] = -z, z
		w[i] = 2 / ((1 - z*z) * dp * dp)
		w[n-1-i] = w[i]
	}
	return x, w
}

// panelCount returns how many halving panels the zone [0, u] needs so that
// the innermost one is below sqrt(lowest)/4, the scale on which the
// integrand varies for rays passing close to the centre.
func panelCount(lowest, u float64) int {
	if lowest < 1e-9 {
		return 1
	}
	ratio := u / math.Sqrt(lowest)
	if ratio <= 1 {
		return 1
	}
	n := 2 + int(math.Ceil(math.Log2(ratio)))
	if n > maxPanels {
		return maxPanels
	}
	return n
}
