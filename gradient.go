//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gradex

import (
	"math"
)

const (
	DefaultGradientExponent = 1.0
	DefaultMinLayer         = 0.0
)

// Gradient describes how a multiplier falls off from the centre of a
// region to its edge.
type Gradient struct {
	CenterMultiplier float64 // Multiplier at radius 0
	EdgeMultiplier   float64 // Multiplier at the maximum radius
	Exponent         float64 // Shape of the falloff, 1.0 is linear
	MinLayer         float64 // Lowest Z (mm) the gradient applies to
}

// Active reports if the gradient applies at height z
func (grad *Gradient) Active(z float64) bool {
	return z >= grad.MinLayer
}

// Multiplier at radius r of a region whose radius is rmax
func (grad *Gradient) Multiplier(r, rmax float64) (mult float64) {
	normalized := 0.0
	if rmax > 0 {
		normalized = math.Min(math.Max(r/rmax, 0.0), 1.0)
	}
	normalized = math.Pow(normalized, grad.Exponent)

	mult = grad.CenterMultiplier - (grad.CenterMultiplier-grad.EdgeMultiplier)*normalized

	return
}
