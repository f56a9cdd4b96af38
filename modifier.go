//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gradex

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Modifier scales extrusion within a region, by a radial gradient
type Modifier struct {
	Name     string // Source of the region, for diagnostics
	Region   Region
	Gradient Gradient
}

// Evaluate the multiplier of the modifier at a point. Points outside the
// region, or below the minimum layer, have a multiplier of 1.0.
func (mod *Modifier) Evaluate(x, y, z float64) (mult float64) {
	mult = 1.0

	if !mod.Gradient.Active(z) {
		return
	}

	var r float64

	switch region := mod.Region.(type) {
	case *Planar:
		pt := orb.Point{x, y}
		if !region.Contains(pt) {
			return
		}
		r = planar.Distance(pt, region.Centroid)
	case *Volumetric:
		r = mgl64.Vec3{x, y, z}.Sub(region.Centroid).Len()
		if r > region.MaxRadius {
			return
		}
	default:
		return
	}

	mult = mod.Gradient.Multiplier(r, mod.Region.Radius())

	return
}

func (mod *Modifier) String() string {
	grad := &mod.Gradient
	return fmt.Sprintf("%s [%v] center %v, edge %v, exponent %v, min_layer %v",
		mod.Name, mod.Region, grad.CenterMultiplier, grad.EdgeMultiplier, grad.Exponent, grad.MinLayer)
}
