//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gradex

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const (
	// DefaultSamples is the number of points averaged along a move
	DefaultSamples = 5

	// DegenerateLength is the move length (mm) below which a move is
	// evaluated as a single point.
	DegenerateLength = 1e-6
)

// ModifierSet composes modifiers multiplicatively. It is not modified
// after construction, and may be shared between goroutines.
type ModifierSet struct {
	Modifiers []*Modifier
	Samples   int // Points sampled along a move
}

func NewModifierSet(mods ...*Modifier) (set *ModifierSet) {
	set = &ModifierSet{
		Modifiers: mods,
		Samples:   DefaultSamples,
	}

	return
}

// Len is the number of modifiers in the set
func (set *ModifierSet) Len() int {
	if set == nil {
		return 0
	}
	return len(set.Modifiers)
}

// Point is the product of every modifier's multiplier at a point
func (set *ModifierSet) Point(x, y, z float64) (mult float64) {
	mult = 1.0
	if set == nil {
		return
	}

	for _, mod := range set.Modifiers {
		mult *= mod.Evaluate(x, y, z)
	}

	return
}

// Inside reports if the XY point lies in the union of planar modifiers
// active at height z. With no active planar modifiers, every point is
// inside.
func (set *ModifierSet) Inside(pt orb.Point, z float64) (inside bool) {
	inside = true
	if set == nil {
		return
	}

	for _, mod := range set.Modifiers {
		region, ok := mod.Region.(*Planar)
		if !ok || !mod.Gradient.Active(z) {
			continue
		}
		if region.Contains(pt) {
			return true
		}
		inside = false
	}

	return
}

// Segment is the effective multiplier along a move from start to end at
// height z. Moves which cross the boundary of the planar modifiers get a
// multiplier of exactly 1.0; all others get the mean multiplier of
// evenly spaced interior samples.
func (set *ModifierSet) Segment(start, end orb.Point, z float64) (mult float64) {
	if set.Inside(start, z) != set.Inside(end, z) {
		mult = 1.0
		return
	}

	samples := DefaultSamples
	if set != nil && set.Samples > 0 {
		samples = set.Samples
	}

	total := 0.0
	for n := 0; n < samples; n++ {
		frac := (float64(n) + 0.5) / float64(samples)
		x := start[0] + (end[0]-start[0])*frac
		y := start[1] + (end[1]-start[1])*frac
		total += set.Point(x, y, z)
	}

	mult = total / float64(samples)

	return
}

// Move is the multiplier applied to the extrusion of a move. Moves
// shorter than DegenerateLength use the multiplier at their end point.
func (set *ModifierSet) Move(start, end orb.Point, z float64) (mult float64) {
	if planar.Distance(start, end) < DegenerateLength {
		mult = set.Point(end[0], end[1], z)
		return
	}

	mult = set.Segment(start, end, z)

	return
}
