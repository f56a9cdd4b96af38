//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gradex

import (
	"math"
)

// Sample is the multiplier applied to a single move
type Sample struct {
	X, Y, Z    float64
	Multiplier float64
}

// Recorder receives a Sample for every rewritten move, in stream order
type Recorder interface {
	Record(sample Sample)
}

// Range is a closed interval
type Range struct {
	Min, Max float64
}

func emptyRange() Range {
	return Range{Min: math.Inf(1), Max: math.Inf(-1)}
}

func (rng *Range) add(value float64) {
	rng.Min = math.Min(rng.Min, value)
	rng.Max = math.Max(rng.Max, value)
}

// Empty reports if no value has been added
func (rng Range) Empty() bool {
	return rng.Min > rng.Max
}

// SampleLog keeps every recorded sample
type SampleLog struct {
	Samples []Sample
}

func (sl *SampleLog) Record(sample Sample) {
	sl.Samples = append(sl.Samples, sample)
}

// Ranges of the recorded X, Y, Z and multiplier values
func (sl *SampleLog) Ranges() (x, y, z, mult Range) {
	x, y, z, mult = emptyRange(), emptyRange(), emptyRange(), emptyRange()

	for _, s := range sl.Samples {
		x.add(s.X)
		y.add(s.Y)
		z.add(s.Z)
		mult.add(s.Multiplier)
	}

	return
}
