//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gradex

import (
	"testing"
)

func TestGradientMultiplier(t *testing.T) {
	table := map[string]struct {
		Gradient Gradient
		R, RMax  float64
		Out      float64
	}{
		"center":        {linear(2.0, 1.0), 0.0, 10.0, 2.0},
		"edge":          {linear(2.0, 1.0), 10.0, 10.0, 1.0},
		"half":          {linear(2.0, 1.0), 5.0, 10.0, 1.5},
		"beyond":        {linear(2.0, 1.0), 15.0, 10.0, 1.0},
		"rising":        {linear(0.5, 1.5), 5.0, 10.0, 1.0},
		"squared":       {Gradient{CenterMultiplier: 2.0, EdgeMultiplier: 1.0, Exponent: 2.0}, 5.0, 10.0, 1.75},
		"root":          {Gradient{CenterMultiplier: 2.0, EdgeMultiplier: 1.0, Exponent: 0.5}, 2.5, 10.0, 1.5},
		"zero-radius":   {linear(3.0, 1.0), 0.0, 0.0, 3.0},
		"zero-radius-r": {linear(3.0, 1.0), 1.0, 0.0, 3.0},
	}

	for key, item := range table {
		out := item.Gradient.Multiplier(item.R, item.RMax)
		if !near(out, item.Out) {
			t.Errorf("%v: expected %v, got %v", key, item.Out, out)
		}
	}
}

func TestGradientActive(t *testing.T) {
	grad := Gradient{MinLayer: 0.6}

	if grad.Active(0.4) {
		t.Errorf("expected inactive below min layer")
	}
	if !grad.Active(0.6) {
		t.Errorf("expected active at min layer")
	}
	if !grad.Active(1.0) {
		t.Errorf("expected active above min layer")
	}
}
