//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gradex

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// boxMesh is an axis aligned box from min to max
func boxMesh(min, max mgl64.Vec3) *Mesh {
	var vertices []mgl64.Vec3
	for _, x := range []float64{min[0], max[0]} {
		for _, y := range []float64{min[1], max[1]} {
			for _, z := range []float64{min[2], max[2]} {
				vertices = append(vertices, mgl64.Vec3{x, y, z})
			}
		}
	}
	return NewMesh(vertices)
}

// planarBox is a 2D modifier over the square (x0,y0) - (x1,y1)
func planarBox(x0, y0, x1, y1 float64, grad Gradient) *Modifier {
	region, err := NewPlanar(boxMesh(mgl64.Vec3{x0, y0, 0}, mgl64.Vec3{x1, y1, 10}))
	if err != nil {
		panic(err)
	}
	return &Modifier{Name: "planar", Region: region, Gradient: grad}
}

// sphere is a 3D modifier of radius r around c
func sphere(c mgl64.Vec3, r float64, grad Gradient) *Modifier {
	return &Modifier{
		Name:     "sphere",
		Region:   &Volumetric{Centroid: c, MaxRadius: r},
		Gradient: grad,
	}
}

// constant is a gradient with the same multiplier everywhere
func constant(mult float64) Gradient {
	return Gradient{CenterMultiplier: mult, EdgeMultiplier: mult, Exponent: 1.0}
}

func linear(center, edge float64) Gradient {
	return Gradient{CenterMultiplier: center, EdgeMultiplier: edge, Exponent: 1.0}
}
