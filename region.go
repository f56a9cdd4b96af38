//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gradex

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// RegionKind names the two kinds of modifier region
type RegionKind string

const (
	RegionPlanar     = RegionKind("2D")
	RegionVolumetric = RegionKind("3D")
)

// Region is the spatial extent of a modifier. It is either a *Planar or a
// *Volumetric.
type Region interface {
	Kind() RegionKind
	Radius() float64
	isRegion()
}

// Planar is a 2D footprint, extruded upwards from the modifier's MinLayer.
type Planar struct {
	Ring      orb.Ring  // Closed convex boundary
	Centroid  orb.Point // Mean of the distinct boundary vertices
	MaxRadius float64   // Furthest boundary vertex from Centroid
}

func (pl *Planar) Kind() RegionKind { return RegionPlanar }
func (pl *Planar) Radius() float64  { return pl.MaxRadius }
func (pl *Planar) isRegion()        {}

// Contains reports if the XY point is strictly inside the boundary.
// Points on the boundary are outside.
func (pl *Planar) Contains(pt orb.Point) bool {
	if len(pl.Ring) == 0 || pl.OnBoundary(pt) {
		return false
	}
	return planar.RingContains(pl.Ring, pt)
}

// OnBoundary reports if the XY point lies on an edge of the ring, to
// within DegenerateLength.
func (pl *Planar) OnBoundary(pt orb.Point) bool {
	for n := 0; n+1 < len(pl.Ring); n++ {
		if planar.DistanceFromSegmentSquared(pl.Ring[n], pl.Ring[n+1], pt) < DegenerateLength*DegenerateLength {
			return true
		}
	}
	return false
}

func (pl *Planar) String() string {
	return fmt.Sprintf("2D: %d vertices, centroid (%.2f, %.2f), r_max %.2f",
		len(pl.Ring), pl.Centroid.X(), pl.Centroid.Y(), pl.MaxRadius)
}

// NewPlanar builds a planar region from the convex hull of the mesh
// vertices projected onto the XY plane.
func NewPlanar(mesh *Mesh) (pl *Planar, err error) {
	if mesh == nil || len(mesh.Vertices) == 0 {
		err = errors.New("planar region: mesh has no vertices")
		return
	}

	points := make([]orb.Point, len(mesh.Vertices))
	for n, v := range mesh.Vertices {
		points[n] = orb.Point{v.X(), v.Y()}
	}

	ring := ConvexHull(points)

	// The closing vertex is a repeat of the first
	distinct := ring
	if len(ring) > 1 {
		distinct = ring[:len(ring)-1]
	}

	var centroid orb.Point
	for _, pt := range distinct {
		centroid[0] += pt[0]
		centroid[1] += pt[1]
	}
	centroid[0] /= float64(len(distinct))
	centroid[1] /= float64(len(distinct))

	rmax := 0.0
	for _, pt := range distinct {
		if r := planar.Distance(centroid, pt); r > rmax {
			rmax = r
		}
	}

	pl = &Planar{
		Ring:      ring,
		Centroid:  centroid,
		MaxRadius: rmax,
	}

	return
}

// Volumetric is a bounding sphere around a mesh. Points are tested by
// distance from the centroid only, not by mesh containment.
type Volumetric struct {
	Centroid  mgl64.Vec3
	MaxRadius float64
}

func (vol *Volumetric) Kind() RegionKind { return RegionVolumetric }
func (vol *Volumetric) Radius() float64  { return vol.MaxRadius }
func (vol *Volumetric) isRegion()        {}

func (vol *Volumetric) String() string {
	return fmt.Sprintf("3D: centroid (%.2f, %.2f, %.2f), r_max %.2f",
		vol.Centroid.X(), vol.Centroid.Y(), vol.Centroid.Z(), vol.MaxRadius)
}

// NewVolumetric builds the bounding sphere of the mesh vertices, centred
// on their mean.
func NewVolumetric(mesh *Mesh) (vol *Volumetric, err error) {
	if mesh == nil || len(mesh.Vertices) == 0 {
		err = errors.New("volumetric region: mesh has no vertices")
		return
	}

	var centroid mgl64.Vec3
	for _, v := range mesh.Vertices {
		centroid = centroid.Add(v)
	}
	centroid = centroid.Mul(1.0 / float64(len(mesh.Vertices)))

	rmax := 0.0
	for _, v := range mesh.Vertices {
		if r := v.Sub(centroid).Len(); r > rmax {
			rmax = r
		}
	}

	vol = &Volumetric{
		Centroid:  centroid,
		MaxRadius: rmax,
	}

	return
}
