//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gradex

import (
	"sort"

	"github.com/paulmach/orb"
)

// cross product of (a - o) x (b - o)
func cross(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

// ConvexHull returns the counter-clockwise convex hull of the points as a
// closed ring. Collinear points are dropped. A single distinct point gives
// a two entry ring, two distinct points a three entry ring.
func ConvexHull(points []orb.Point) (ring orb.Ring) {
	if len(points) == 0 {
		return
	}

	pts := make([]orb.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})

	// Remove duplicates
	uniq := pts[:1]
	for _, pt := range pts[1:] {
		if pt != uniq[len(uniq)-1] {
			uniq = append(uniq, pt)
		}
	}

	if len(uniq) < 3 {
		ring = append(orb.Ring{}, uniq...)
		ring = append(ring, uniq[0])
		return
	}

	// Andrew's monotone chain
	hull := make([]orb.Point, 0, 2*len(uniq))
	for _, pt := range uniq {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], pt) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, pt)
	}

	lower := len(hull) + 1
	for n := len(uniq) - 2; n >= 0; n-- {
		pt := uniq[n]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], pt) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, pt)
	}

	// The final point is already the first point, closing the ring
	ring = orb.Ring(hull)

	return
}
