// Package shapes is an out-of-core collaborator for the lbvh library: a
// minimal triangle primitive with an AABB converter and a Möller–Trumbore
// ray intersector, the kind of thing a scene loader would supply as the
// P type parameter of lbvh.Build/lbvh.Traverse. The BVH core never
// imports this package; it is grounded purely on the generic converter/
// intersector contracts it exposes.
package shapes

import (
	"math"

	"github.com/lukaszgryglicki/lbvh/internal/lbvh"
)

// Triangle is a single triangle in 3-space, with the per-vertex UV
// coordinates a scene loader would carry for texturing.
type Triangle[S lbvh.Scalar] struct {
	V0, V1, V2    lbvh.Vec3[S]
	UV0, UV1, UV2 lbvh.Vec2[S]
}

// AABB converts a triangle to its bounding box, for use as an
// lbvh.Converter.
func AABB[S lbvh.Scalar](t Triangle[S]) lbvh.AABB[S] {
	box := lbvh.AABB[S]{Min: t.V0, Max: t.V0}
	box = lbvh.Union(box, lbvh.AABB[S]{Min: t.V1, Max: t.V1})
	box = lbvh.Union(box, lbvh.AABB[S]{Min: t.V2, Max: t.V2})
	return box
}

const mollerTrumboreEpsilon = 1e-7

// Intersect is a Möller–Trumbore ray/triangle test, usable directly as an
// lbvh.Intersector. Returns a miss (Distance == +Inf) for a ray parallel
// to the triangle's plane or one that hits outside the triangle.
func Intersect[S lbvh.Scalar](t Triangle[S], ray lbvh.Ray[S]) lbvh.Intersection[S] {
	edge1 := t.V1.Sub(t.V0)
	edge2 := t.V2.Sub(t.V0)

	h := ray.Dir.Cross(edge2)
	a := edge1.Dot(h)
	if a > -S(mollerTrumboreEpsilon) && a < S(mollerTrumboreEpsilon) {
		return lbvh.Miss[S]() // ray parallel to the triangle
	}

	f := 1 / a
	s := ray.Pos.Sub(t.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return lbvh.Miss[S]()
	}

	q := s.Cross(edge1)
	v := f * ray.Dir.Dot(q)
	if v < 0 || u+v > 1 {
		return lbvh.Miss[S]()
	}

	dist := f * edge2.Dot(q)
	if dist <= S(mollerTrumboreEpsilon) {
		return lbvh.Miss[S]()
	}

	normal := edge1.Cross(edge2).Norm()
	uv := lbvh.Vec2[S]{
		X: t.UV0.X*(1-u-v) + t.UV1.X*u + t.UV2.X*v,
		Y: t.UV0.Y*(1-u-v) + t.UV1.Y*u + t.UV2.Y*v,
	}
	return lbvh.Intersection[S]{Distance: dist, Normal: normal, UV: uv}
}

// RandomTriangleSoup generates n triangles scattered within [-extent,
// extent]^3, useful for demo scenes and builder stress tests. rng must
// return values uniformly in [0,1).
func RandomTriangleSoup[S lbvh.Scalar](n int, extent S, rng func() float64) []Triangle[S] {
	out := make([]Triangle[S], n)
	randAxis := func() S {
		return S((rng()*2 - 1)) * extent
	}
	for i := range out {
		center := lbvh.Vec3[S]{X: randAxis(), Y: randAxis(), Z: randAxis()}
		size := extent / S(math.Max(10, float64(n)/10))
		out[i] = Triangle[S]{
			V0: center,
			V1: center.Add(lbvh.Vec3[S]{X: size, Y: 0, Z: 0}),
			V2: center.Add(lbvh.Vec3[S]{X: 0, Y: size, Z: 0}),
		}
	}
	return out
}
