package lbvh

import "math"

// AABB is an axis-aligned bounding box. After construction Min.c <= Max.c
// on every axis; EmptyAABB is the identity under Union.
type AABB[S Scalar] struct {
	Min, Max Vec3[S]
}

// EmptyAABB returns the identity box for Union: any real box unioned with
// it is unchanged.
func EmptyAABB[S Scalar]() AABB[S] {
	posInf := S(math.Inf(1))
	negInf := S(math.Inf(-1))
	return AABB[S]{
		Min: Vec3[S]{posInf, posInf, posInf},
		Max: Vec3[S]{negInf, negInf, negInf},
	}
}

// Union returns the smallest box containing both a and b.
func Union[S Scalar](a, b AABB[S]) AABB[S] {
	return AABB[S]{Min: MinElem(a.Min, b.Min), Max: MaxElem(a.Max, b.Max)}
}

// Contains reports whether p lies within the box, inclusive on all bounds.
func (b AABB[S]) Contains(p Vec3[S]) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsBox reports whether b fully encloses other (parent/child check).
func (b AABB[S]) ContainsBox(other AABB[S]) bool {
	return other.Min.X >= b.Min.X && other.Max.X <= b.Max.X &&
		other.Min.Y >= b.Min.Y && other.Max.Y <= b.Max.Y &&
		other.Min.Z >= b.Min.Z && other.Max.Z <= b.Max.Z
}

// Centroid returns the box's midpoint.
func (b AABB[S]) Centroid() Vec3[S] {
	return Vec3[S]{
		(b.Min.X + b.Max.X) / 2,
		(b.Min.Y + b.Max.Y) / 2,
		(b.Min.Z + b.Max.Z) / 2,
	}
}

// SizeOf returns the box's extent along each axis.
func SizeOf[S Scalar](b AABB[S]) Vec3[S] {
	return Vec3[S]{b.Max.X - b.Min.X, b.Max.Y - b.Min.Y, b.Max.Z - b.Min.Z}
}

// Volume returns the box's volume, used by CheckBVH's parent/child checks.
func Volume[S Scalar](b AABB[S]) S {
	s := SizeOf(b)
	return s.X * s.Y * s.Z
}

// minNum/maxNum propagate the non-NaN operand, unlike math.Min/math.Max
// (which propagate NaN). The robust slab test below needs this to avoid a
// spurious miss on axis-parallel rays where 0 * (+-Inf) produces NaN.
func minNum[S Scalar](a, b S) S {
	if math.IsNaN(float64(a)) {
		return b
	}
	if math.IsNaN(float64(b)) {
		return a
	}
	return minS(a, b)
}

func maxNum[S Scalar](a, b S) S {
	if math.IsNaN(float64(a)) {
		return b
	}
	if math.IsNaN(float64(b)) {
		return a
	}
	return maxS(a, b)
}

// invDirOf precomputes the per-component reciprocal of a ray direction for
// repeated slab tests. Components of Dir that are exactly zero produce
// +-Inf, which the NaN-safe slab test below handles correctly.
func invDirOf[S Scalar](dir Vec3[S]) Vec3[S] {
	return Vec3[S]{1 / dir.X, 1 / dir.Y, 1 / dir.Z}
}

// slabTest is the robust (Ize 2013-style) ray/AABB intersection test. It
// returns whether the ray hits the box and, if so, the near distance
// tNear (clamped to >= 0).
func slabTest[S Scalar](origin, invDir Vec3[S], box AABB[S]) (hit bool, tNear S) {
	t1x := (box.Min.X - origin.X) * invDir.X
	t2x := (box.Max.X - origin.X) * invDir.X
	tMin := minNum(t1x, t2x)
	tMax := maxNum(t1x, t2x)

	t1y := (box.Min.Y - origin.Y) * invDir.Y
	t2y := (box.Max.Y - origin.Y) * invDir.Y
	tMin = maxNum(tMin, minNum(t1y, t2y))
	tMax = minNum(tMax, maxNum(t1y, t2y))

	t1z := (box.Min.Z - origin.Z) * invDir.Z
	t2z := (box.Max.Z - origin.Z) * invDir.Z
	tMin = maxNum(tMin, minNum(t1z, t2z))
	tMax = minNum(tMax, maxNum(t1z, t2z))

	tMin = maxS(tMin, 0)
	return tMin <= tMax, tMin
}
