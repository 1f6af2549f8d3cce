package lbvh

import (
	"math"
	"testing"

	"go.viam.com/test"
)

// quad is a synthetic axis-aligned square patch in the xy-plane at a fixed
// z, used only to exercise Traverse's ordering/pruning behavior without
// pulling in the triangle collaborator package.
type quad struct {
	z          float64
	halfExtent float64
}

func quadConverter(q quad) AABB[float64] {
	const thickness = 1e-4
	return AABB[float64]{
		Min: Vec3[float64]{-q.halfExtent, -q.halfExtent, q.z - thickness},
		Max: Vec3[float64]{q.halfExtent, q.halfExtent, q.z + thickness},
	}
}

func quadIntersector(q quad, ray Ray[float64]) Intersection[float64] {
	if ray.Dir.Z == 0 {
		return Miss[float64]()
	}
	t := (q.z - ray.Pos.Z) / ray.Dir.Z
	if t <= 0 {
		return Miss[float64]()
	}
	x := ray.Pos.X + ray.Dir.X*t
	y := ray.Pos.Y + ray.Dir.Y*t
	if x < -q.halfExtent || x > q.halfExtent || y < -q.halfExtent || y > q.halfExtent {
		return Miss[float64]()
	}
	return Intersection[float64]{Distance: t, Normal: Vec3[float64]{0, 0, 1}}
}

func TestTraverseMiss(t *testing.T) {
	prims := []quad{{z: 0, halfExtent: 1}, {z: 5, halfExtent: 1}}
	bvh, err := Build(prims, quadConverter)
	test.That(t, err, test.ShouldBeNil)

	ray := Ray[float64]{Pos: Vec3[float64]{0, 0, 10}, Dir: Vec3[float64]{0, 0, 1}}
	got := Traverse[float64](bvh, prims, ray, quadIntersector)
	test.That(t, got.Hit(), test.ShouldBeFalse)
}

func TestTraverseSingleHit(t *testing.T) {
	prims := []quad{{z: 0, halfExtent: 1}, {z: -20, halfExtent: 1}}
	bvh, err := Build(prims, quadConverter)
	test.That(t, err, test.ShouldBeNil)

	ray := Ray[float64]{Pos: Vec3[float64]{0, 0, 10}, Dir: Vec3[float64]{0, 0, -1}}
	got := Traverse[float64](bvh, prims, ray, quadIntersector)
	test.That(t, got.Hit(), test.ShouldBeTrue)
	test.That(t, got.Distance, test.ShouldEqual, 10.0)
	test.That(t, got.PrimitiveIndex, test.ShouldEqual, uint32(0))
}

func TestTraverseReturnsClosestOfMany(t *testing.T) {
	prims := []quad{{z: 1, halfExtent: 2}, {z: 2, halfExtent: 2}, {z: 3, halfExtent: 2}}
	bvh, err := Build(prims, quadConverter)
	test.That(t, err, test.ShouldBeNil)

	ray := Ray[float64]{Pos: Vec3[float64]{0, 0, 10}, Dir: Vec3[float64]{0, 0, -1}}
	got := Traverse[float64](bvh, prims, ray, quadIntersector)
	test.That(t, got.Hit(), test.ShouldBeTrue)
	test.That(t, got.Distance, test.ShouldEqual, 7.0)
	test.That(t, got.PrimitiveIndex, test.ShouldEqual, uint32(2))
}

func TestTraverseDeterministic(t *testing.T) {
	prims := []quad{{z: 1, halfExtent: 2}, {z: 2, halfExtent: 2}, {z: 3, halfExtent: 2}, {z: -5, halfExtent: 2}}
	bvh, err := Build(prims, quadConverter)
	test.That(t, err, test.ShouldBeNil)

	ray := Ray[float64]{Pos: Vec3[float64]{0.3, -0.4, 10}, Dir: Vec3[float64]{0, 0, -1}}
	first := Traverse[float64](bvh, prims, ray, quadIntersector)
	for i := 0; i < 10; i++ {
		got := Traverse[float64](bvh, prims, ray, quadIntersector)
		test.That(t, got, test.ShouldResemble, first)
	}
}

func TestEpsForMatchesMachineEpsilonSqrt(t *testing.T) {
	if got, want := epsFor[float64](), math.Sqrt(2.220446049250313e-16); math.Abs(float64(got)-want) > 1e-12 {
		t.Fatalf("epsFor[float64](): got %v, want ~%v", got, want)
	}
}
