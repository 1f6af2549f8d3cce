package lbvh

import (
	"testing"

	"go.viam.com/test"
)

func TestCheckBVHRejectsRootReferencedAsChild(t *testing.T) {
	// Hand-build a malformed two-node tree where node 1 wrongly points
	// back at the root, to confirm CheckBVH treats that as fatal rather
	// than merely warning (an explicit deviation from the original
	// reference harness's check_bvh).
	bvh := &BVH[float64]{
		nodes: []Node[float64]{
			{Box: AABB[float64]{Max: Vec3[float64]{1, 1, 1}}, Left: internalRef(1), Right: leafRef(0)},
			{Box: AABB[float64]{Max: Vec3[float64]{1, 1, 1}}, Left: internalRef(0), Right: leafRef(1)},
		},
		perm: []uint32{0, 1},
	}
	err := CheckBVH(bvh)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestCheckBVHRejectsChildLargerThanParent(t *testing.T) {
	bvh := &BVH[float64]{
		nodes: []Node[float64]{
			{
				Box:   AABB[float64]{Min: Vec3[float64]{0, 0, 0}, Max: Vec3[float64]{1, 1, 1}},
				Left:  internalRef(1),
				Right: leafRef(0),
			},
			{
				// deliberately larger than its parent, node 0
				Box:   AABB[float64]{Min: Vec3[float64]{-5, -5, -5}, Max: Vec3[float64]{5, 5, 5}},
				Left:  leafRef(1),
				Right: leafRef(2),
			},
		},
		perm: []uint32{0, 1, 2},
	}
	err := CheckBVH(bvh)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestCheckBVHAcceptsWellFormedTree(t *testing.T) {
	prims := []boxPrim{unitBoxAt(0, 0, 0), unitBoxAt(3, 0, 0), unitBoxAt(6, 0, 0)}
	bvh, err := Build(prims, boxConverter)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, CheckBVH(bvh), test.ShouldBeNil)
}
