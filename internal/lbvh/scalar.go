package lbvh

import "golang.org/x/exp/constraints"

// Scalar is the floating point type every math/BVH type in this package is
// parameterized over. float32 and float64 are both fully supported with
// identical semantics up to precision.
type Scalar interface {
	constraints.Float
}

// epsFor returns the self-intersection epsilon for S: sqrt of the type's
// machine epsilon. Go generics have no numeric_limits, so this is a small
// type switch rather than a constant.
func epsFor[S Scalar]() S {
	var z S
	switch any(z).(type) {
	case float32:
		return S(3.4526698e-4)
	default:
		return S(1.4901161193847656e-8)
	}
}
