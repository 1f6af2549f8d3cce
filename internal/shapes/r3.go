package shapes

import (
	"github.com/golang/geo/r3"
	"github.com/lukaszgryglicki/lbvh/internal/lbvh"
)

// FromR3 converts an r3.Vector, the representation a scene loader is
// likely to already have its geometry in, into this library's generic
// Vec3[float64].
func FromR3(v r3.Vector) lbvh.Vec3[float64] {
	return lbvh.Vec3[float64]{X: v.X, Y: v.Y, Z: v.Z}
}

// ToR3 converts a Vec3[float64] back into an r3.Vector, for interop with
// callers that build their scenes on top of github.com/golang/geo.
func ToR3(v lbvh.Vec3[float64]) r3.Vector {
	return r3.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

// TriangleFromR3 builds a Triangle[float64] from three r3.Vector corners,
// the shape a github.com/golang/geo-based scene loader would hand off.
func TriangleFromR3(v0, v1, v2 r3.Vector) Triangle[float64] {
	return Triangle[float64]{V0: FromR3(v0), V1: FromR3(v1), V2: FromR3(v2)}
}
