// Package lbvh builds and traverses a linear bounding volume hierarchy over
// an arbitrary slice of primitives. Construction sorts primitives by Morton
// code and assembles the binary radix tree of Karras (2012); traversal is an
// iterative, stack-based nearest-hit search.
//
// The package is generic over the floating point scalar (float32 or
// float64) and over the caller's primitive type, which it never inspects
// directly — callers supply a Converter to produce bounding boxes and an
// Intersector to test rays against primitives.
package lbvh
