package lbvh

import (
	"fmt"
	"math/bits"
	"sort"
	"sync/atomic"
)

// Converter maps a primitive to its bounding box. Build calls it once per
// primitive, sequentially; a Converter may be called concurrently by its
// own caller (Build itself never does so) and must be pure.
type Converter[S Scalar, P any] func(P) AABB[S]

// Option configures a Build call.
type Option[S Scalar] func(*buildConfig[S])

type buildConfig[S Scalar] struct {
	scheduler Scheduler
}

// WithScheduler overrides the Scheduler used for the bottom-up AABB
// propagation phase. The zero value (nil) falls back to DefaultScheduler{}.
func WithScheduler[S Scalar](s Scheduler) Option[S] {
	return func(c *buildConfig[S]) { c.scheduler = s }
}

// Build constructs a BVH over prims using convert to obtain each
// primitive's bounding box. It requires at least two primitives.
func Build[S Scalar, P any](prims []P, convert Converter[S, P], opts ...Option[S]) (*BVH[S], error) {
	n := len(prims)
	if n < 2 {
		return nil, ErrEmptyOrTrivial
	}

	cfg := buildConfig[S]{scheduler: DefaultScheduler{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.scheduler == nil {
		cfg.scheduler = DefaultScheduler{}
	}

	boxes := make([]AABB[S], n)
	for i, p := range prims {
		boxes[i] = convert(p)
		if ValidateInput {
			if boxes[i].Min.X > boxes[i].Max.X || boxes[i].Min.Y > boxes[i].Max.Y || boxes[i].Min.Z > boxes[i].Max.Z {
				return nil, fmt.Errorf("%w: primitive %d", ErrInvalidInput, i)
			}
		}
	}

	scene := EmptyAABB[S]()
	for _, b := range boxes {
		scene = Union(scene, b)
	}
	DebugLog("scene box: %+v", scene)

	codes := make([]uint64, n)
	for i, b := range boxes {
		nx, ny, nz := normalizedCentroid(scene, b)
		codes[i] = mortonCode(nx, ny, nz)
	}

	perm := make([]uint32, n)
	for i := range perm {
		perm[i] = uint32(i)
	}
	sort.Slice(perm, func(a, b int) bool {
		ca, cb := codes[perm[a]], codes[perm[b]]
		if ca != cb {
			return ca < cb
		}
		return perm[a] < perm[b]
	})

	sortedCodes := make([]uint64, n)
	for k, orig := range perm {
		sortedCodes[k] = codes[orig]
	}

	numInternal := n - 1
	nodes := make([]Node[S], numInternal)
	nodeParent := make([]int32, numInternal)
	leafParent := make([]int32, n)
	nodeSide := make([]int8, numInternal)
	leafSide := make([]int8, n)
	for i := range nodeParent {
		nodeParent[i] = -1
	}

	for i := 0; i < numInternal; i++ {
		first, last := determineRange(sortedCodes, i)
		split := findSplit(sortedCodes, first, last)

		if split == first {
			nodes[i].Left = leafRef(uint32(split))
			leafParent[split] = int32(i)
			leafSide[split] = 0
		} else {
			nodes[i].Left = internalRef(uint32(split))
			nodeParent[split] = int32(i)
			nodeSide[split] = 0
		}

		if split+1 == last {
			nodes[i].Right = leafRef(uint32(split + 1))
			leafParent[split+1] = int32(i)
			leafSide[split+1] = 1
		} else {
			nodes[i].Right = internalRef(uint32(split + 1))
			nodeParent[split+1] = int32(i)
			nodeSide[split+1] = 1
		}
	}

	propagateBoxes(cfg.scheduler, nodes, nodeParent, leafParent, nodeSide, leafSide, boxes, perm)

	return &BVH[S]{nodes: nodes, perm: perm}, nil
}

// propagateBoxes computes every internal node's bounding box bottom-up, in
// parallel: each leaf's walk toward the root uses an atomic arrival
// counter per node so the union only happens once both children are
// ready, with no locks and no recursion.
//
// Each node has exactly two children (its Left and Right), so pending
// holds one slot per side. A goroutine always writes its own side's slot
// before incrementing the arrival counter: since arrived[node].Add is a
// read-modify-write on a single memory location, the two arrivals'
// increments are totally ordered, and that order carries the first
// arrival's plain write of pending[node] happens-before the second
// arrival's read of it. Writing before signaling (rather than after, as
// a naive port of the counter idiom would) is what makes that ordering
// hold; each side's slot is only ever written by the one arrival that
// owns it, so there is no write/write race either.
func propagateBoxes[S Scalar](sched Scheduler, nodes []Node[S], nodeParent, leafParent []int32, nodeSide, leafSide []int8, boxes []AABB[S], perm []uint32) {
	numInternal := len(nodes)
	if numInternal == 0 {
		return
	}
	arrived := make([]atomic.Int32, numInternal)
	pending := make([][2]AABB[S], numInternal)
	n := len(perm)

	sched.Run(func(wd WorkDivision) {
		for k := wd.Idx; k < n; k += wd.Max {
			box := boxes[perm[k]]
			node := leafParent[k]
			side := leafSide[k]
			for node >= 0 {
				pending[node][side] = box
				cnt := arrived[node].Add(1)
				if cnt == 1 {
					break
				}
				box = Union(pending[node][0], pending[node][1])
				nodes[node].Box = box
				side = nodeSide[node]
				node = nodeParent[node]
			}
		}
	})
}

// commonPrefix returns the length of the shared bit prefix of the Morton
// codes at sorted positions i and j. Equal codes compare by index instead
// (the standard fix for duplicate Morton codes), guaranteeing a
// well-defined split even when every primitive's centroid coincides.
func commonPrefix(codes []uint64, i, j int) int {
	n := len(codes)
	if j < 0 || j >= n {
		return -1
	}
	if codes[i] == codes[j] {
		return 64 + bits.LeadingZeros64(uint64(i)^uint64(j))
	}
	return bits.LeadingZeros64(codes[i] ^ codes[j])
}

// determineRange finds the index range [first, last] of leaves covered by
// internal node i, per Karras (2012) section 4.
func determineRange(codes []uint64, i int) (first, last int) {
	d := 1
	if commonPrefix(codes, i, i+1) < commonPrefix(codes, i, i-1) {
		d = -1
	}
	deltaMin := commonPrefix(codes, i, i-d)

	lMax := 2
	for commonPrefix(codes, i, i+lMax*d) > deltaMin {
		lMax *= 2
	}

	l := 0
	for t := lMax / 2; t >= 1; t /= 2 {
		if commonPrefix(codes, i, i+(l+t)*d) > deltaMin {
			l += t
		}
	}
	j := i + l*d
	if d < 0 {
		return j, i
	}
	return i, j
}

// findSplit locates the position within [first, last] where the highest
// bit changes, via binary search on the common-prefix length.
func findSplit(codes []uint64, first, last int) int {
	if codes[first] == codes[last] {
		return (first + last) >> 1
	}
	commonPrefixLen := commonPrefix(codes, first, last)
	split := first
	step := last - first
	for {
		step = (step + 1) >> 1
		newSplit := split + step
		if newSplit < last && commonPrefix(codes, first, newSplit) > commonPrefixLen {
			split = newSplit
		}
		if step <= 1 {
			break
		}
	}
	return split
}
