package lbvh

// Intersector tests a ray against a single primitive, returning a miss
// (Distance == +Inf) when there is no hit. Must be pure and safe to call
// concurrently; Traverse itself is single-threaded per call.
type Intersector[S Scalar, P any] func(P, Ray[S]) Intersection[S]

type stackEntry[S Scalar] struct {
	node uint32
	tMin S
}

// Traverse finds the closest primitive the ray hits, or a miss sentinel.
// Modeled on the reference renderer's iterative stack-based
// traverseNearest: push the far child first so the nearer one pops next,
// and prune by the best distance found so far.
func Traverse[S Scalar, P any](bvh *BVH[S], prims []P, ray Ray[S], intersect Intersector[S, P]) Intersection[S] {
	best := Miss[S]()
	if bvh.Len() == 0 {
		return best
	}

	invDir := invDirOf(ray.Dir)
	eps := epsFor[S]()

	stack := make([]stackEntry[S], 0, 64)
	stack = append(stack, stackEntry[S]{node: 0, tMin: 0})

	considerHit := func(primIdx uint32) {
		hit := intersect(prims[primIdx], ray)
		if hit.Distance > eps && hit.Distance < best.Distance {
			hit.PrimitiveIndex = primIdx
			best = hit
		}
	}

	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if e.tMin > best.Distance {
			continue
		}

		var lPush, rPush bool
		var lChild, rChild uint32
		var lT, rT S

		if bvh.LeftIsLeaf(e.node) {
			considerHit(bvh.LeftPrimitive(e.node))
		} else {
			lChild = bvh.LeftChild(e.node)
			var ok bool
			ok, lT = slabTest(ray.Pos, invDir, bvh.Box(lChild))
			lPush = ok && lT <= best.Distance
		}

		if bvh.RightIsLeaf(e.node) {
			considerHit(bvh.RightPrimitive(e.node))
		} else {
			rChild = bvh.RightChild(e.node)
			var ok bool
			ok, rT = slabTest(ray.Pos, invDir, bvh.Box(rChild))
			rPush = ok && rT <= best.Distance
		}

		// push far first so the nearer child pops (and prunes) first
		switch {
		case lPush && rPush:
			if lT < rT {
				stack = append(stack, stackEntry[S]{rChild, rT}, stackEntry[S]{lChild, lT})
			} else {
				stack = append(stack, stackEntry[S]{lChild, lT}, stackEntry[S]{rChild, rT})
			}
		case lPush:
			stack = append(stack, stackEntry[S]{lChild, lT})
		case rPush:
			stack = append(stack, stackEntry[S]{rChild, rT})
		}
	}

	return best
}
