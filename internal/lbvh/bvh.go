package lbvh

// BVH is an immutable linear bounding volume hierarchy over N primitives:
// N-1 internal nodes (node 0 is the root) plus a permutation from sorted
// leaf slot back to original primitive index. Once Build returns, a BVH
// may be shared across any number of concurrent Traverse calls without
// synchronization.
type BVH[S Scalar] struct {
	nodes []Node[S]
	perm  []uint32
}

// Len returns the number of internal nodes (N-1 for N primitives).
func (b *BVH[S]) Len() int { return len(b.nodes) }

// NumPrimitives returns N, the number of leaves.
func (b *BVH[S]) NumPrimitives() int { return len(b.perm) }

// Box returns the bounding box of internal node i.
func (b *BVH[S]) Box(i uint32) AABB[S] { return b.nodes[i].Box }

// LeftIsLeaf reports whether node i's left child is a leaf.
func (b *BVH[S]) LeftIsLeaf(i uint32) bool { return b.nodes[i].Left.isLeaf() }

// RightIsLeaf reports whether node i's right child is a leaf.
func (b *BVH[S]) RightIsLeaf(i uint32) bool { return b.nodes[i].Right.isLeaf() }

// LeftChild returns node i's left child as a raw index: an internal-node
// index when LeftIsLeaf(i) is false, a sorted leaf slot when it is true.
func (b *BVH[S]) LeftChild(i uint32) uint32 { return b.nodes[i].Left.index() }

// RightChild returns node i's right child as a raw index: an internal-node
// index when RightIsLeaf(i) is false, a sorted leaf slot when it is true.
func (b *BVH[S]) RightChild(i uint32) uint32 { return b.nodes[i].Right.index() }

// LeftPrimitive returns the original primitive index referenced by node
// i's left child (meaningful only when LeftIsLeaf(i) is true).
func (b *BVH[S]) LeftPrimitive(i uint32) uint32 { return b.perm[b.nodes[i].Left.index()] }

// RightPrimitive returns the original primitive index referenced by node
// i's right child (meaningful only when RightIsLeaf(i) is true).
func (b *BVH[S]) RightPrimitive(i uint32) uint32 { return b.perm[b.nodes[i].Right.index()] }

// Perm returns the sorted-leaf-slot -> original-primitive-index mapping.
// The returned slice must not be mutated by the caller.
func (b *BVH[S]) Perm() []uint32 { return b.perm }

// RootBox returns the union box of every primitive (the root's Box, or
// EmptyAABB when there are no internal nodes, a case Build already
// rejects).
func (b *BVH[S]) RootBox() AABB[S] {
	if len(b.nodes) == 0 {
		return EmptyAABB[S]()
	}
	return b.nodes[0].Box
}
