package lbvh

// childRef packs either an internal-node index or a leaf-primitive slot
// into a uint32: the high bit discriminates leaf (1) from internal (0),
// capping each to 2^31 entries. This avoids a parent pointer or a tagged
// union in Node, keeping nodes compact for both scalar widths.
type childRef uint32

const leafBit childRef = 1 << 31

func leafRef(leafSlot uint32) childRef    { return leafBit | childRef(leafSlot) }
func internalRef(nodeIdx uint32) childRef { return childRef(nodeIdx) }
func (c childRef) isLeaf() bool           { return c&leafBit != 0 }
func (c childRef) index() uint32          { return uint32(c &^ leafBit) }

// Node is one internal node of the tree: a bounding box and two children,
// each either another internal node or a leaf referencing a sorted
// primitive slot.
type Node[S Scalar] struct {
	Box         AABB[S]
	Left, Right childRef
}
