package corexs

// RegionKind tags a cell's CSG region as either the common fast-path
// conjunction of half-spaces or a general boolean tree, per the tagged-
// variant design adopted in place of runtime-typed region objects.
type RegionKind int

const (
	// HalfSpaceConjunction region: every listed signed surface id must
	// accept. This is the Simple fast path.
	HalfSpaceConjunction RegionKind = iota
	// Tree region: a general AND/OR/NOT boolean expression over signed
	// surface ids.
	Tree
)

// NodeOp is the operator at a RegionNode.
type NodeOp int

const (
	OpSurface NodeOp = iota // leaf: a single signed surface id
	OpAnd
	OpOr
	OpNot
)

// RegionNode is one node of a general CSG boolean tree. Leaves carry a
// signed surface id in Surf; interior nodes carry Op and child nodes.
type RegionNode struct {
	Op       NodeOp
	Surf     int // signed surface id, valid when Op == OpSurface
	Children []*RegionNode
}

// Region is a cell's CSG shape: either a flat conjunction of half-spaces
// (Simple fast path) or a general boolean tree.
type Region struct {
	Kind  RegionKind
	Halfs []int // signed surface ids, valid when Kind == HalfSpaceConjunction
	Root  *RegionNode
}

// side reports whether position r is on the positive half-space of
// surface id sid (sid < 0 flips the test). A position exactly on the
// surface is resolved by the direction of travel (the sign of u.n); prior
// is not consulted.
func side(m *Model, sid int, r, u Vec3, prior int) bool {
	id := sid
	if id < 0 {
		id = -id
	}
	surf := m.Surfaces[id-1]
	val := surf.Evaluate(r)
	if val == 0 {
		// On the surface exactly: resolve by travel direction, taking the
		// half-space that u points into (the sign of u.n).
		n := surf.Normal(r)
		val = u.Dot(n)
	}
	positive := val > 0
	if sid < 0 {
		return !positive
	}
	return positive
}

// Contains evaluates the region against position r, direction u and the
// signed id of the surface the particle last crossed.
func (reg *Region) Contains(m *Model, r, u Vec3, prior int) bool {
	switch reg.Kind {
	case HalfSpaceConjunction:
		for _, sid := range reg.Halfs {
			if !side(m, sid, r, u, prior) {
				return false
			}
		}
		return true
	default:
		return evalNode(m, reg.Root, r, u, prior)
	}
}

func evalNode(m *Model, n *RegionNode, r, u Vec3, prior int) bool {
	switch n.Op {
	case OpSurface:
		return side(m, n.Surf, r, u, prior)
	case OpAnd:
		for _, c := range n.Children {
			if !evalNode(m, c, r, u, prior) {
				return false
			}
		}
		return true
	case OpOr:
		for _, c := range n.Children {
			if evalNode(m, c, r, u, prior) {
				return true
			}
		}
		return false
	case OpNot:
		return !evalNode(m, n.Children[0], r, u, prior)
	}
	return false
}

// SurfaceIDs returns every surface id referenced by the region, unsigned and
// de-duplicated, used by Cell.Distance to enumerate candidate boundaries.
func (reg *Region) SurfaceIDs() []int {
	seen := map[int]bool{}
	var out []int
	add := func(sid int) {
		id := sid
		if id < 0 {
			id = -id
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	if reg.Kind == HalfSpaceConjunction {
		for _, sid := range reg.Halfs {
			add(sid)
		}
		return out
	}
	var walk func(n *RegionNode)
	walk = func(n *RegionNode) {
		if n == nil {
			return
		}
		if n.Op == OpSurface {
			add(n.Surf)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(reg.Root)
	return out
}
