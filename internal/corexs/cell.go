package corexs

import (
	"math"
	"sync"
)

// FillKind tags what occupies a Cell.
type FillKind int

const (
	FillMaterial FillKind = iota
	FillUniverse
	FillLattice
)

// MaterialFill holds the per-instance material ids (and optional per-
// instance sqrt(kT)) of a MATERIAL cell. A non-distribcell cell has length
// 1 in both.
type MaterialFill struct {
	MaterialIDs []int // VoidMaterial allowed
	SqrtKT      []Real
}

// UniverseFill holds the affine transform applied when descending into a
// UNIVERSE-fill cell. Rot == nil means no rotation (the 12-entry legacy
// layout from spec.md §9 is deliberately not carried forward).
type UniverseFill struct {
	UniverseID  int
	Translation Vec3
	Rot         *Mat3
}

// LatticeFill names the lattice a LATTICE cell delegates to.
type LatticeFill struct {
	LatticeID int
}

// Cell is a CSG region within a universe, filled by a material, another
// universe, or a lattice.
type Cell struct {
	ID       int
	Universe int
	Region   *Region
	Simple   bool // true iff Region.Kind == HalfSpaceConjunction
	Type     FillKind

	Material MaterialFill
	UnivFill UniverseFill
	LatFill  LatticeFill

	DistribcellIndex int
	Offset           []int

	neighMu   sync.Mutex
	Neighbors []int
}

// Contains reports whether (r, u) lies inside the cell's region. A position
// exactly on a boundary surface is resolved by the direction u (see
// region.go's side); prior is passed through but not consulted.
func (c *Cell) Contains(m *Model, r, u Vec3, prior int) bool {
	return c.Region.Contains(m, r, u, prior)
}

// Distance returns the smallest positive distance to a boundary surface of
// the cell and the signed id of the surface crossed leaving the cell. Ties
// are broken by smaller distance, then by lowest surface index.
func (c *Cell) Distance(m *Model, r, u Vec3, prior int) (Real, int) {
	bestD := Real(math.Inf(1))
	bestSurf := 0
	for _, id := range c.Region.SurfaceIDs() {
		surf := m.Surfaces[id-1]
		d := surf.Distance(r, u, prior)
		if !isFinite(d) || d < 0 {
			continue
		}
		if d < bestD || (d == bestD && id < absInt(bestSurf)) {
			bestD = d
			sign := 1
			if c.Simple {
				sign = outwardSign(m, c, id, r, u)
			} else {
				hit := r.Add(u.Mul(d))
				n := surf.Normal(hit)
				if u.Dot(n) < 0 {
					sign = -1
				}
			}
			bestSurf = sign * id
		}
	}
	return bestD, bestSurf
}

// outwardSign determines, for a simple (half-space conjunction) cell, the
// sign of the surface id as the particle leaves through it: the opposite of
// whichever signed half-space entry in Halfs references this surface, since
// leaving a half-space means crossing to its negation.
func outwardSign(m *Model, c *Cell, id int, r, u Vec3) int {
	for _, sid := range c.Region.Halfs {
		uid := sid
		if uid < 0 {
			uid = -uid
		}
		if uid == id {
			if sid > 0 {
				return -1
			}
			return 1
		}
	}
	surf := m.Surfaces[id-1]
	hit := r.Add(u)
	n := surf.Normal(hit)
	if u.Dot(n) >= 0 {
		return 1
	}
	return -1
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// AppendNeighbor records id as a cell frequently found to contain particles
// entering c, growing the list append-only. Duplicates are tolerated (see
// spec §4.2); this is the observable-safety property exercised by
// cell_test.go rather than a strict set.
func (c *Cell) AppendNeighbor(id int) {
	c.neighMu.Lock()
	c.Neighbors = append(c.Neighbors, id)
	c.neighMu.Unlock()
}

// NeighborSnapshot returns a copy of the current neighbor list, safe to
// iterate without holding the lock.
func (c *Cell) NeighborSnapshot() []int {
	c.neighMu.Lock()
	defer c.neighMu.Unlock()
	out := make([]int, len(c.Neighbors))
	copy(out, c.Neighbors)
	return out
}
