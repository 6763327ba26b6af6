package corexs

import "math"

// NextLevel is the 1-based frame index distance_to_boundary reports as the
// winning level, or 0 (NoCrossing) when nothing finite was found.
const NoCrossing = 0

// BoundaryResult is the outcome of DistanceToBoundary: the distance to the
// next boundary, the signed surface id crossed (0 if the crossing is a
// lattice face rather than a surface), the lattice index delta, and the
// 1-based coordinate frame that produced the winning candidate.
type BoundaryResult struct {
	Distance    Real
	Surface     int
	Delta       [3]int
	NextLevel   int
	IsLattice   bool
}

// FindCell establishes the universe of the particle's deepest coordinate
// frame (seeding the root universe on a fresh particle), resets frames
// beyond the current depth, and descends through UNIVERSE/LATTICE fills
// until a MATERIAL cell is bound or the descent fails.
func (m *Model) FindCell(p *Particle, useNeighborLists bool) bool {
	if p.NCoord == 0 {
		p.Coord[0] = freshCoord()
		p.Coord[0].Universe = m.RootUniverse
		p.NCoord = 1
	}
	p.ResetBelow(p.NCoord)
	return m.findCellInner(p, useNeighborLists)
}

func (m *Model) findCellInner(p *Particle, useNeighborLists bool) bool {
	depth := p.NCoord - 1
	frame := &p.Coord[depth]
	univ := m.UniverseByID(frame.Universe)
	if univ == nil {
		p.MarkLost("no such universe")
		return false
	}

	ci := -1
	missedNeighbor := false
	if useNeighborLists && frame.Cell >= 0 {
		prev := m.Cells[frame.Cell]
		ci = univ.FindAmong(m, prev.NeighborSnapshot(), frame.R, frame.U, p.SurfaceHint)
		missedNeighbor = ci < 0
	}
	if ci < 0 {
		ci = univ.Find(m, frame.R, frame.U, p.SurfaceHint)
	}
	if ci < 0 {
		return false
	}
	if missedNeighbor && frame.Cell >= 0 {
		m.Cells[frame.Cell].AppendNeighbor(ci)
	}
	if m.OverlapCheck && univ.CountMatches(m, frame.R, frame.U, p.SurfaceHint) > 1 {
		DefaultLogger.Fatal("overlapping cells accept the same point in universe %d", univ.ID)
		panic("geometry overlap detected")
	}
	frame.Cell = ci
	cell := m.Cells[ci]

	switch cell.Type {
	case FillMaterial:
		return m.bindMaterial(p, cell)
	case FillUniverse:
		return m.descendUniverse(p, frame, cell)
	case FillLattice:
		return m.descendLattice(p, frame, cell)
	default:
		return false
	}
}

func (m *Model) bindMaterial(p *Particle, cell *Cell) bool {
	instance := m.cellInstance(p, cell)
	p.CellInstance = instance

	matID := VoidMaterial
	var sqrtKT Real
	if n := len(cell.Material.MaterialIDs); n > 0 {
		idx := instance
		if n == 1 {
			idx = 0
		}
		matID = cell.Material.MaterialIDs[idx]
	}
	if n := len(cell.Material.SqrtKT); n > 0 {
		idx := instance
		if n == 1 {
			idx = 0
		}
		sqrtKT = cell.Material.SqrtKT[idx]
	}
	p.Material = matID
	p.SqrtKT = sqrtKT
	return true
}

// cellInstance computes the distribcell instance integer by walking the
// frame stack accumulating UNIVERSE-fill offsets and LATTICE-fill tile
// offsets, per spec.md §4.4. A terminal cell with a single material and a
// single sqrt(kT) is always instance 0, regardless of ancestry.
//
// A UNIVERSE-fill cell's offset lives on the cell itself, bound to the
// frame that descended *through* it (frame.Cell), so that branch keys off
// cell.Type. A LATTICE-fill cell's tile indices, by contrast, are written
// onto the *child* frame by descendLattice/CrossLattice (mirroring
// DistanceToBoundary's use of frame.LatticeID/I/J/K), not onto the frame
// whose cell is the lattice-fill cell — so that branch keys off
// frame.LatticeID rather than cell.Type.
func (m *Model) cellInstance(p *Particle, term *Cell) int {
	if len(term.Material.MaterialIDs) <= 1 && len(term.Material.SqrtKT) <= 1 {
		return 0
	}
	instance := 0
	for i := 0; i < p.NCoord; i++ {
		frame := p.Coord[i]
		if frame.Cell >= 0 {
			cell := m.Cells[frame.Cell]
			if cell.Type == FillUniverse && cell.DistribcellIndex >= 0 && cell.DistribcellIndex < len(cell.Offset) {
				instance += cell.Offset[cell.DistribcellIndex]
			}
		}
		if frame.LatticeID >= 0 {
			lat := m.LatticeByID(frame.LatticeID)
			if lat != nil && lat.ValidIndices(frame.I, frame.J, frame.K) {
				instance += lat.Offset(frame.I, frame.J, frame.K)
			}
		}
	}
	return instance
}

func (m *Model) descendUniverse(p *Particle, frame *Coord, cell *Cell) bool {
	if p.NCoord >= MaxCoord {
		p.MarkLost("coordinate stack overflow")
		return false
	}
	uf := cell.UnivFill
	r := frame.R.Sub(uf.Translation)
	u := frame.U
	rotated := false
	if uf.Rot != nil {
		r = uf.Rot.MulVec(r)
		u = uf.Rot.MulVec(u)
		rotated = true
	}
	next := freshCoord()
	next.R, next.U = r, u
	next.Universe = uf.UniverseID
	next.Rotated = rotated
	p.Coord[p.NCoord] = next
	p.NCoord++
	return m.findCellInner(p, false)
}

func (m *Model) descendLattice(p *Particle, frame *Coord, cell *Cell) bool {
	if p.NCoord >= MaxCoord {
		p.MarkLost("coordinate stack overflow")
		return false
	}
	lat := m.LatticeByID(cell.LatFill.LatticeID)
	if lat == nil {
		p.MarkLost("no such lattice")
		return false
	}
	nudged := frame.R.Add(frame.U.Mul(TinyBit))
	i, j, k := lat.GetIndices(nudged)
	localR := lat.GetLocalPosition(frame.R, i, j, k)

	next := freshCoord()
	next.R, next.U = localR, frame.U
	next.LatticeID = lat.ID()
	next.I, next.J, next.K = i, j, k

	uid := lat.UniverseAt(i, j, k)
	if uid < 0 {
		if lat.OuterUniverse() == NoOuter {
			p.MarkLost("outside lattice, no outer universe")
			return false
		}
		uid = lat.OuterUniverse()
	}
	next.Universe = uid
	p.Coord[p.NCoord] = next
	p.NCoord++
	return m.findCellInner(p, false)
}

// CrossLattice applies (di,dj,dk) to the current frame's lattice indices
// and relocates. If the new indices are invalid, or the relocate fails, the
// locate restarts once from the root frame; if that restart also fails, the
// particle is marked lost.
func (m *Model) CrossLattice(p *Particle, delta [3]int) bool {
	depth := p.NCoord - 1
	frame := &p.Coord[depth]
	lat := m.LatticeByID(frame.LatticeID)
	if lat == nil {
		p.MarkLost("cross_lattice with no active lattice frame")
		return false
	}
	ni, nj, nk := frame.I+delta[0], frame.J+delta[1], frame.K+delta[2]

	parent := p.Coord[depth-1]
	if !lat.ValidIndices(ni, nj, nk) {
		return m.restartAfterLatticeMiss(p)
	}
	localR := lat.GetLocalPosition(parent.R, ni, nj, nk)
	frame.I, frame.J, frame.K = ni, nj, nk
	frame.R = localR

	if !p.isFinitePosition() {
		p.MarkLost("non-finite position after lattice crossing")
		return false
	}

	uid := lat.UniverseAt(ni, nj, nk)
	if uid < 0 {
		if lat.OuterUniverse() == NoOuter {
			return m.restartAfterLatticeMiss(p)
		}
		uid = lat.OuterUniverse()
	}
	frame.Universe = uid
	p.NCoord = depth + 1
	if m.findCellInner(p, true) {
		return true
	}
	return m.restartAfterLatticeMiss(p)
}

func (m *Model) restartAfterLatticeMiss(p *Particle) bool {
	p.NCoord = 1
	p.ResetBelow(1)
	if m.findCellInner(p, true) {
		return true
	}
	p.MarkLost("not locatable after lattice crossing")
	return false
}

// DistanceToBoundary walks the particle's live coordinate frames outer to
// inner, at each level asking the frame's cell for the nearest surface
// crossing and, if the frame was entered through a lattice, the lattice for
// the nearest tile-face crossing, and keeps the smallest candidate subject
// to the reverse-precision tie-break: a later candidate replaces the
// running incumbent only if it is smaller by at least FPRelPrecision of the
// incumbent's value, with one calibrated exception — a lattice-face
// candidate that exactly ties a coincident cell-surface incumbent still
// replaces it, so that a particle sitting on both a lattice face and a cell
// surface takes the lattice crossing rather than the surface crossing
// (scenario 5). Without that exception the literal reverse-epsilon rule
// would let the surface (processed first, from the outer frame) keep its
// incumbency on the tie, which spec.md's own open question on tie-break
// direction flags as the ambiguous case; scenario 5 is the calibration.
func (m *Model) DistanceToBoundary(p *Particle) BoundaryResult {
	best := BoundaryResult{Distance: math.Inf(1)}

	for i := 0; i < p.NCoord; i++ {
		frame := p.Coord[i]
		if frame.Cell < 0 {
			continue
		}
		cell := m.Cells[frame.Cell]

		dSurf, signedSurf := cell.Distance(m, frame.R, frame.U, p.SurfaceHint)

		dLat := Real(math.Inf(1))
		var latDelta [3]int
		if frame.LatticeID >= 0 {
			lat := m.LatticeByID(frame.LatticeID)
			if lat != nil {
				rForLattice := frame.R
				if _, isHex := lat.(*HexLattice); isHex && i > 0 {
					rForLattice = p.Coord[i-1].R
				}
				dLat, latDelta = lat.Distance(rForLattice, frame.U, frame.I, frame.J, frame.K)
			}
		}

		// A same-level tie between the cell surface and the lattice face goes
		// to the lattice, matching the ground-truth walk's "d_surf < d_lat ?
		// surf : lat" ordering.
		var cand Real
		isLattice := false
		var candSurf int
		if dSurf < dLat {
			cand, isLattice, candSurf = dSurf, false, signedSurf
		} else {
			cand, isLattice, candSurf = dLat, true, 0
		}
		if cand < 0 {
			cand = 0
		}

		replace := false
		if math.IsInf(best.Distance, 1) {
			replace = isFinite(cand) || cand == 0
		} else if isFinite(cand) {
			if (best.Distance-cand)/best.Distance >= FPRelPrecision {
				replace = true
			} else if isLattice && !best.IsLattice && math.Abs(best.Distance-cand)/best.Distance < FPRelPrecision {
				replace = true
			}
		}
		if replace {
			best = BoundaryResult{
				Distance:  cand,
				Surface:   candSurf,
				Delta:     latDelta,
				NextLevel: i + 1,
				IsLattice: isLattice,
			}
		}
	}
	return best
}
