package corexs

import "sync/atomic"

// Model is the immutable-after-build registry of every geometry and
// material object, addressed everywhere else by plain integer index rather
// than shared-ownership pointers (spec.md §9's "cyclic references" design
// note). Mirrors the teacher's flat per-kind slices hung off Scene, just
// split across more kinds.
type Model struct {
	Surfaces  []Surface
	Cells     []*Cell
	Universes []*Universe
	Lattices  []Lattice
	Materials []*Material

	Nuclides      []Nuclide
	Elements      []Element
	ThermalTables []ThermalTable

	RootUniverse int

	// OverlapCheck enables the debug overlap-detection path in FindCell:
	// when set, every cell lookup rescans its whole universe instead of
	// stopping at the first match, and two or more accepting cells at the
	// same point is a fatal configuration error (spec.md §5, §7).
	OverlapCheck bool
	// OverlapCount tallies, per cell, how many times that cell was found
	// to accept a point during an overlap-check scan (CountMatches),
	// whether or not another cell also accepted it. One slot per entry
	// in Cells, populated by InitOverlapCounters once the cell list is
	// final. Race-safe under concurrent transport since each slot is an
	// atomic.Int64 rather than a plain int guarded by a shared lock.
	OverlapCount []atomic.Int64
}

// NewModel returns an empty model with root universe 0, ready to have Surfaces/Cells/... appended before use.
func NewModel() *Model {
	return &Model{RootUniverse: 0}
}

// InitOverlapCounters sizes OverlapCount to match the final Cells slice.
// Callers that enable OverlapCheck must call this once after Cells is
// populated and before running any particle transport.
func (m *Model) InitOverlapCounters() {
	m.OverlapCount = make([]atomic.Int64, len(m.Cells))
}

// CellUniverse returns the Universe value a cell belongs to.
func (m *Model) CellUniverse(c *Cell) *Universe {
	for _, u := range m.Universes {
		if u.ID == c.Universe {
			return u
		}
	}
	return nil
}

// UniverseByID looks up a universe by its declared id (not its slice
// index), since lattice/cell fills reference universes by id.
func (m *Model) UniverseByID(id int) *Universe {
	for _, u := range m.Universes {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// LatticeByID looks up a lattice by its declared id.
func (m *Model) LatticeByID(id int) Lattice {
	for _, l := range m.Lattices {
		if l.ID() == id {
			return l
		}
	}
	return nil
}

// MaterialByID looks up a material by its declared id, since cells and
// particles reference materials by id rather than slice index.
func (m *Model) MaterialByID(id int) *Material {
	for _, mat := range m.Materials {
		if mat.ID == id {
			return mat
		}
	}
	return nil
}

// CalculateXS is spec.md §4.5's calculate_xs(particle): it resolves the
// particle's bound material and dispatches to the neutron or photon cross
// section calculation according to p.Kind, the inner loop's second half
// after FindCell. A void-bound particle gets a zeroed scratch with no
// lookup attempted.
func (m *Model) CalculateXS(p *Particle, settings *Settings, scratch *Scratch) {
	if p.Material == VoidMaterial {
		scratch.Macro = MacroXS{}
		return
	}
	mat := m.MaterialByID(p.Material)
	if mat == nil {
		scratch.Macro = MacroXS{}
		return
	}
	switch p.Kind {
	case Photon:
		mat.CalculatePhotonXS(m, p.E, scratch)
	default:
		mat.CalculateNeutronXS(m, p.E, p.SqrtKT, settings, scratch)
	}
}
