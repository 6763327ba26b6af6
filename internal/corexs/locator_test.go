package corexs

import (
	"math"
	"testing"
)

// lattice2x2Model builds scenario 4's geometry: root universe U0 (id 0) with
// one cell C0 (id 0) filled by a 2x2 rect lattice L of child universes, each
// holding a single pin cell filled with material M.
func lattice2x2Model() (*Model, *Particle) {
	m := NewModel()

	lat := &RectLattice{
		Surf:      0,
		Dims:      [3]int{2, 2, 1},
		Pitch:     Vec3{1, 1, 1},
		LowerLeft: Vec3{0, 0, -0.5},
		Universes: [][][]int{{{1, 1}, {1, 1}}},
		Outer:     NoOuter,
	}
	m.Lattices = []Lattice{lat}

	c0 := &Cell{ID: 0, Universe: 0, Region: &Region{Kind: HalfSpaceConjunction}, Simple: true,
		Type: FillLattice, LatFill: LatticeFill{LatticeID: 0}}
	pin := &Cell{ID: 1, Universe: 1, Region: &Region{Kind: HalfSpaceConjunction}, Simple: true,
		Type: FillMaterial, Material: MaterialFill{MaterialIDs: []int{5}}}
	m.Cells = []*Cell{c0, pin}

	m.Universes = []*Universe{
		{ID: 0, Cells: []int{0}},
		{ID: 1, Cells: []int{1}},
	}

	p := NewParticle()
	p.Coord[0] = freshCoord()
	p.Coord[0].Universe = 0
	p.Coord[0].R = Vec3{0.5, 0.5, 0}
	p.Coord[0].U = Vec3{1, 0, 0}
	p.NCoord = 1
	return m, p
}

func TestLocatorDescendsThroughLatticeToPin(t *testing.T) {
	m, p := lattice2x2Model()
	if !m.FindCell(p, false) {
		t.Fatalf("find_cell failed: lost=%v reason=%q", p.Lost, p.LostReason)
	}
	if p.NCoord != 3 {
		t.Fatalf("expected n_coord=3, got %d", p.NCoord)
	}
	if p.Coord[0].Universe != 0 || p.Coord[0].Cell != 0 {
		t.Fatalf("frame 0: universe=%d cell=%d, want universe=0 cell=0", p.Coord[0].Universe, p.Coord[0].Cell)
	}
	if p.Coord[1].LatticeID != 0 || p.Coord[1].I != 0 || p.Coord[1].J != 0 || p.Coord[1].K != 0 {
		t.Fatalf("frame 1: lattice=%d indices=(%d,%d,%d), want lattice=0 (0,0,0)",
			p.Coord[1].LatticeID, p.Coord[1].I, p.Coord[1].J, p.Coord[1].K)
	}
	if p.Coord[2].Universe != 1 || p.Coord[2].Cell != 1 {
		t.Fatalf("frame 2: universe=%d cell=%d, want universe=1 cell=1", p.Coord[2].Universe, p.Coord[2].Cell)
	}
	if p.Material != 5 {
		t.Fatalf("expected material 5, got %d", p.Material)
	}
}

func TestCoincidentBoundaryPrefersLattice(t *testing.T) {
	m, p := lattice2x2Model()
	// Bound C0 with a surface exactly at the lattice's internal face x=1.
	m.Surfaces = append(m.Surfaces, &XPlane{Surf: 1, X0: 1})
	c0 := m.Cells[0]
	c0.Region = &Region{Kind: HalfSpaceConjunction, Halfs: []int{-1}}

	if !m.FindCell(p, false) {
		t.Fatalf("find_cell failed: lost=%v reason=%q", p.Lost, p.LostReason)
	}
	res := m.DistanceToBoundary(p)
	if !res.IsLattice {
		t.Fatalf("expected the lattice crossing to win the coincident-boundary tie, got surface=%d", res.Surface)
	}
	if math.Abs(res.Distance-0.5) > 1e-9 {
		t.Fatalf("expected distance 0.5, got %v", res.Distance)
	}
}

func TestLatticeWithNoOuterFailsNonFatally(t *testing.T) {
	m, p := lattice2x2Model()
	p.Coord[0].R = Vec3{5, 5, 0} // well outside the 2x2 tiled region
	ok := m.FindCell(p, false)
	if ok {
		t.Fatalf("expected find_cell to fail outside the lattice with no outer universe")
	}
	if !p.Lost {
		t.Fatalf("expected particle to be marked lost")
	}
}

func TestRotatedFillMatchesScenario6(t *testing.T) {
	m := NewModel()
	rot := EulerXYZ(0, 0, math.Pi/2)
	c0 := &Cell{ID: 0, Universe: 0, Region: &Region{Kind: HalfSpaceConjunction}, Simple: true,
		Type: FillUniverse, UnivFill: UniverseFill{UniverseID: 1, Translation: Vec3{0, 0, 0}, Rot: &rot}}
	child := &Cell{ID: 1, Universe: 1, Region: &Region{Kind: HalfSpaceConjunction}, Simple: true,
		Type: FillMaterial, Material: MaterialFill{MaterialIDs: []int{9}}}
	m.Cells = []*Cell{c0, child}
	m.Universes = []*Universe{{ID: 0, Cells: []int{0}}, {ID: 1, Cells: []int{1}}}

	p := NewParticle()
	p.Coord[0] = freshCoord()
	p.Coord[0].Universe = 0
	p.Coord[0].R = Vec3{1, 0, 0}
	p.Coord[0].U = Vec3{1, 0, 0}
	p.NCoord = 1

	if !m.FindCell(p, false) {
		t.Fatalf("find_cell failed: lost=%v reason=%q", p.Lost, p.LostReason)
	}
	want := Vec3{0, 1, 0}
	got := p.Coord[1].R
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 || math.Abs(got.Z-want.Z) > 1e-9 {
		t.Fatalf("rotated child frame position: got %v want %v", got, want)
	}
	if !p.Coord[1].Rotated {
		t.Fatalf("expected frame 1 to be marked rotated")
	}
}

func TestDistanceToBoundaryNeverNegative(t *testing.T) {
	m, p := lattice2x2Model()
	if !m.FindCell(p, false) {
		t.Fatalf("find_cell failed")
	}
	res := m.DistanceToBoundary(p)
	if res.Distance < 0 {
		t.Fatalf("distance_to_boundary returned negative distance %v", res.Distance)
	}
}

func TestOverlapCheckPanicsOnDoubleClaim(t *testing.T) {
	m := NewModel()
	m.Surfaces = []Surface{&XPlane{Surf: 1, X0: 0}}
	// Both cells claim x<0: an overlapping pair.
	a := &Cell{ID: 0, Universe: 0, Region: &Region{Kind: HalfSpaceConjunction, Halfs: []int{-1}}, Simple: true, Type: FillMaterial}
	b := &Cell{ID: 1, Universe: 0, Region: &Region{Kind: HalfSpaceConjunction, Halfs: []int{-1}}, Simple: true, Type: FillMaterial}
	m.Cells = []*Cell{a, b}
	m.Universes = []*Universe{{ID: 0, Cells: []int{0, 1}}}
	m.OverlapCheck = true
	m.InitOverlapCounters()

	p := NewParticle()
	p.Coord[0] = freshCoord()
	p.Coord[0].Universe = 0
	p.Coord[0].R = Vec3{-1, 0, 0}
	p.Coord[0].U = Vec3{1, 0, 0}
	p.NCoord = 1

	defer func() {
		if recover() == nil {
			t.Fatalf("expected overlap check to panic on a double-claimed point")
		}
	}()
	m.FindCell(p, false)
}

func TestOverlapCheckCountsEveryAcceptingCell(t *testing.T) {
	m := NewModel()
	m.Surfaces = []Surface{&XPlane{Surf: 1, X0: 0}}
	a := &Cell{ID: 0, Universe: 0, Region: &Region{Kind: HalfSpaceConjunction, Halfs: []int{-1}}, Simple: true, Type: FillMaterial}
	b := &Cell{ID: 1, Universe: 0, Region: &Region{Kind: HalfSpaceConjunction, Halfs: []int{-1}}, Simple: true, Type: FillMaterial}
	m.Cells = []*Cell{a, b}
	u := &Universe{ID: 0, Cells: []int{0, 1}}
	m.Universes = []*Universe{u}
	m.InitOverlapCounters()

	n := u.CountMatches(m, Vec3{-1, 0, 0}, Vec3{1, 0, 0}, 0)
	if n != 2 {
		t.Fatalf("expected both cells to match, got %d", n)
	}
	if m.OverlapCount[0].Load() != 1 || m.OverlapCount[1].Load() != 1 {
		t.Fatalf("expected one overlap hit recorded per cell, got %d,%d", m.OverlapCount[0].Load(), m.OverlapCount[1].Load())
	}
}

// distribcellModel builds a UNIVERSE-fill cell carrying a distribcell offset,
// feeding a LATTICE-fill cell whose lattice carries its own offset table,
// terminating in a material cell with three (material, sqrt(kT)) instances —
// enough ancestry to exercise both branches of cellInstance.
func distribcellModel() (*Model, *Particle) {
	m := NewModel()

	lat := &RectLattice{
		Surf:      0,
		Dims:      [3]int{2, 1, 1},
		Pitch:     Vec3{1, 1, 1},
		LowerLeft: Vec3{0, -0.5, -0.5},
		Universes: [][][]int{{{2, 2}}},
		Outer:     NoOuter,
		Offsets:   [][][]int{{{0, 1}}},
	}
	m.Lattices = []Lattice{lat}

	c0 := &Cell{ID: 0, Universe: 0, Region: &Region{Kind: HalfSpaceConjunction}, Simple: true,
		Type: FillUniverse, UnivFill: UniverseFill{UniverseID: 1},
		DistribcellIndex: 0, Offset: []int{1}}
	c1 := &Cell{ID: 1, Universe: 1, Region: &Region{Kind: HalfSpaceConjunction}, Simple: true,
		Type: FillLattice, LatFill: LatticeFill{LatticeID: 0}}
	c2 := &Cell{ID: 2, Universe: 2, Region: &Region{Kind: HalfSpaceConjunction}, Simple: true,
		Type: FillMaterial, Material: MaterialFill{
			MaterialIDs: []int{10, 20, 30},
			SqrtKT:      []Real{0.1, 0.2, 0.3},
		}}
	m.Cells = []*Cell{c0, c1, c2}

	m.Universes = []*Universe{
		{ID: 0, Cells: []int{0}},
		{ID: 1, Cells: []int{1}},
		{ID: 2, Cells: []int{2}},
	}

	p := NewParticle()
	p.Coord[0] = freshCoord()
	p.Coord[0].Universe = 0
	p.Coord[0].R = Vec3{1.5, 0, 0}
	p.Coord[0].U = Vec3{1, 0, 0}
	p.NCoord = 1
	return m, p
}

func TestCellInstanceWalksDistribcellOffsets(t *testing.T) {
	m, p := distribcellModel()
	if !m.FindCell(p, false) {
		t.Fatalf("find_cell failed: lost=%v reason=%q", p.Lost, p.LostReason)
	}
	if p.CellInstance != 2 {
		t.Fatalf("cell_instance: got %d want 2 (1 from the universe-fill offset, 1 from the lattice tile offset)", p.CellInstance)
	}
	if p.Material != 30 {
		t.Fatalf("material: got %d want 30 (instance 2 of MaterialIDs)", p.Material)
	}
	if math.Abs(p.SqrtKT-0.3) > 1e-12 {
		t.Fatalf("sqrt_kt: got %v want 0.3 (instance 2 of SqrtKT)", p.SqrtKT)
	}
}

func TestCrossLatticeMarksLostOnNonFinitePosition(t *testing.T) {
	m, p := lattice2x2Model()
	if !m.FindCell(p, false) {
		t.Fatalf("find_cell failed: lost=%v reason=%q", p.Lost, p.LostReason)
	}
	// Corrupt the parent frame's position so the relocated local position
	// CrossLattice computes for the child frame comes out non-finite.
	p.Coord[0].R.X = math.Inf(1)
	if m.CrossLattice(p, [3]int{1, 0, 0}) {
		t.Fatalf("expected cross_lattice to fail on a non-finite relocated position")
	}
	if !p.Lost || p.LostReason != "non-finite position after lattice crossing" {
		t.Fatalf("expected particle lost with the non-finite-position reason, got lost=%v reason=%q", p.Lost, p.LostReason)
	}
}

func TestSelfSurfaceNotReDetected(t *testing.T) {
	p := &XPlane{Surf: 7, X0: 0}
	d := p.Distance(Vec3{0, 0, 0}, Vec3{1, 0, 0}, 7)
	if !math.IsInf(d, 1) {
		t.Fatalf("particle on surface 7 with prior_surface=7 should get +Inf, got %v", d)
	}
}
