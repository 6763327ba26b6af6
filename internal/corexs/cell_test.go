package corexs

import (
	"math"
	"sync"
	"testing"
)

func boxModel() (*Model, *Cell) {
	m := NewModel()
	m.Surfaces = []Surface{
		&XPlane{Surf: 1, X0: -1},
		&XPlane{Surf: 2, X0: 1},
	}
	cell := &Cell{
		ID:       1,
		Universe: 0,
		Region:   &Region{Kind: HalfSpaceConjunction, Halfs: []int{1, -2}},
		Simple:   true,
		Type:     FillMaterial,
		Material: MaterialFill{MaterialIDs: []int{7}},
	}
	m.Cells = []*Cell{cell}
	return m, cell
}

func TestCellDistanceAndSign(t *testing.T) {
	m, cell := boxModel()
	d, surf := cell.Distance(m, Vec3{0, 0, 0}, Vec3{1, 0, 0}, 0)
	if math.Abs(d-1) > 1e-12 {
		t.Fatalf("distance to x=1 face: got %v want 1", d)
	}
	if surf != 2 {
		t.Fatalf("expected to leave through surface 2 (positive sign), got %d", surf)
	}
}

func TestCellNeighborsConcurrentAppend(t *testing.T) {
	_, cell := boxModel()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			cell.AppendNeighbor(id)
		}(i)
	}
	wg.Wait()
	if len(cell.NeighborSnapshot()) != 50 {
		t.Fatalf("expected 50 appended neighbors, got %d", len(cell.NeighborSnapshot()))
	}
}

func TestCellContainsRespectsHalfSpaces(t *testing.T) {
	m, cell := boxModel()
	if !cell.Contains(m, Vec3{0, 0, 0}, Vec3{1, 0, 0}, 0) {
		t.Fatalf("origin should be inside [-1,1] slab")
	}
	if cell.Contains(m, Vec3{5, 0, 0}, Vec3{1, 0, 0}, 0) {
		t.Fatalf("x=5 should be outside [-1,1] slab")
	}
}
