package corexs

// Universe is a named, ordered collection of cells. The order is the search
// order for brute-force containment, the direct analogue of the teacher's
// nearestHit scanning typed object slices in declared order.
type Universe struct {
	ID    int
	Cells []int // indices into Model.Cells
}

// Find performs a linear containment search over u's cells, returning the
// index of the first accepting cell, or -1 if none accepts. A well-formed
// geometry has at most one containing cell per point, so "first" and
// "only" coincide.
func (u *Universe) Find(m *Model, r, dir Vec3, prior int) int {
	for _, ci := range u.Cells {
		c := m.Cells[ci]
		if c.Universe != u.ID {
			continue
		}
		if c.Contains(m, r, dir, prior) {
			return ci
		}
	}
	return -1
}

// CountMatches scans every cell in u that accepts (r,dir), recording an
// overlap hit into m.OverlapCount for each accepting cell once overlap
// checking is active. A well-formed geometry always returns 1; anything
// else is the overlap condition spec.md §5's overlap_check_count exists to
// tally and §7 treats as a fatal configuration error.
func (u *Universe) CountMatches(m *Model, r, dir Vec3, prior int) int {
	n := 0
	for _, ci := range u.Cells {
		c := m.Cells[ci]
		if c.Universe != u.ID {
			continue
		}
		if c.Contains(m, r, dir, prior) {
			n++
			if ci < len(m.OverlapCount) {
				m.OverlapCount[ci].Add(1)
			}
		}
	}
	return n
}

// FindAmong is Find restricted to a caller-supplied candidate list (the
// neighbor-list fast path), falling back to the empty result on a miss so
// the caller can retry with FindAmong(u.Cells).
func (u *Universe) FindAmong(m *Model, candidates []int, r, dir Vec3, prior int) int {
	for _, ci := range candidates {
		c := m.Cells[ci]
		if c.Universe != u.ID {
			continue
		}
		if c.Contains(m, r, dir, prior) {
			return ci
		}
	}
	return -1
}
