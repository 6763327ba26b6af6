package corexs

import "math"

// Lattice tiles child universes inside a parent cell, either on a
// rectangular or a hexagonal grid, with an optional outer universe for
// positions beyond the tiled region.
type Lattice interface {
	ID() int
	ValidIndices(i, j, k int) bool
	GetIndices(r Vec3) (int, int, int)
	GetLocalPosition(r Vec3, i, j, k int) Vec3
	// Distance returns the distance to the nearest tile-face crossing and
	// the index delta (di,dj,dk) of the tile entered.
	Distance(r, u Vec3, i, j, k int) (Real, [3]int)
	UniverseAt(i, j, k int) int // -1 if indices invalid
	OuterUniverse() int         // NoOuter sentinel
	// Offset returns the distribcell offset contribution of tile (i,j,k),
	// or 0 if the lattice carries no offset table.
	Offset(i, j, k int) int
}

// RectLattice is an axis-aligned rectangular tiling. Universes is indexed
// [k][j][i]; LowerLeft is the corner of tile (0,0,0).
type RectLattice struct {
	Surf      int
	Dims      [3]int
	Pitch     Vec3
	LowerLeft Vec3
	Universes [][][]int
	Outer     int
	Offsets   [][][]int // optional; nil if the lattice carries no distribcell offsets
}

func (l *RectLattice) ID() int { return l.Surf }

func (l *RectLattice) ValidIndices(i, j, k int) bool {
	return i >= 0 && i < l.Dims[0] && j >= 0 && j < l.Dims[1] && k >= 0 && k < l.Dims[2]
}

// GetIndices maps a lattice-local position to tile indices via rectangular
// modulo-pitch arithmetic: floor((r-lowerLeft)/pitch) per axis.
func (l *RectLattice) GetIndices(r Vec3) (int, int, int) {
	i := int(math.Floor((r.X - l.LowerLeft.X) / l.Pitch.X))
	j := int(math.Floor((r.Y - l.LowerLeft.Y) / l.Pitch.Y))
	k := int(math.Floor((r.Z - l.LowerLeft.Z) / l.Pitch.Z))
	return i, j, k
}

// GetLocalPosition returns r expressed relative to the center of tile
// (i,j,k).
func (l *RectLattice) GetLocalPosition(r Vec3, i, j, k int) Vec3 {
	center := Vec3{
		l.LowerLeft.X + (Real(i)+0.5)*l.Pitch.X,
		l.LowerLeft.Y + (Real(j)+0.5)*l.Pitch.Y,
		l.LowerLeft.Z + (Real(k)+0.5)*l.Pitch.Z,
	}
	return r.Sub(center)
}

// Distance takes r already expressed relative to tile (i,j,k)'s center —
// the "current level" position spec.md §4.3 calls for with rect lattices,
// which is exactly what find_cell_inner already wrote into the coordinate
// frame on descent — and returns the distance to the nearest tile face the
// ray exits through.
func (l *RectLattice) Distance(r, u Vec3, i, j, k int) (Real, [3]int) {
	local := r
	bestD := Real(math.Inf(1))
	var delta [3]int
	axes := [3]struct {
		pos, dir, half Real
		d              [3]int
		dNeg           [3]int
	}{
		{local.X, u.X, l.Pitch.X / 2, [3]int{1, 0, 0}, [3]int{-1, 0, 0}},
		{local.Y, u.Y, l.Pitch.Y / 2, [3]int{0, 1, 0}, [3]int{0, -1, 0}},
		{local.Z, u.Z, l.Pitch.Z / 2, [3]int{0, 0, 1}, [3]int{0, 0, -1}},
	}
	for _, ax := range axes {
		if ax.dir == 0 {
			continue
		}
		var d Real
		var dl [3]int
		if ax.dir > 0 {
			d = (ax.half - ax.pos) / ax.dir
			dl = ax.d
		} else {
			d = (-ax.half - ax.pos) / ax.dir
			dl = ax.dNeg
		}
		if d >= 0 && d < bestD {
			bestD = d
			delta = dl
		}
	}
	if bestD < 0 {
		bestD = 0
	}
	return bestD, delta
}

func (l *RectLattice) UniverseAt(i, j, k int) int {
	if !l.ValidIndices(i, j, k) {
		return -1
	}
	return l.Universes[k][j][i]
}

func (l *RectLattice) OuterUniverse() int { return l.Outer }

func (l *RectLattice) Offset(i, j, k int) int {
	if l.Offsets == nil || !l.ValidIndices(i, j, k) {
		return 0
	}
	return l.Offsets[k][j][i]
}

// HexLattice is a hexagonal tiling of child universes using pointy-top
// axial coordinates (ax,ay) plus an axial layer k, flattened into a square
// array of side 2*NRings-1 for storage.
type HexLattice struct {
	Surf      int
	NRings    int
	NAxial    int
	Pitch     Real // hex circumradius (center to corner); adjacent hex centers are sqrt(3)*Pitch apart
	PitchZ    Real
	Center    Vec3
	Universes []int // flat, size (2*NRings-1)^2 * NAxial
	Outer     int
	Offsets   []int // optional, same flat layout as Universes; nil if unset
}

func (l *HexLattice) ID() int { return l.Surf }

func (l *HexLattice) size() int { return 2*l.NRings - 1 }

// axialValid reports whether (ax,ay) lies within NRings-1 of the hex
// origin, the cube-coordinate containment test for a hexagon of hexagons.
func (l *HexLattice) axialValid(ax, ay int) bool {
	az := -ax - ay
	m := absInt(ax)
	if absInt(ay) > m {
		m = absInt(ay)
	}
	if absInt(az) > m {
		m = absInt(az)
	}
	return m < l.NRings
}

// ValidIndices takes storage indices (i,j,k), i,j in [0,size), already
// offset by NRings-1 from axial coordinates.
func (l *HexLattice) ValidIndices(i, j, k int) bool {
	if k < 0 || k >= l.NAxial {
		return false
	}
	ax, ay := i-(l.NRings-1), j-(l.NRings-1)
	return l.axialValid(ax, ay)
}

func (l *HexLattice) flatIndex(i, j, k int) int {
	s := l.size()
	return (k*s+j)*s + i
}

// axialToCartesian converts axial hex coordinates to a 2D cartesian offset
// from the lattice center, using the standard pointy-top transform.
func (l *HexLattice) axialToCartesian(ax, ay Real) (Real, Real) {
	x := l.Pitch * (math.Sqrt(3) * (ax + ay/2))
	y := l.Pitch * (1.5 * ay)
	return x, y
}

// cartesianToAxial inverts axialToCartesian and rounds to the nearest valid
// hex via cube-coordinate rounding.
func (l *HexLattice) cartesianToAxial(x, y Real) (int, int) {
	ayf := y / (1.5 * l.Pitch)
	axf := x/(math.Sqrt(3)*l.Pitch) - ayf/2
	azf := -axf - ayf

	rx, ry, rz := math.Round(axf), math.Round(ayf), math.Round(azf)
	dx, dy, dz := math.Abs(rx-axf), math.Abs(ry-ayf), math.Abs(rz-azf)

	switch {
	case dx > dy && dx > dz:
		rx = -ry - rz
	case dy > dz:
		ry = -rx - rz
	}
	return int(rx), int(ry)
}

// GetIndices maps a lattice-local position to storage indices via hex
// axial coordinates, with k resolved from the z pitch.
func (l *HexLattice) GetIndices(r Vec3) (int, int, int) {
	local := r.Sub(l.Center)
	ax, ay := l.cartesianToAxial(local.X, local.Y)
	k := int(math.Floor(local.Z/l.PitchZ + Real(l.NAxial)/2))
	return ax + (l.NRings - 1), ay + (l.NRings - 1), k
}

func (l *HexLattice) GetLocalPosition(r Vec3, i, j, k int) Vec3 {
	ax, ay := Real(i-(l.NRings-1)), Real(j-(l.NRings-1))
	cx, cy := l.axialToCartesian(ax, ay)
	cz := (Real(k) - Real(l.NAxial)/2 + 0.5) * l.PitchZ
	center := l.Center.Add(Vec3{cx, cy, cz})
	return r.Sub(center)
}

// hexNeighborDeltas are the six axial unit steps, pointy-top order.
var hexNeighborDeltas = [6][2]int{{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1}}

// Distance walks the six in-plane neighbor directions plus the two axial
// (z) faces, per spec.md §4.3 the caller passes the parent-level r for hex
// lattices (projection onto the lattice plane happens one level up).
func (l *HexLattice) Distance(r, u Vec3, i, j, k int) (Real, [3]int) {
	local := l.GetLocalPosition(r, i, j, k)
	bestD := Real(math.Inf(1))
	var delta [3]int

	if u.Z > 0 {
		d := (l.PitchZ/2 - local.Z) / u.Z
		if d >= 0 && d < bestD {
			bestD, delta = d, [3]int{0, 0, 1}
		}
	} else if u.Z < 0 {
		d := (-l.PitchZ/2 - local.Z) / u.Z
		if d >= 0 && d < bestD {
			bestD, delta = d, [3]int{0, 0, -1}
		}
	}

	apothem := l.Pitch * math.Sqrt(3) / 2
	for _, dd := range hexNeighborDeltas {
		nx, ny := l.axialToCartesian(Real(dd[0]), Real(dd[1]))
		n := Vec3{nx, ny, 0}.Norm()
		denom := n.Dot(u)
		if denom <= 0 {
			continue
		}
		d := (apothem - n.Dot(local)) / denom
		if d >= 0 && d < bestD {
			bestD, delta = d, [3]int{dd[0], dd[1], 0}
		}
	}
	if bestD < 0 {
		bestD = 0
	}
	return bestD, delta
}

func (l *HexLattice) UniverseAt(i, j, k int) int {
	if !l.ValidIndices(i, j, k) {
		return -1
	}
	return l.Universes[l.flatIndex(i, j, k)]
}

func (l *HexLattice) OuterUniverse() int { return l.Outer }

func (l *HexLattice) Offset(i, j, k int) int {
	if l.Offsets == nil || !l.ValidIndices(i, j, k) {
		return 0
	}
	return l.Offsets[l.flatIndex(i, j, k)]
}
