package corexs

// ParticleKind distinguishes the calculate_xs dispatch in model.go.
type ParticleKind int

const (
	Neutron ParticleKind = iota
	Photon
)

// Coord is one frame of a particle's coordinate-frame stack: the universe
// it is currently inside, the cell bound within that universe (if any),
// local position/direction, and, when the frame was entered through a
// lattice, the lattice id and tile indices.
type Coord struct {
	Universe int
	Cell     int // -1 if unset
	R, U     Vec3
	LatticeID int // -1 if not entered via a lattice
	I, J, K   int
	Rotated   bool
}

func freshCoord() Coord {
	return Coord{Cell: -1, LatticeID: -1}
}

// Particle carries the locator's coordinate-frame stack plus the transport
// state the material engine consumes.
type Particle struct {
	Coord  [MaxCoord]Coord
	NCoord int

	Kind ParticleKind
	E    Real
	SqrtKT Real

	// SurfaceHint is the signed id of the surface last crossed, or 0 if
	// none (a fresh particle or one that just crossed a lattice face).
	SurfaceHint int

	Material     int // VoidMaterial allowed
	CellInstance int

	Lost       bool
	LostReason string
}

// NewParticle returns a particle with an empty coordinate stack, ready for
// a first FindCell call.
func NewParticle() *Particle {
	p := &Particle{Material: VoidMaterial}
	for i := range p.Coord {
		p.Coord[i] = freshCoord()
	}
	return p
}

// ResetBelow clears coordinate frames at index >= n, the "deeper frames are
// reset" step of find_cell.
func (p *Particle) ResetBelow(n int) {
	for i := n; i < MaxCoord; i++ {
		p.Coord[i] = freshCoord()
	}
}

// MarkLost records a non-fatal particle-level failure (spec.md §7's
// "recoverable by marking particle lost").
func (p *Particle) MarkLost(reason string) {
	p.Lost = true
	p.LostReason = reason
}

func (p *Particle) isFinitePosition() bool {
	c := p.Coord[p.NCoord-1]
	return isFinite(c.R.X) && isFinite(c.R.Y) && isFinite(c.R.Z)
}
