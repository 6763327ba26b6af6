package corexs

// Real is the floating-point type used throughout the geometry and
// cross-section engine.
type Real = float64

// MaxCoord bounds the number of nested coordinate frames a particle can
// carry (root universe plus nested universe/lattice fills).
const MaxCoord = 10

// TinyBit nudges a position along the direction of travel before asking a
// lattice for tile indices, so that a particle sitting exactly on a lattice
// face resolves to the tile it is entering rather than the one it left.
const TinyBit = 1e-8

// FPRelPrecision is the relative-epsilon guard used when comparing boundary
// distances from different hierarchy levels: a candidate from a deeper level
// replaces the running incumbent only if it is smaller by at least this
// fraction of the incumbent, except that a lattice-face candidate tying a
// surface incumbent within this fraction also replaces it. See
// Model.DistanceToBoundary.
const FPRelPrecision = 1e-10

// NoOuter marks a lattice with no outer-universe fallback.
const NoOuter = -1

// VoidMaterial is the sentinel material id meaning "no material" (vacuum).
const VoidMaterial = -1

const (
	epsDist   = 1e-12
	bumpShift = 1e-9
)
