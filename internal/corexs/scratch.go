package corexs

import "math/rand"

// MacroXS is the per-material, per-thread macroscopic accumulator, reset to
// zero before each material-level evaluation (spec.md §3).
type MacroXS struct {
	Total     Real
	Absorption Real
	Fission   Real
	NuFission Real
	PhotonProd Real

	Coherent       Real
	Incoherent     Real
	Photoelectric  Real
	PairProduction Real
}

// Scratch is the per-goroutine working set threaded explicitly through
// every call rather than held in a global or a goroutine-local map,
// grounded on the teacher's per-worker local RNG + accumulator buffer
// passed through castRays/fireRaysParallelShard.
type Scratch struct {
	Micro       []MicroXS       // indexed by global nuclide id
	MicroPhoton []MicroPhotonXS // indexed by global element id
	Macro       MacroXS
	RNG         *rand.Rand
}

// NewScratch allocates a Scratch sized to the model's nuclide/element
// tables, with its own RNG stream seeded independently per worker so
// results stay deterministic given a fixed thread-to-particle assignment
// (spec.md §5's ordering requirement).
func NewScratch(m *Model, seed int64) *Scratch {
	s := &Scratch{
		Micro:       make([]MicroXS, len(m.Nuclides)),
		MicroPhoton: make([]MicroPhotonXS, len(m.Elements)),
		RNG:         rand.New(rand.NewSource(seed)),
	}
	for i := range s.Micro {
		s.Micro[i].ISab = NoSab
		s.Micro[i].LastE = -1
	}
	for i := range s.MicroPhoton {
		s.MicroPhoton[i].LastE = -1
	}
	return s
}
