package corexs

import (
	"math"

	"github.com/pkg/errors"
)

// avogadro and neutronMassAMU are the constants spec.md §4.5's density
// conversion formulas are defined in terms of, matching OpenMC's own
// barn-cm unit convention (Avogadro's number scaled by 1e-24).
const (
	avogadro       = 0.602214076
	neutronMassAMU = 1.008664916
)

// macroSentinel marks a "nuclide" slot that is actually a bulk macroscopic
// cross section (multigroup mode), per spec.md §6's persistence split.
const macroSentinel = -1.0

// DensityUnits enumerates the units accepted by SetDensity.
type DensityUnits int

const (
	UnitsAtomBcm DensityUnits = iota
	UnitsGramCC
)

// Material is the per-material data model: nuclide composition, density in
// two simultaneous normalizations, thermal-table assignment, and the
// mat_nuclide_index reverse map.
type Material struct {
	ID   int
	Name string

	Nuclide        []int  // global nuclide ids
	AtomDensity    []Real // signed on input (positive=atom frac, negative=weight frac); >=0 post-finalize
	IsotropicInLab []bool // optional, same length as Nuclide when set

	Element     []int // global element ids, parallel to Nuclide, photon mode only
	MacroXSName string
	IsMacroscopic bool

	// TotalDensity is the raw input scalar before finalize: sign encodes
	// the unit (positive=atom/b-cm, negative=g/cm3). After finalize both
	// AtomDensityTotal and DensityGpcc are populated.
	TotalDensity     Real
	AtomDensityTotal Real
	DensityGpcc      Real

	Volume      Real // < 0 means unset
	Temperature Real // < 0 means unset

	Fissionable bool
	Depletable  bool

	ThermalTables []ThermalAssignment

	MatNuclideIndex map[int]int // global nuclide id -> local slot, absent keys mean -1

	finalized bool
}

// NewMaterial returns a material with volume/temperature marked unset.
func NewMaterial(id int, name string) *Material {
	return &Material{ID: id, Name: name, Volume: -1, Temperature: -1}
}

// AddNuclide appends a nuclide at the given signed input density (positive
// atom fraction, negative weight fraction) prior to Finalize.
func (mat *Material) AddNuclide(globalID int, density Real) {
	mat.Nuclide = append(mat.Nuclide, globalID)
	mat.AtomDensity = append(mat.AtomDensity, density)
}

// Finalize runs the normalization pipeline of spec.md §4.5 step 1-7 (step 8,
// TTB precomputation, lives in ttb.go and is invoked separately by callers
// that enabled photon transport with electron_treatment=TTB).
func (mat *Material) Finalize(m *Model) error {
	if len(mat.Nuclide) == 0 {
		return errors.Errorf("material %d (%s): finalize called on empty material", mat.ID, mat.Name)
	}

	awr := make([]Real, len(mat.Nuclide))
	fissionable := false
	for i, gid := range mat.Nuclide {
		n := m.Nuclides[gid]
		awr[i] = n.AWR()
		if n.Fissionable() {
			fissionable = true
		}
	}
	mat.Fissionable = fissionable

	// Step 1: normalize to atom fractions.
	fractions := make([]Real, len(mat.AtomDensity))
	isWeight := mat.AtomDensity[0] < 0
	sum := Real(0)
	if isWeight {
		for i, d := range mat.AtomDensity {
			fractions[i] = -d / awr[i]
			sum += fractions[i]
		}
	} else {
		for i, d := range mat.AtomDensity {
			fractions[i] = d
			sum += fractions[i]
		}
	}
	if sum == 0 {
		return errors.Errorf("material %d (%s): nuclide fractions sum to zero", mat.ID, mat.Name)
	}
	for i := range fractions {
		fractions[i] /= sum
	}

	// Step 2: total atom/b-cm.
	var atomTotal Real
	if mat.TotalDensity < 0 {
		weightedAWR := Real(0)
		for i, x := range fractions {
			weightedAWR += x * awr[i]
		}
		atomTotal = math.Abs(mat.TotalDensity) * avogadro / neutronMassAMU / weightedAWR
	} else {
		atomTotal = mat.TotalDensity
	}
	mat.AtomDensityTotal = atomTotal

	// Step 3: per-nuclide atom/b-cm.
	for i := range mat.AtomDensity {
		mat.AtomDensity[i] = fractions[i] * atomTotal
	}

	// Step 4: density_gpcc.
	rho := Real(0)
	for i, N := range mat.AtomDensity {
		rho += N * awr[i] * neutronMassAMU / avogadro
	}
	mat.DensityGpcc = rho

	// Step 6: thermal table sort + validation happens in InitThermal,
	// called separately so geometry/material loading controls ordering
	// against table availability (spec.md §4.5 step 6 is idempotent once
	// tables are assigned).

	// Step 7: mat_nuclide_index.
	mat.MatNuclideIndex = make(map[int]int, len(mat.Nuclide))
	for slot, gid := range mat.Nuclide {
		mat.MatNuclideIndex[gid] = slot
	}

	mat.finalized = true
	return nil
}

// LocalSlot returns the local nuclide slot for a global nuclide id, or -1
// if the material does not contain it — the mat_nuclide_index contract.
func (mat *Material) LocalSlot(globalID int) int {
	if slot, ok := mat.MatNuclideIndex[globalID]; ok {
		return slot
	}
	return -1
}

// InitThermal assigns thermal-scattering tables to local nuclide slots by
// matching accepted nuclide names, verifying each nuclide is claimed by at
// most one table, then sorting the assignment list by local slot (spec.md
// §4.5 step 6, §8's sortedness invariant).
func (mat *Material) InitThermal(m *Model, assignments []struct {
	TableID  int
	Fraction Real
}) error {
	claimed := make(map[int]int) // local slot -> table id
	var out []ThermalAssignment
	for _, a := range assignments {
		table := &m.ThermalTables[a.TableID]
		matched := false
		for slot, gid := range mat.Nuclide {
			name := m.Nuclides[gid].Name()
			if !table.Accepts(name) {
				continue
			}
			if prev, ok := claimed[slot]; ok {
				return errors.Errorf("material %d (%s): nuclide slot %d claimed by tables %d and %d",
					mat.ID, mat.Name, slot, prev, a.TableID)
			}
			claimed[slot] = a.TableID
			out = append(out, ThermalAssignment{TableID: a.TableID, LocalSlot: slot, Fraction: a.Fraction})
			matched = true
		}
		if !matched {
			return errors.Errorf("material %d (%s): thermal table %d matches no nuclide", mat.ID, mat.Name, a.TableID)
		}
	}
	sortThermalAssignments(out)
	mat.ThermalTables = out
	return nil
}

func sortThermalAssignments(a []ThermalAssignment) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j-1].LocalSlot > a[j].LocalSlot; j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}

// SetDensity implements spec.md §4.5's set_density: for atom/b-cm,
// renormalize and scale atom fractions to value; for mass units, scale
// every per-nuclide density by value/old density_gpcc.
func (mat *Material) SetDensity(value Real, units DensityUnits) error {
	if len(mat.Nuclide) == 0 {
		return errors.Errorf("material %d (%s): set_density on empty material", mat.ID, mat.Name)
	}
	switch units {
	case UnitsAtomBcm:
		oldTotal := mat.AtomDensityTotal
		if oldTotal == 0 {
			return errors.Errorf("material %d (%s): cannot renormalize, zero atom density", mat.ID, mat.Name)
		}
		scale := value / oldTotal
		for i := range mat.AtomDensity {
			mat.AtomDensity[i] *= scale
		}
		mat.AtomDensityTotal = value
		mat.DensityGpcc *= scale
		mat.TotalDensity = value
	case UnitsGramCC:
		if mat.DensityGpcc == 0 {
			return errors.Errorf("material %d (%s): cannot scale, zero density_gpcc", mat.ID, mat.Name)
		}
		scale := value / mat.DensityGpcc
		for i := range mat.AtomDensity {
			mat.AtomDensity[i] *= scale
		}
		mat.AtomDensityTotal *= scale
		mat.DensityGpcc = value
		mat.TotalDensity = -value
	default:
		return errors.Errorf("material %d (%s): invalid density units", mat.ID, mat.Name)
	}
	return nil
}

// CalculateNeutronXS implements spec.md §4.5's neutron calculate_xs:
// the logarithmic grid index, thermal-table cursor walk, micro-cache
// refresh, and macroscopic accumulation.
func (mat *Material) CalculateNeutronXS(m *Model, E, sqrtKT Real, settings *Settings, scratch *Scratch) {
	scratch.Macro = MacroXS{}
	iGrid := int(math.Floor(math.Log(E/settings.EnergyMinNeutron) / settings.LogSpacing))

	thermalCursor := 0
	for i, gid := range mat.Nuclide {
		iSab, sabFrac := NoSab, Real(0)
		if thermalCursor < len(mat.ThermalTables) && mat.ThermalTables[thermalCursor].LocalSlot == i {
			ta := mat.ThermalTables[thermalCursor]
			table := &m.ThermalTables[ta.TableID]
			if E <= table.Threshold {
				iSab, sabFrac = ta.TableID, ta.Fraction
			}
			thermalCursor++
		}

		micro := &scratch.Micro[gid]
		if micro.Stale(E, sqrtKT, iSab, sabFrac) {
			m.Nuclides[gid].CalculateXS(iSab, E, iGrid, sqrtKT, sabFrac, micro)
			micro.LastE, micro.LastSqrtKT, micro.ISab, micro.SabFrac = E, sqrtKT, iSab, sabFrac
		}

		N := mat.AtomDensity[i]
		scratch.Macro.Total += N * micro.Total
		scratch.Macro.Absorption += N * micro.Absorption
		scratch.Macro.Fission += N * micro.Fission
		scratch.Macro.NuFission += N * micro.NuFission
		scratch.Macro.PhotonProd += N * micro.PhotonProd
	}
}

// CalculatePhotonXS implements spec.md §4.5's photon calculate_xs: per
// local nuclide, consult the element's micro_photon_xs cache keyed purely
// on energy, refreshing on mismatch.
func (mat *Material) CalculatePhotonXS(m *Model, E Real, scratch *Scratch) {
	scratch.Macro = MacroXS{}
	for i, eid := range mat.Element {
		micro := &scratch.MicroPhoton[eid]
		if micro.Stale(E) {
			m.Elements[eid].CalculateXS(E, micro)
			micro.LastE = E
		}
		N := mat.AtomDensity[i]
		scratch.Macro.Total += N * micro.Total
		scratch.Macro.Coherent += N * micro.Coherent
		scratch.Macro.Incoherent += N * micro.Incoherent
		scratch.Macro.Photoelectric += N * micro.Photoelectric
		scratch.Macro.PairProduction += N * micro.PairProduction
	}
}
