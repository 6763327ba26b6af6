package corexs

import (
	"math"

	"gonum.org/v1/gonum/interp"
)

// TTBTable is the per-material bremsstrahlung thick-target table computed
// at finalize when photon transport is enabled with electron_treatment =
// TTB (spec.md §4.5 step 8, §6A's "Bremsstrahlung thermal bremsstrahlung
// (TTB) data is an optional owned sub-object"). Energies is the shared
// incident-electron-energy grid; PDF/CDF are flattened row-major by
// energy, one row of len(Fractions) entries per incident energy; Yield
// holds one entry per incident energy.
type TTBTable struct {
	Energies  []Real
	Fractions []Real
	PDF       []Real
	CDF       []Real
	Yield     []Real
}

// positronCorrection approximates the reduction in bremsstrahlung yield for
// positrons relative to electrons of the same kinetic energy and target Z,
// following the empirical Kim-Seltzer-Berger trend: the correction grows
// with Z and falls off at high energy as positron and electron stopping
// power distributions converge.
func positronCorrection(z int, E Real) Real {
	return 1.0 - 0.25*Real(z)/184.0*math.Exp(-E/1e5)
}

// braggMix accumulates a per-element table into a material-level mixture by
// atom-fraction weighting (Bragg additivity: a mixture's stopping power and
// DCS are the atom-fraction-weighted sum of the constituents' tables,
// provided all tables share the same energy grid).
func braggMix(weights []Real, tables [][]Real) []Real {
	if len(tables) == 0 {
		return nil
	}
	out := make([]Real, len(tables[0]))
	for i, t := range tables {
		w := weights[i]
		for k, v := range t {
			out[k] += w * v
		}
	}
	return out
}

// integrateFraction integrates y over x via a cubic spline fit when at
// least 3 points are available, falling back to the trapezoidal rule on
// shorter segments, per spec.md §4.5 step 8.
func integrateFraction(x, y []Real) Real {
	if len(x) < 2 {
		return 0
	}
	if len(x) < 3 {
		return trapezoidal(x, y)
	}
	var pc interp.NaturalCubic
	if err := pc.Fit(x, y); err != nil {
		return trapezoidal(x, y)
	}
	n := 64
	h := (x[len(x)-1] - x[0]) / Real(n)
	sum := Real(0)
	prev := pc.Predict(x[0])
	for i := 1; i <= n; i++ {
		xi := x[0] + h*Real(i)
		if xi > x[len(x)-1] {
			xi = x[len(x)-1]
		}
		cur := pc.Predict(xi)
		sum += 0.5 * (prev + cur) * h
		prev = cur
	}
	return sum
}

func trapezoidal(x, y []Real) Real {
	sum := Real(0)
	for i := 1; i < len(x); i++ {
		sum += 0.5 * (y[i] + y[i-1]) * (x[i] - x[i-1])
	}
	return sum
}

// BuildTTB computes a material's TTB table by Bragg-mixing the DCS and
// stopping-power tables of its photon-mode constituent elements, then
// integrating each incident-energy row into a normalized PDF/CDF and a
// per-energy photon yield (the row's integrated DCS divided by the mixed
// collisional plus radiative stopping power), applying positronCorrection
// when requested.
func BuildTTB(m *Model, mat *Material, isPositron bool) (*TTBTable, error) {
	if len(mat.Element) == 0 {
		return nil, nil
	}

	var energies, fractions []Real
	var dcsRows [][]Real
	var cpRows, rpRows [][]Real
	weights := make([]Real, len(mat.Element))

	for i, eid := range mat.Element {
		el := m.Elements[eid]
		en, fr, dcs := el.DCSTable()
		if energies == nil {
			energies, fractions = en, fr
		}
		spEn, coll, rad := el.StoppingPower()
		_ = spEn
		dcsRows = append(dcsRows, dcs)
		cpRows = append(cpRows, coll)
		rpRows = append(rpRows, rad)
		weights[i] = mat.AtomDensity[i]
	}

	mixedDCS := braggMix(weights, dcsRows)
	mixedColl := braggMix(weights, cpRows)
	mixedRad := braggMix(weights, rpRows)

	nE := len(energies)
	nF := len(fractions)
	table := &TTBTable{Energies: energies, Fractions: fractions,
		PDF: make([]Real, nE*nF), CDF: make([]Real, nE*nF), Yield: make([]Real, nE)}

	for ie := 0; ie < nE; ie++ {
		row := mixedDCS[ie*nF : ie*nF+nF]
		total := integrateFraction(fractions, row)
		if total <= 0 {
			continue
		}
		if isPositron && len(mat.Element) > 0 {
			total *= positronCorrection(m.Elements[mat.Element[0]].Z(), energies[ie])
		}
		cum := Real(0)
		for jf := 0; jf < nF; jf++ {
			pdf := row[jf] / total
			table.PDF[ie*nF+jf] = pdf
			if jf > 0 {
				cum += 0.5 * (row[jf] + row[jf-1]) / total * (fractions[jf] - fractions[jf-1])
			}
			table.CDF[ie*nF+jf] = cum
		}
		stoppingTotal := mixedColl[ie] + mixedRad[ie]
		if stoppingTotal > 0 {
			table.Yield[ie] = total / stoppingTotal
		}
	}
	return table, nil
}
