package corexs

// ThermalTable describes one S(alpha,beta) bound-thermal-scattering table:
// the set of nuclide names it applies to and the energy above which bound
// scattering no longer applies.
type ThermalTable struct {
	ID        int
	Name      string
	Nuclides  []string
	Threshold Real
}

// Accepts reports whether the table applies to the named nuclide.
func (t *ThermalTable) Accepts(name string) bool {
	for _, n := range t.Nuclides {
		if n == name {
			return true
		}
	}
	return false
}

// ThermalAssignment is one entry of a material's sorted thermal-table
// assignment list: which local nuclide slot uses which table, and at what
// fraction (for materials mixing a bound and free fraction of the same
// nuclide).
type ThermalAssignment struct {
	TableID    int
	LocalSlot  int
	Fraction   Real
}
