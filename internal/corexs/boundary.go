package corexs

// BoundaryErr is the typed error-code taxonomy of the boundary API
// (spec.md §6, §7): never aborts the process, always returned to the
// caller as a value.
type BoundaryErr int

const (
	ErrOK BoundaryErr = iota
	ErrInvalidID
	ErrOutOfBounds
	ErrAllocate
	ErrInvalidArgument
	ErrUnassigned
)

func (e BoundaryErr) String() string {
	switch e {
	case ErrOK:
		return "ok"
	case ErrInvalidID:
		return "invalid id"
	case ErrOutOfBounds:
		return "out of bounds"
	case ErrAllocate:
		return "allocate"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrUnassigned:
		return "unassigned"
	default:
		return "unknown"
	}
}

// MaterialIndex indexes a Model's materials for the 1-based boundary API
// contract (spec.md §6: "Indexed by 1-based material index (driver
// contract)"), distinct from the 0-based slice index used internally.
type MaterialIndex struct {
	m      *Model
	byID   map[int]int // material id -> slice index
}

// NewMaterialIndex builds the id->index map once, amortizing GetIndex
// lookups over the boundary API's lifetime.
func NewMaterialIndex(m *Model) *MaterialIndex {
	mi := &MaterialIndex{m: m, byID: make(map[int]int, len(m.Materials))}
	for i, mat := range m.Materials {
		mi.byID[mat.ID] = i
	}
	return mi
}

// GetIndex returns the 1-based boundary index for a material id, or
// ErrInvalidID if no such material exists.
func (mi *MaterialIndex) GetIndex(id int) (int, BoundaryErr) {
	if i, ok := mi.byID[id]; ok {
		return i + 1, ErrOK
	}
	return 0, ErrInvalidID
}

func (mi *MaterialIndex) resolve(index int) (*Material, BoundaryErr) {
	if index < 1 || index > len(mi.m.Materials) {
		return nil, ErrOutOfBounds
	}
	return mi.m.Materials[index-1], ErrOK
}

// GetID returns the material id at boundary index.
func (mi *MaterialIndex) GetID(index int) (int, BoundaryErr) {
	mat, e := mi.resolve(index)
	if e != ErrOK {
		return 0, e
	}
	return mat.ID, ErrOK
}

// SetID reassigns a material's id and keeps the id->index map consistent.
func (mi *MaterialIndex) SetID(index, newID int) BoundaryErr {
	mat, e := mi.resolve(index)
	if e != ErrOK {
		return e
	}
	delete(mi.byID, mat.ID)
	mat.ID = newID
	mi.byID[newID] = index - 1
	return ErrOK
}

// GetVolume returns the material's volume, or ErrUnassigned if unset.
func (mi *MaterialIndex) GetVolume(index int) (Real, BoundaryErr) {
	mat, e := mi.resolve(index)
	if e != ErrOK {
		return 0, e
	}
	if mat.Volume < 0 {
		return 0, ErrUnassigned
	}
	return mat.Volume, ErrOK
}

// SetVolume sets the material's volume.
func (mi *MaterialIndex) SetVolume(index int, volume Real) BoundaryErr {
	mat, e := mi.resolve(index)
	if e != ErrOK {
		return e
	}
	mat.Volume = volume
	return ErrOK
}

// GetFissionable returns whether the material contains a fissionable
// nuclide (set at Finalize).
func (mi *MaterialIndex) GetFissionable(index int) (bool, BoundaryErr) {
	mat, e := mi.resolve(index)
	if e != ErrOK {
		return false, e
	}
	return mat.Fissionable, ErrOK
}

// GetDensities returns the material's nuclide global ids and their
// atom/b-cm densities.
func (mi *MaterialIndex) GetDensities(index int) ([]int, []Real, BoundaryErr) {
	mat, e := mi.resolve(index)
	if e != ErrOK {
		return nil, nil, e
	}
	return mat.Nuclide, mat.AtomDensity, ErrOK
}

// SetDensity dispatches to Material.SetDensity, accepting the boundary
// API's unit-string vocabulary.
func (mi *MaterialIndex) SetDensity(index int, value Real, unit string) BoundaryErr {
	mat, e := mi.resolve(index)
	if e != ErrOK {
		return e
	}
	var units DensityUnits
	switch unit {
	case "atom/b-cm":
		units = UnitsAtomBcm
	case "g/cm3", "g/cc":
		units = UnitsGramCC
	default:
		return ErrInvalidArgument
	}
	if err := mat.SetDensity(value, units); err != nil {
		return ErrInvalidArgument
	}
	return ErrOK
}

// SetDensities replaces the material's nuclide composition wholesale; the
// global nuclide ids and densities must have equal, non-zero length.
func (mi *MaterialIndex) SetDensities(index int, globalIDs []int, densities []Real) BoundaryErr {
	mat, e := mi.resolve(index)
	if e != ErrOK {
		return e
	}
	if len(globalIDs) != len(densities) || len(globalIDs) == 0 {
		return ErrInvalidArgument
	}
	mat.Nuclide = append([]int(nil), globalIDs...)
	mat.AtomDensity = append([]Real(nil), densities...)
	return ErrOK
}

// AddNuclide appends one nuclide to the material's composition.
func (mi *MaterialIndex) AddNuclide(index, globalID int, density Real) BoundaryErr {
	mat, e := mi.resolve(index)
	if e != ErrOK {
		return e
	}
	mat.AddNuclide(globalID, density)
	return ErrOK
}

// ExtendMaterials appends n freshly constructed materials, returning the
// 1-based index of the first new slot.
func (mi *MaterialIndex) ExtendMaterials(n int) (int, BoundaryErr) {
	if n <= 0 {
		return 0, ErrInvalidArgument
	}
	start := len(mi.m.Materials) + 1
	for i := 0; i < n; i++ {
		id := start + i
		mat := NewMaterial(id, "")
		mi.m.Materials = append(mi.m.Materials, mat)
		mi.byID[id] = len(mi.m.Materials) - 1
	}
	return start, ErrOK
}
