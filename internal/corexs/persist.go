package corexs

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Dataset is one named, typed value under a Group, the Go analogue of an
// HDF5 dataset. Only the value kinds the persisted material record needs
// (string, []string, Real, []Real) are modeled; this is not a general
// HDF5 binding (see DESIGN.md for why encoding/gob stands in for one).
type Dataset struct {
	Name  string
	Value any
}

// Group is a named collection of attributes and datasets, the Go analogue
// of an HDF5 group (spec.md §6's "material <id>" group).
type Group struct {
	Name       string
	Attrs      map[string]any
	Datasets   map[string]any
}

// NewGroup returns an empty named group.
func NewGroup(name string) *Group {
	return &Group{Name: name, Attrs: map[string]any{}, Datasets: map[string]any{}}
}

// WriteAttr sets a group attribute (spec.md §6: "depletable", "volume").
func (g *Group) WriteAttr(name string, value any) { g.Attrs[name] = value }

// WriteDataset sets a group dataset (spec.md §6: "name", "atom_density",
// "nuclides", "nuclide_densities", "macroscopics", "sab_names").
func (g *Group) WriteDataset(name string, value any) { g.Datasets[name] = value }

// ReadAttr and ReadDataset retrieve a previously written value along with
// whether it was present.
func (g *Group) ReadAttr(name string) (any, bool)    { v, ok := g.Attrs[name]; return v, ok }
func (g *Group) ReadDataset(name string) (any, bool) { v, ok := g.Datasets[name]; return v, ok }

// MaterialGroup builds the persisted record for mat per spec.md §6: a
// "material <id>" group with depletable/volume attributes and, depending
// on CE vs macroscopic mode, either nuclides+densities or a macroscopics
// dataset, plus sab_names when any thermal table is assigned.
func MaterialGroup(m *Model, mat *Material) *Group {
	g := NewGroup(fmt.Sprintf("material %d", mat.ID))
	depletable := 0
	if mat.Depletable {
		depletable = 1
	}
	g.WriteAttr("depletable", depletable)
	if mat.Volume >= 0 {
		g.WriteAttr("volume", mat.Volume)
	}
	g.WriteDataset("name", mat.Name)
	g.WriteDataset("atom_density", mat.AtomDensityTotal)

	if mat.IsMacroscopic {
		g.WriteDataset("macroscopics", []string{mat.MacroXSName})
	} else {
		names := make([]string, len(mat.Nuclide))
		for i, gid := range mat.Nuclide {
			names[i] = m.Nuclides[gid].Name()
		}
		g.WriteDataset("nuclides", names)
		g.WriteDataset("nuclide_densities", append([]Real(nil), mat.AtomDensity...))
	}

	if len(mat.ThermalTables) > 0 {
		sab := make([]string, len(mat.ThermalTables))
		for i, ta := range mat.ThermalTables {
			sab[i] = m.ThermalTables[ta.TableID].Name
		}
		g.WriteDataset("sab_names", sab)
	}
	return g
}

// Store persists and retrieves Groups. FileStore is the default
// implementation, backed by encoding/gob (see DESIGN.md: no example repo
// or ecosystem library in the domain stack provides hierarchical
// group/attribute/dataset persistence, and the spec treats real HDF5 as an
// external system this engine consumes rather than vendors).
type Store interface {
	Write(path string, g *Group) error
	Read(path string) (*Group, error)
}

type FileStore struct{}

func (FileStore) Write(path string, g *Group) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return errors.Wrapf(err, "encoding group %q", g.Name)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing group file %q", path)
	}
	return nil
}

func (FileStore) Read(path string) (*Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading group file %q", path)
	}
	var g Group
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return nil, errors.Wrapf(err, "decoding group file %q", path)
	}
	return &g, nil
}

func init() {
	gob.Register([]string{})
	gob.Register([]Real{})
}
