package corexs

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// ElectronTreatment selects how secondary electrons are handled in photon
// transport.
type ElectronTreatment int

const (
	ElectronTTB ElectronTreatment = iota
	ElectronLocalDeposition
)

// Settings mirrors the external "Settings" collaborator of spec.md §6:
// run mode, photon transport toggle, electron treatment, the neutron
// energy-grid log spacing, per-particle-type energy bounds, and the usual
// verbosity/trace knobs. JSON-decoded with field-by-field defaulting, the
// same idiom as the teacher's loadConfig (json_config.go).
type Settings struct {
	RunCE             bool              `json:"run_ce"`
	PhotonTransport   bool              `json:"photon_transport"`
	ElectronTreatment ElectronTreatment `json:"electron_treatment"`
	LogSpacing        Real              `json:"log_spacing"`
	EnergyMinNeutron  Real              `json:"energy_min_neutron"`
	EnergyMaxNeutron  Real              `json:"energy_max_neutron"`
	EnergyMinPhoton   Real              `json:"energy_min_photon"`
	EnergyMaxPhoton   Real              `json:"energy_max_photon"`
	Verbosity         int               `json:"verbosity"`
	Trace             bool              `json:"trace"`
	UseNeighborLists  bool              `json:"use_neighbor_lists"`
	OverlapCheck      bool              `json:"overlap_check"`
	Seed              int64             `json:"seed"`
}

// DefaultSettings returns the engine's baked-in defaults, overridden
// field-by-field by LoadSettings when a config file sets them explicitly.
func DefaultSettings() Settings {
	return Settings{
		RunCE:             true,
		PhotonTransport:   false,
		ElectronTreatment: ElectronTTB,
		LogSpacing:        0.0253,
		EnergyMinNeutron:  1e-5,
		EnergyMaxNeutron:  2e7,
		EnergyMinPhoton:   1e3,
		EnergyMaxPhoton:   1e11,
		Verbosity:         5,
		Trace:             false,
		UseNeighborLists:  true,
		OverlapCheck:      false,
		Seed:              1,
	}
}

// rawSettings mirrors Settings but with every field a pointer, so the JSON
// decoder can tell "absent" apart from "explicitly zero" the way the
// teacher's loadConfig distinguishes unset scene fields from zero values.
type rawSettings struct {
	RunCE             *bool              `json:"run_ce"`
	PhotonTransport   *bool              `json:"photon_transport"`
	ElectronTreatment *ElectronTreatment `json:"electron_treatment"`
	LogSpacing        *Real              `json:"log_spacing"`
	EnergyMinNeutron  *Real              `json:"energy_min_neutron"`
	EnergyMaxNeutron  *Real              `json:"energy_max_neutron"`
	EnergyMinPhoton   *Real              `json:"energy_min_photon"`
	EnergyMaxPhoton   *Real              `json:"energy_max_photon"`
	Verbosity         *int               `json:"verbosity"`
	Trace             *bool              `json:"trace"`
	UseNeighborLists  *bool              `json:"use_neighbor_lists"`
	OverlapCheck      *bool              `json:"overlap_check"`
	Seed              *int64             `json:"seed"`
}

// LoadSettings reads a JSON settings file, applying DefaultSettings for any
// field the file omits.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, errors.Wrapf(err, "reading settings file %q", path)
	}
	var raw rawSettings
	if err := json.Unmarshal(data, &raw); err != nil {
		return s, errors.Wrapf(err, "parsing settings file %q", path)
	}
	if raw.RunCE != nil {
		s.RunCE = *raw.RunCE
	}
	if raw.PhotonTransport != nil {
		s.PhotonTransport = *raw.PhotonTransport
	}
	if raw.ElectronTreatment != nil {
		s.ElectronTreatment = *raw.ElectronTreatment
	}
	if raw.LogSpacing != nil {
		s.LogSpacing = *raw.LogSpacing
	}
	if raw.EnergyMinNeutron != nil {
		s.EnergyMinNeutron = *raw.EnergyMinNeutron
	}
	if raw.EnergyMaxNeutron != nil {
		s.EnergyMaxNeutron = *raw.EnergyMaxNeutron
	}
	if raw.EnergyMinPhoton != nil {
		s.EnergyMinPhoton = *raw.EnergyMinPhoton
	}
	if raw.EnergyMaxPhoton != nil {
		s.EnergyMaxPhoton = *raw.EnergyMaxPhoton
	}
	if raw.Verbosity != nil {
		s.Verbosity = *raw.Verbosity
	}
	if raw.Trace != nil {
		s.Trace = *raw.Trace
	}
	if raw.UseNeighborLists != nil {
		s.UseNeighborLists = *raw.UseNeighborLists
	}
	if raw.OverlapCheck != nil {
		s.OverlapCheck = *raw.OverlapCheck
	}
	if raw.Seed != nil {
		s.Seed = *raw.Seed
	}
	return s, nil
}
