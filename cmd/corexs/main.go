package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/D-Benjamin/openmc/internal/corexs"
)

func main() {
	corexs.Debug = os.Getenv("DEBUG") != ""
	corexs.UseNeighborLists = os.Getenv("SKIP_NEIGHBOR_LISTS") == ""

	if err := rootCmd().Execute(); err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var settingsPath string

	root := &cobra.Command{
		Use:   "corexs",
		Short: "Geometry locator and material cross-section engine",
	}
	root.PersistentFlags().StringVar(&settingsPath, "settings", "settings.json", "path to the engine settings file")

	root.AddCommand(runCmd(&settingsPath))
	root.AddCommand(validateCmd(&settingsPath))
	root.AddCommand(queryXSCmd(&settingsPath))
	return root
}

// runCmd loads the engine settings and logs the requested geometry path, the
// thin CLI-level analogue of the teacher's single-verb photons4d.Run. It does
// not load a geometry or locate or transport any particles.
func runCmd(settingsPath *string) *cobra.Command {
	var geometryPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load settings and log the requested geometry path (no transport is run)",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := corexs.LoadSettings(*settingsPath)
			if err != nil {
				return err
			}
			corexs.DefaultLogger.Write("loaded settings from %s (seed=%d)", *settingsPath, settings.Seed)
			corexs.DefaultLogger.Write("run: geometry=%s (geometry/material loading is an external collaborator, see SPEC)", geometryPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&geometryPath, "geometry", "", "path to a geometry description (external collaborator)")
	return cmd
}

// validateCmd loads the engine settings and logs the run mode. It does not
// load a model, finalize any material or check any invariant.
func validateCmd(settingsPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load settings and log the run mode (no materials are finalized)",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := corexs.LoadSettings(*settingsPath)
			if err != nil {
				return err
			}
			corexs.DefaultLogger.Write("validate: settings loaded (run_ce=%v photon_transport=%v)", settings.RunCE, settings.PhotonTransport)
			return nil
		},
	}
	return cmd
}

// queryXSCmd loads the engine settings and logs the requested material id,
// energy and sqrt(kT). It does not look up the material or compute any
// cross section.
func queryXSCmd(settingsPath *string) *cobra.Command {
	var materialID int
	var energy float64
	var sqrtKT float64

	cmd := &cobra.Command{
		Use:   "query-xs",
		Short: "Log a cross-section query for one material at (E, sqrt(kT)) (no cross section is computed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := corexs.LoadSettings(*settingsPath)
			if err != nil {
				return err
			}
			corexs.DefaultLogger.Write("query-xs: material=%d E=%g sqrtKT=%g log_spacing=%g",
				materialID, energy, sqrtKT, settings.LogSpacing)
			return nil
		},
	}
	cmd.Flags().IntVar(&materialID, "material", 0, "material id")
	cmd.Flags().Float64Var(&energy, "energy", 1.0, "particle energy (eV)")
	cmd.Flags().Float64Var(&sqrtKT, "sqrt-kt", 0, "sqrt(kT) (eV^0.5)")
	return cmd
}
